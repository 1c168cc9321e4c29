package services

import (
	"encoding/json"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
	"github.com/hoteleats/order-backend/utils"
)

type menuEntry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// LoadCatalog seeds the dishes table from a JSON menu file, replacing
// whatever was there. Safe to run on every startup. A missing or
// unreadable file is logged and skipped so the server still comes up.
func LoadCatalog(db *gorm.DB, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			utils.InfoLogger.Printf("Warning: %s not found, dishes will not be loaded", path)
			return nil
		}
		return err
	}

	var entries []menuEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		utils.ErrorLogger.Printf("Error reading %s: %v", path, err)
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Delete(&models.Dish{}).Error; err != nil {
			return err
		}
		for _, e := range entries {
			if e.Price < 0 {
				return fmt.Errorf("dish %q: %w", e.Name, ErrInvalidPrice)
			}
			image := e.Image
			if image == "" {
				image = "default.png"
			}
			dish := models.Dish{
				Name:        e.Name,
				Description: e.Description,
				Price:       e.Price,
				Image:       image,
			}
			if err := tx.Create(&dish).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
