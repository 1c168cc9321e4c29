package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
	"github.com/hoteleats/order-backend/utils"
)

// openTestDB gives each test its own named in-memory sqlite database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.CartItem{},
		&models.LineItem{},
		&models.CheckoutDraft{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, role string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// seedTransaction inserts a transaction of line items directly into the
// ledger and returns them.
func seedTransaction(t *testing.T, db *gorm.DB, userID uint, txID string, total float64, ts time.Time, dishes ...string) []models.LineItem {
	t.Helper()
	items := make([]models.LineItem, 0, len(dishes))
	for i, name := range dishes {
		item := models.LineItem{
			UserID:               userID,
			DishID:               uint(i + 1),
			DishName:             name,
			Quantity:             1,
			LineTotal:            total / float64(len(dishes)),
			Status:               models.StatusPlaced,
			TransactionID:        txID,
			TransactionTotal:     total,
			TransactionTimestamp: ts,
		}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("failed to seed line item: %v", err)
		}
		items = append(items, item)
	}
	return items
}
