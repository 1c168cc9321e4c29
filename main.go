package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/config"
	"github.com/hoteleats/order-backend/models"
	"github.com/hoteleats/order-backend/router"
	"github.com/hoteleats/order-backend/services"
	"github.com/hoteleats/order-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := cfg.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	autoMigrate(db)

	if err := services.LoadCatalog(db, cfg.MenuFile); err != nil {
		utils.ErrorLogger.Fatalf("Failed to load menu catalog: %v", err)
	}

	if cfg.SeedUsers {
		if err := seedStaffUsers(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed staff users: %v", err)
		}
	}

	r := router.SetupRouter(db)

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.CartItem{},
		&models.LineItem{},
		&models.CheckoutDraft{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seedStaffUsers creates the admin and delivery accounts if they do not
// exist yet. Customers register themselves; staff never do.
func seedStaffUsers(db *gorm.DB) error {
	staff := []struct {
		Username string
		Email    string
		Password string
		Role     string
	}{
		{"admin", "admin@example.com", "adminpass", models.RoleAdmin},
		{"deliveryman", "delivery@example.com", "deliverpass", models.RoleDelivery},
	}

	for _, s := range staff {
		var existing models.User
		err := db.Where("email = ?", s.Email).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Username: s.Username,
			Email:    s.Email,
			Password: string(hashed),
			Role:     s.Role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		utils.InfoLogger.Printf("%s user created: %s", s.Role, s.Email)
	}
	return nil
}
