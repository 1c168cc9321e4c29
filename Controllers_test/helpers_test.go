package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
	"github.com/hoteleats/order-backend/router"
	"github.com/hoteleats/order-backend/utils"
)

func setupTestEnv(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
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
	utils.InitDB(db)

	return db, router.SetupRouter(db)
}

func createUserWithToken(t *testing.T, db *gorm.DB, username, role string) (models.User, string) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	token, err := utils.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, token
}

func seedDish(t *testing.T, db *gorm.DB, name string, price float64) models.Dish {
	t.Helper()
	dish := models.Dish{Name: name, Price: price, Image: "default.png"}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}
	return dish
}

// doRequest performs one request against the router, marshalling body
// (if any) and attaching the bearer token (if any).
func doRequest(t *testing.T, r *gin.Engine, method, url, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(payload)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp
}
