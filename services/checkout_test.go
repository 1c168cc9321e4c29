package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
)

func seedDish(t *testing.T, db *gorm.DB, name string, price float64) models.Dish {
	t.Helper()
	dish := models.Dish{Name: name, Price: price, Image: "default.png"}
	if err := db.Create(&dish).Error; err != nil {
		t.Fatalf("failed to seed dish: %v", err)
	}
	return dish
}

func addToCart(t *testing.T, db *gorm.DB, userID, dishID uint, qty int) {
	t.Helper()
	if err := db.Create(&models.CartItem{UserID: userID, DishID: dishID, Quantity: qty}).Error; err != nil {
		t.Fatalf("failed to fill cart: %v", err)
	}
}

func saveDraft(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	draft := models.CheckoutDraft{UserID: userID, Name: "Alice", Address: "1 Main St", Phone: "555-0100"}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("failed to save draft: %v", err)
	}
}

func TestPlaceOrder(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	pizza := seedDish(t, db, "Pizza", 10.0)
	cola := seedDish(t, db, "Cola", 5.0)
	addToCart(t, db, alice.ID, pizza.ID, 2)
	addToCart(t, db, alice.ID, cola.ID, 1)
	saveDraft(t, db, alice.ID)

	placed, err := checkout.PlaceOrder(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, placed.Items, 2)
	assert.Equal(t, 25.0, placed.Key.Total)
	assert.Equal(t, placed.Items[0].ID, placed.ReferenceID)

	for _, item := range placed.Items {
		assert.Equal(t, placed.Key.ID, item.TransactionID)
		assert.Equal(t, 25.0, item.TransactionTotal)
		assert.True(t, item.TransactionTimestamp.Equal(placed.Key.Timestamp))
		assert.Equal(t, models.StatusPlaced, item.Status)
		assert.Nil(t, item.DeliveryPartner)
	}
	assert.Equal(t, "Pizza", placed.Items[0].DishName)
	assert.Equal(t, 20.0, placed.Items[0].LineTotal)
	assert.Equal(t, "Cola", placed.Items[1].DishName)
	assert.Equal(t, 5.0, placed.Items[1].LineTotal)

	// ledger gained exactly the two rows
	var count int64
	db.Model(&models.LineItem{}).Count(&count)
	assert.EqualValues(t, 2, count)

	// cart emptied
	db.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	saveDraft(t, db, alice.ID)

	_, err := checkout.PlaceOrder(alice.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&models.LineItem{}).Count(&count)
	assert.EqualValues(t, 0, count, "no line items may be created for an empty cart")
}

func TestPlaceOrderRequiresDraft(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	pizza := seedDish(t, db, "Pizza", 10.0)
	addToCart(t, db, alice.ID, pizza.ID, 1)

	_, err := checkout.PlaceOrder(alice.ID)
	assert.ErrorIs(t, err, ErrDraftRequired)

	// cart untouched on failure
	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestPlaceOrderSkipsDeletedDish(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	pizza := seedDish(t, db, "Pizza", 10.0)
	ghost := seedDish(t, db, "Ghost", 4.0)
	addToCart(t, db, alice.ID, pizza.ID, 2)
	addToCart(t, db, alice.ID, ghost.ID, 1)
	saveDraft(t, db, alice.ID)

	// the dish disappears from the catalog while carted
	assert.NoError(t, db.Delete(&models.Dish{}, ghost.ID).Error)

	placed, err := checkout.PlaceOrder(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, placed.Items, 1)
	assert.Equal(t, "Pizza", placed.Items[0].DishName)
	assert.Equal(t, 20.0, placed.Key.Total)
	assert.Equal(t, 20.0, placed.Items[0].TransactionTotal)

	// the vanished dish left no ledger row behind
	var count int64
	db.Model(&models.LineItem{}).Count(&count)
	assert.EqualValues(t, 1, count)
	db.Model(&models.LineItem{}).Where("dish_name = ?", "").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPlaceOrderOnlyDeletedDishes(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	ghost := seedDish(t, db, "Ghost", 4.0)
	addToCart(t, db, alice.ID, ghost.ID, 1)
	saveDraft(t, db, alice.ID)

	assert.NoError(t, db.Delete(&models.Dish{}, ghost.ID).Error)

	_, err := checkout.PlaceOrder(alice.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	db.Model(&models.LineItem{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPlaceOrderDistinctTransactions(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	pizza := seedDish(t, db, "Pizza", 10.0)
	saveDraft(t, db, alice.ID)

	addToCart(t, db, alice.ID, pizza.ID, 1)
	first, err := checkout.PlaceOrder(alice.ID)
	assert.NoError(t, err)

	addToCart(t, db, alice.ID, pizza.ID, 1)
	second, err := checkout.PlaceOrder(alice.ID)
	assert.NoError(t, err)

	// equal totals never collide into one transaction
	assert.NotEqual(t, first.Key.ID, second.Key.ID)

	resolver := NewTransactionResolver(db)
	summaries, err := resolver.ListTransactionSummaries(ScopeForUser(alice.ID))
	assert.NoError(t, err)
	assert.Len(t, summaries, 2)
}

func TestPreviewCart(t *testing.T) {
	db := openTestDB(t)
	checkout := NewCheckoutService(db)

	alice := createUser(t, db, "alice", "customer")
	pizza := seedDish(t, db, "Pizza", 10.0)
	cola := seedDish(t, db, "Cola", 5.0)
	addToCart(t, db, alice.ID, pizza.ID, 2)
	addToCart(t, db, alice.ID, cola.ID, 3)

	items, total, err := checkout.PreviewCart(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 35.0, total)
	assert.Equal(t, 20.0, items[0].Subtotal)
	assert.Equal(t, 15.0, items[1].Subtotal)

	// preview never touches the ledger
	var count int64
	db.Model(&models.LineItem{}).Count(&count)
	assert.EqualValues(t, 0, count)

	// a dish deleted mid-browse drops out of the preview too
	assert.NoError(t, db.Delete(&models.Dish{}, cola.ID).Error)
	items, total, err = checkout.PreviewCart(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 20.0, total)
}
