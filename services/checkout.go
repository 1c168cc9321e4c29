package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
)

// CheckoutService converts a customer's cart into one transaction of
// line items. This is the only code path that creates line items.
type CheckoutService struct {
	DB *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{DB: db}
}

// PlacedOrder is what PlaceOrder hands back: the reference id (the
// first inserted line item) plus the transaction the caller just
// created.
type PlacedOrder struct {
	ReferenceID uint              `json:"reference_id"`
	Key         TransactionKey    `json:"key"`
	Items       []models.LineItem `json:"items"`
}

// PlaceOrder flattens the user's cart into line items sharing one
// generated transaction id, total and timestamp, then empties the cart.
// Runs in a single transaction: either the ledger gains all N rows and
// the cart is cleared, or nothing happens.
func (s *CheckoutService) PlaceOrder(userID uint) (*PlacedOrder, error) {
	var placed PlacedOrder

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var draft models.CheckoutDraft
		if err := tx.Where("user_id = ?", userID).First(&draft).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDraftRequired
			}
			return err
		}

		var cartItems []models.CartItem
		if err := tx.Preload("Dish").Where("user_id = ?", userID).
			Order("id ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		// a dish deleted from the catalog while sitting in a cart no
		// longer resolves; its row must not reach the ledger
		cartItems = dropGhostDishes(cartItems)
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		var grandTotal float64
		for _, ci := range cartItems {
			grandTotal += ci.Dish.Price * float64(ci.Quantity)
		}

		key := TransactionKey{
			ID:        uuid.NewString(),
			Total:     grandTotal,
			Timestamp: time.Now(),
		}

		items := make([]models.LineItem, 0, len(cartItems))
		for _, ci := range cartItems {
			item := models.LineItem{
				UserID:               userID,
				DishID:               ci.DishID,
				DishName:             ci.Dish.Name,
				Quantity:             ci.Quantity,
				LineTotal:            ci.Dish.Price * float64(ci.Quantity),
				Status:               models.StatusPlaced,
				TransactionID:        key.ID,
				TransactionTotal:     key.Total,
				TransactionTimestamp: key.Timestamp,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		placed = PlacedOrder{
			ReferenceID: items[0].ID,
			Key:         key,
			Items:       items,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &placed, nil
}

// dropGhostDishes filters out cart rows whose preloaded dish is gone
// from the catalog (zero-value association).
func dropGhostDishes(cartItems []models.CartItem) []models.CartItem {
	kept := cartItems[:0]
	for _, ci := range cartItems {
		if ci.Dish.ID == 0 {
			continue
		}
		kept = append(kept, ci)
	}
	return kept
}

// PricedCartItem is one cart row resolved against the catalog.
type PricedCartItem struct {
	CartID   uint    `json:"cart_id"`
	DishID   uint    `json:"dish_id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// PreviewCart prices the user's cart without touching the ledger. Used
// by the cart and checkout-preview pages.
func (s *CheckoutService) PreviewCart(userID uint) ([]PricedCartItem, float64, error) {
	var cartItems []models.CartItem
	if err := s.DB.Preload("Dish").Where("user_id = ?", userID).
		Order("id ASC").Find(&cartItems).Error; err != nil {
		return nil, 0, err
	}
	cartItems = dropGhostDishes(cartItems)

	items := make([]PricedCartItem, 0, len(cartItems))
	var total float64
	for _, ci := range cartItems {
		subtotal := ci.Dish.Price * float64(ci.Quantity)
		total += subtotal
		items = append(items, PricedCartItem{
			CartID:   ci.ID,
			DishID:   ci.DishID,
			Name:     ci.Dish.Name,
			Price:    ci.Dish.Price,
			Quantity: ci.Quantity,
			Subtotal: subtotal,
		})
	}
	return items, total, nil
}
