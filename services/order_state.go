package services

import (
	"strings"

	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
)

// Actor is whoever is driving a state transition. Username matters only
// for delivery partners, whose ownership of an order is recorded by
// username in the ledger.
type Actor struct {
	Role     string
	Username string
}

// OrderStateMachine applies status transitions to a whole transaction
// at once. Every write is a single UPDATE scoped by transaction id, so
// the group invariant (all members share one status and one partner)
// holds by construction and there is no read-modify-write window on the
// member rows themselves.
type OrderStateMachine struct {
	DB *gorm.DB
}

func NewOrderStateMachine(db *gorm.DB) *OrderStateMachine {
	return &OrderStateMachine{DB: db}
}

// Assign hands the transaction referenced by lineItemID to a delivery
// partner and resets its status to "preparing", whatever it was before.
// Admin only; the caller enforces the role.
func (m *OrderStateMachine) Assign(lineItemID uint, deliveryUsername string) error {
	deliveryUsername = strings.TrimSpace(deliveryUsername)
	if deliveryUsername == "" {
		return ErrPartnerNotFound
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		var partner models.User
		if err := tx.Where("username = ? AND role = ?", deliveryUsername, models.RoleDelivery).
			First(&partner).Error; err != nil {
			return ErrPartnerNotFound
		}

		var ref models.LineItem
		if err := tx.Select("transaction_id").First(&ref, lineItemID).Error; err != nil {
			return ErrOrderNotFound
		}

		res := tx.Model(&models.LineItem{}).
			Where("transaction_id = ?", ref.TransactionID).
			Updates(map[string]interface{}{
				"status":           models.StatusPreparing,
				"delivery_partner": partner.Username,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}

// SetStatus moves the whole transaction to newStatus. Admins may target
// any transaction; delivery partners only their own, enforced in the
// UPDATE predicate so a foreign transaction and a missing one are
// indistinguishable to the caller.
func (m *OrderStateMachine) SetStatus(lineItemID uint, newStatus string, actor Actor) error {
	newStatus = strings.TrimSpace(newStatus)
	if newStatus == "" {
		return ErrInvalidStatus
	}
	if actor.Role != models.RoleAdmin && actor.Role != models.RoleDelivery {
		return ErrForbidden
	}

	return m.DB.Transaction(func(tx *gorm.DB) error {
		refQuery := tx.Select("transaction_id")
		if actor.Role == models.RoleDelivery {
			refQuery = refQuery.Where("delivery_partner = ?", actor.Username)
		}
		var ref models.LineItem
		if err := refQuery.First(&ref, lineItemID).Error; err != nil {
			return ErrOrderNotFound
		}

		update := tx.Model(&models.LineItem{}).
			Where("transaction_id = ?", ref.TransactionID)
		if actor.Role == models.RoleDelivery {
			update = update.Where("delivery_partner = ?", actor.Username)
		}

		res := update.Update("status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}
		return nil
	})
}
