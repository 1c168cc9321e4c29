package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/hoteleats/order-backend/models"
)

// TransactionKey identifies one logical order. Grouping, expansion and
// every status mutation filter on ID alone; Total and Timestamp are
// carried for display.
type TransactionKey struct {
	ID        string    `json:"transaction_id"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

// Scope restricts resolver reads to one customer or one delivery
// partner. The zero value means no restriction (admin).
type Scope struct {
	UserID          *uint
	DeliveryPartner *string
}

func ScopeForUser(userID uint) Scope {
	return Scope{UserID: &userID}
}

func ScopeForPartner(username string) Scope {
	return Scope{DeliveryPartner: &username}
}

func (s Scope) apply(q *gorm.DB) *gorm.DB {
	if s.UserID != nil {
		q = q.Where("line_items.user_id = ?", *s.UserID)
	}
	if s.DeliveryPartner != nil {
		q = q.Where("line_items.delivery_partner = ?", *s.DeliveryPartner)
	}
	return q
}

// TransactionSummary is one row per logical order, annotated with the
// id of its first line item. That id is the reference callers pass back
// to address the whole transaction.
type TransactionSummary struct {
	ReferenceID      uint      `json:"reference_id"`
	TransactionID    string    `json:"transaction_id"`
	UserID           uint      `json:"user_id"`
	CustomerUsername string    `json:"customer_username"`
	Total            float64   `json:"total"`
	Status           string    `json:"status"`
	DeliveryPartner  *string   `json:"delivery_partner,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
}

// TransactionResolver translates between a single line-item reference
// id and the full set of line items forming its transaction.
type TransactionResolver struct {
	DB *gorm.DB
}

func NewTransactionResolver(db *gorm.DB) *TransactionResolver {
	return &TransactionResolver{DB: db}
}

// ResolveReferenceKey looks up one line item by id and returns the key
// of the transaction it belongs to.
func (r *TransactionResolver) ResolveReferenceKey(lineItemID uint) (TransactionKey, error) {
	var item models.LineItem
	if err := r.DB.Select("transaction_id", "transaction_total", "transaction_timestamp").
		First(&item, lineItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransactionKey{}, ErrOrderNotFound
		}
		return TransactionKey{}, err
	}
	return TransactionKey{
		ID:        item.TransactionID,
		Total:     item.TransactionTotal,
		Timestamp: item.TransactionTimestamp,
	}, nil
}

// ExpandTransaction returns every line item of the transaction, in
// insertion order. An empty result under a scope means the transaction
// either does not exist or is outside the caller's scope; the two are
// deliberately not distinguished.
func (r *TransactionResolver) ExpandTransaction(key TransactionKey, scope Scope) ([]models.LineItem, error) {
	var items []models.LineItem
	q := scope.apply(r.DB.Model(&models.LineItem{})).
		Where("line_items.transaction_id = ?", key.ID).
		Order("line_items.id ASC")
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderNotFound
	}
	return items, nil
}

// ExpandReference is ResolveReferenceKey + ExpandTransaction in one call.
func (r *TransactionResolver) ExpandReference(lineItemID uint, scope Scope) ([]models.LineItem, error) {
	key, err := r.ResolveReferenceKey(lineItemID)
	if err != nil {
		return nil, err
	}
	return r.ExpandTransaction(key, scope)
}

// ListTransactionSummaries returns one summary per transaction within
// the scope, newest first. Status and delivery_partner appear in the
// GROUP BY for only_full_group_by's sake; they are constant across a
// transaction's members, so the grouping still yields one row per
// transaction id.
func (r *TransactionResolver) ListTransactionSummaries(scope Scope) ([]TransactionSummary, error) {
	var summaries []TransactionSummary
	q := scope.apply(r.DB.Model(&models.LineItem{})).
		Select("MIN(line_items.id) AS reference_id, " +
			"line_items.transaction_id, " +
			"line_items.user_id, " +
			"users.username AS customer_username, " +
			"line_items.transaction_total AS total, " +
			"line_items.status, " +
			"line_items.delivery_partner, " +
			"line_items.transaction_timestamp AS timestamp").
		Joins("JOIN users ON users.id = line_items.user_id").
		Group("line_items.transaction_id, line_items.user_id, users.username, " +
			"line_items.transaction_total, line_items.status, " +
			"line_items.delivery_partner, line_items.transaction_timestamp").
		Order("timestamp DESC")
	if err := q.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}
