package models

import "time"

// Order status values. Only the first two are fixed: a line item starts
// as "placed" and moves to "preparing" when a delivery partner is
// assigned. After that admins and delivery partners may set any
// free-text status ("on the way", "delivered", ...), so there is no
// closed set here.
const (
	StatusPlaced    = "placed"
	StatusPreparing = "preparing"
)

// LineItem is one ledger row of an order. A checkout writes one row per
// cart entry; all rows of that checkout share TransactionID,
// TransactionTotal and TransactionTimestamp. Everything except Status
// and DeliveryPartner is immutable once written.
type LineItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     User   `gorm:"foreignKey:UserID" json:"-"`
	DishID   uint   `gorm:"not null" json:"dish_id"`
	DishName string `gorm:"type:varchar(255);not null" json:"dish_name"`
	Quantity int    `gorm:"not null" json:"quantity"`
	// LineTotal = dish price at checkout time * Quantity.
	LineTotal float64 `gorm:"type:decimal(10,2);not null" json:"line_total"`

	Status          string  `gorm:"type:varchar(50);not null;default:'placed'" json:"status"`
	DeliveryPartner *string `gorm:"type:varchar(255);index" json:"delivery_partner,omitempty"`

	// Transaction fields, shared by every line item of one checkout.
	TransactionID        string    `gorm:"type:varchar(36);not null;index" json:"transaction_id"`
	TransactionTotal     float64   `gorm:"type:decimal(10,2);not null" json:"transaction_total"`
	TransactionTimestamp time.Time `gorm:"not null" json:"transaction_timestamp"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
