package models

import "time"

// CheckoutDraft holds the delivery details a customer fills in before
// checking out (name, address, phone). One draft per user, overwritten
// on every submit. Checkout refuses to run without one.
type CheckoutDraft struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"-"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Address   string `gorm:"type:text;not null" json:"address"`
	Phone     string `gorm:"type:varchar(50);not null" json:"phone"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
