package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleDelivery = "delivery"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(255);unique;not null" json:"username"`
	Email     string `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsStaff reports whether the user is admin or delivery. Staff accounts
// never own carts or place orders.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleDelivery
}
