package models

import "time"

// CartItem is one (user, dish) row; adding the same dish again bumps
// Quantity instead of inserting a second row.
type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_cart_user_dish" json:"user_id"`
	User      User `gorm:"foreignKey:UserID" json:"-"`
	DishID    uint `gorm:"not null;uniqueIndex:idx_cart_user_dish" json:"dish_id"`
	Dish      Dish `gorm:"foreignKey:DishID" json:"dish"`
	Quantity  int  `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
