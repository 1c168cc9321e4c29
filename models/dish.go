package models

import "time"

type Dish struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string  `gorm:"type:varchar(255);not null;default:'default.png'" json:"image"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
