package entity

import (
	"gorm.io/gorm"
)

// Payment records an owner paying to promote a restaurant.
type Payment struct {
	gorm.Model
	TransactionID string `gorm:"not null" json:"transactionId"`

	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"not null" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
