package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	// nullable: the customer account may be deleted after the order exists
	CustomerID *uint `json:"customerId"`
	Customer   *User `gorm:"constraint:OnDelete:SET NULL" json:"customer,omitempty"`

	// assigned once by TakeOrder, never reassigned
	DriverID *uint `json:"driverId"`
	Driver   *User `gorm:"constraint:OnDelete:SET NULL" json:"driver,omitempty"`

	RestaurantID uint       `gorm:"not null;index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	// computed at creation time, never recomputed
	Total  int64       `json:"total"`
	Status OrderStatus `gorm:"not null;default:Pending" json:"status"`
}
