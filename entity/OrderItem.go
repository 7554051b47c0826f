package entity

import (
	"gorm.io/gorm"
)

// ItemOption is a customer's selection for one dish option: the option name
// and, for choice-based options, the chosen value name.
type ItemOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

type OrderItem struct {
	gorm.Model
	OrderID uint `gorm:"index" json:"orderId"`

	DishID uint `gorm:"not null" json:"dishId"`
	Dish   Dish `json:"-"`

	// raw selections as sent by the customer, stored opaque, not normalized
	Options []ItemOption `gorm:"serializer:json" json:"options,omitempty"`
}
