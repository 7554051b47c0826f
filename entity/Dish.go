package entity

import (
	"gorm.io/gorm"
)

// DishChoice is one pickable value inside a DishOption, optionally carrying
// its own surcharge.
type DishChoice struct {
	Name  string `json:"name"`
	Extra int64  `json:"extra,omitempty"`
}

// DishOption is an option the restaurant defines on a dish. An option carries
// either a flat Extra surcharge or a list of Choices with per-choice extras;
// Extra == 0 means "no flat surcharge".
type DishOption struct {
	Name    string       `json:"name"`
	Extra   int64        `json:"extra,omitempty"`
	Choices []DishChoice `json:"choices,omitempty"`
}

type Dish struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Price       int64  `gorm:"not null" json:"price"`
	Photo       string `json:"photo"`
	Description string `json:"description"`

	RestaurantID uint       `gorm:"not null;index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// option definitions live on the dish row as a JSON column
	Options []DishOption `gorm:"serializer:json" json:"options,omitempty"`

	OrderItems []OrderItem `json:"-"`
}
