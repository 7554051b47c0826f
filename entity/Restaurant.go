package entity

import (
	"time"

	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	CoverImg    string `json:"coverImg"`

	CategoryID *uint     `json:"categoryId"`
	Category   *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`

	OwnerID uint `gorm:"not null;index" json:"ownerId"`
	Owner   User `json:"-"`

	// paid promotion window, managed by the payments service
	IsPromoted    bool       `json:"isPromoted"`
	PromotedUntil *time.Time `json:"promotedUntil,omitempty"`

	Dishes []Dish  `json:"dishes,omitempty"`
	Orders []Order `json:"-"`
}
