package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     Role   `gorm:"not null;default:client" json:"role"`

	// Relations — preload only when needed
	Restaurants []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Orders      []Order      `gorm:"foreignKey:CustomerID" json:"-"`
	Deliveries  []Order      `gorm:"foreignKey:DriverID" json:"-"`
	Payments    []Payment    `json:"-"`
}
