package configs

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

func ConnectDB(source string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(source), &gorm.Config{})
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Category{}, &entity.Restaurant{},
		&entity.Dish{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Payment{},
	)
}
