package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) Create(ctx context.Context, d *entity.Dish) error {
	return r.DB.WithContext(ctx).Create(d).Error
}

func (r *DishRepository) GetByID(ctx context.Context, id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// GetWithRestaurant loads the dish and its restaurant for ownership checks.
func (r *DishRepository) GetWithRestaurant(ctx context.Context, id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.WithContext(ctx).Preload("Restaurant").First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) Update(ctx context.Context, d *entity.Dish) error {
	return r.DB.WithContext(ctx).Save(d).Error
}

func (r *DishRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.Dish{}, id).Error
}

func (r *DishRepository) ListByRestaurant(ctx context.Context, restID uint) ([]entity.Dish, error) {
	var out []entity.Dish
	err := r.DB.WithContext(ctx).Where("restaurant_id = ?", restID).Find(&out).Error
	return out, err
}
