package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{DB: db}
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *entity.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, err
	}
	return &rest, nil
}

// GetDetail loads the restaurant with its menu and category for the public
// detail page.
func (r *RestaurantRepository) GetDetail(ctx context.Context, id uint) (*entity.Restaurant, error) {
	var rest entity.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("Dishes").Preload("Category").
		First(&rest, id).Error
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *RestaurantRepository) Update(ctx context.Context, id uint, updates map[string]any) error {
	return r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("id = ?", id).Updates(updates).Error
}

func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&entity.Restaurant{}, id).Error
}

// List pages promoted restaurants first, the way the storefront shows them.
func (r *RestaurantRepository) List(ctx context.Context, page, limit int) ([]entity.Restaurant, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	var total int64
	if err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Restaurant
	err := r.DB.WithContext(ctx).
		Order("is_promoted DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *RestaurantRepository) Search(ctx context.Context, query string, page, limit int) ([]entity.Restaurant, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	like := "%" + query + "%"

	var total int64
	db := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).Where("name LIKE ?", like)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []entity.Restaurant
	err := r.DB.WithContext(ctx).
		Where("name LIKE ?", like).
		Order("id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, total, err
}

func (r *RestaurantRepository) ListByOwner(ctx context.Context, ownerID uint) ([]entity.Restaurant, error) {
	var out []entity.Restaurant
	err := r.DB.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&out).Error
	return out, err
}

// IDsByOwner returns just the ids of every restaurant the user owns, for
// scoping order queries.
func (r *RestaurantRepository) IDsByOwner(ctx context.Context, ownerID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("owner_id = ?", ownerID).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *RestaurantRepository) IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("id = ? AND owner_id = ?", restID, userID).
		Count(&cnt).Error
	return cnt > 0, err
}

// Promote marks the restaurant promoted until the given time.
func (r *RestaurantRepository) Promote(tx *gorm.DB, restID uint, until time.Time) error {
	return tx.Model(&entity.Restaurant{}).Where("id = ?", restID).
		Updates(map[string]any{"is_promoted": true, "promoted_until": until}).Error
}

// ExpirePromotions clears the promotion flag on every restaurant whose
// window has passed. Returns how many rows were cleared.
func (r *RestaurantRepository) ExpirePromotions(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, now).
		Updates(map[string]any{"is_promoted": false, "promoted_until": nil})
	return res.RowsAffected, res.Error
}
