package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// Slugify normalizes a category name into its lookup slug.
func Slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// GetOrCreate finds a category by the slug of name, creating it on first use.
func (r *CategoryRepository) GetOrCreate(ctx context.Context, name string) (*entity.Category, error) {
	slug := Slugify(name)
	var cat entity.Category
	err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error
	if err == nil {
		return &cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cat = entity.Category{Name: strings.TrimSpace(name), Slug: slug}
	if err := r.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	var out []entity.Category
	err := r.DB.WithContext(ctx).Find(&out).Error
	return out, err
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var cat entity.Category
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) CountRestaurants(ctx context.Context, categoryID uint) (int64, error) {
	var cnt int64
	err := r.DB.WithContext(ctx).Model(&entity.Restaurant{}).
		Where("category_id = ?", categoryID).
		Count(&cnt).Error
	return cnt, err
}

func (r *CategoryRepository) ListRestaurants(ctx context.Context, categoryID uint, page, limit int) ([]entity.Restaurant, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	var out []entity.Restaurant
	err := r.DB.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("is_promoted DESC, id DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out).Error
	return out, err
}
