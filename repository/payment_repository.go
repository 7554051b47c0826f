package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

type PaymentRepository struct {
	DB *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

func (r *PaymentRepository) Create(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Payment, error) {
	var out []entity.Payment
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	if out == nil {
		out = []entity.Payment{}
	}
	return out, err
}
