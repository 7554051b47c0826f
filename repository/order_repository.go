package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GEDDY90/wadoo-backend/entity"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

// GetByID loads the order with the relations the authorization policy reads.
func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.WithContext(ctx).
		Preload("Restaurant").Preload("Customer").Preload("Driver").Preload("Items").
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, userID uint, status *entity.OrderStatus) ([]entity.Order, error) {
	db := r.DB.WithContext(ctx).Where("customer_id = ?", userID)
	return r.list(db, status)
}

func (r *OrderRepository) ListByDriver(ctx context.Context, userID uint, status *entity.OrderStatus) ([]entity.Order, error) {
	db := r.DB.WithContext(ctx).Where("driver_id = ?", userID)
	return r.list(db, status)
}

// ListByRestaurants unions the orders across every restaurant the owner
// holds.
func (r *OrderRepository) ListByRestaurants(ctx context.Context, restIDs []uint, status *entity.OrderStatus) ([]entity.Order, error) {
	if len(restIDs) == 0 {
		return []entity.Order{}, nil
	}
	db := r.DB.WithContext(ctx).Where("restaurant_id IN ?", restIDs)
	return r.list(db, status)
}

func (r *OrderRepository) list(db *gorm.DB, status *entity.OrderStatus) ([]entity.Order, error) {
	if status != nil {
		db = db.Where("status = ?", *status)
	}
	var out []entity.Order
	err := db.Order("id DESC").Find(&out).Error
	if out == nil {
		out = []entity.Order{}
	}
	return out, err
}

// ---------------- Guarded writes ----------------

// UpdateStatusGuard flips status only when the order still holds `from`;
// RowsAffected tells the caller whether the step was legal from the current
// state. This is the adjacency check and the concurrency guard in one write.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// AssignDriverGuard claims the order for a driver only while it is still
// unclaimed. Two racing drivers cannot both see RowsAffected == 1.
func (r *OrderRepository) AssignDriverGuard(tx *gorm.DB, orderID, driverID uint) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND driver_id IS NULL", orderID).
		Update("driver_id", driverID)
	return res.RowsAffected, res.Error
}
