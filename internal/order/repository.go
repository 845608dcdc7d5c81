// File: internal/order/repository.go
package order

import (
	"context"
	"errors"

	"skillmarket_backend/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines data access for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]Order, int64, error)
	HasPending(ctx context.Context, productID, buyerID uuid.UUID) (bool, error)
	UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status Status) (bool, error)
	PurgeByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new GORM order repository.
func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) WithTx(tx *gorm.DB) Repository {
	return &gormRepository{db: tx}
}

func (r *gormRepository) Create(ctx context.Context, o *Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("Product.Seller").Preload("Buyer").
		First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Order not found.")
		}
		return nil, err
	}
	return &o, nil
}

// ListBySeller returns orders placed against the seller's products, newest
// first.
func (r *gormRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID, offset, limit int) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := r.db.WithContext(ctx).Model(&Order{}).
		Where("seller_id = ?", sellerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Product").Preload("Buyer").
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *gormRepository) HasPending(ctx context.Context, productID, buyerID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Order{}).
		Where("product_id = ? AND buyer_id = ? AND status = ?", productID, buyerID, StatusPending).
		Count(&count).Error
	return count > 0, err
}

// UpdateStatusIfPending transitions the order out of pending. The condition
// is part of the UPDATE itself, so two concurrent decisions cannot both win;
// the loser sees false.
func (r *gormRepository) UpdateStatusIfPending(ctx context.Context, id uuid.UUID, status Status) (bool, error) {
	result := r.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// PurgeByProduct removes a product's orders, and the notifications that
// reference them, inside the caller's transaction.
func (r *gormRepository) PurgeByProduct(ctx context.Context, tx *gorm.DB, productID uuid.UUID) error {
	err := tx.WithContext(ctx).
		Exec(`DELETE FROM notifications WHERE order_id IN (SELECT id FROM orders WHERE product_id = ?)`, productID).Error
	if err != nil {
		return err
	}
	return tx.WithContext(ctx).Delete(&Order{}, "product_id = ?", productID).Error
}
