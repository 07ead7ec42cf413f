package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var ErrInvalidStatus = errors.New("invalid order status")

// Repository archives orders
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores o and its items in one transaction
func (r *Repository) Create(ctx context.Context, o *Order) error {
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListBetween returns orders dated in [from, to), oldest first
func (r *Repository) ListBetween(ctx context.Context, from, to time.Time) ([]Order, error) {
	var orders []Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_date >= ? AND order_date < ?", from, to).
		Order("order_date ASC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
