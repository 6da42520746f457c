package repository

import (
	"context"

	"medstore/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// FindPendingByUserID returns the user's active cart.
	FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (model.Order, error)
	// Save persists a loaded order. The write is conditional on the order's
	// version and fails with ErrConflict when a concurrent write got there
	// first (lost-update guard on cart mutation).
	Save(ctx context.Context, order model.Order) (model.Order, error)
}
