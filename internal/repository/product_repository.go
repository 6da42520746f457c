package repository

import (
	"context"
	"errors"

	"medstore/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a write loses an optimistic-version race or
// hits a unique constraint.
var ErrConflict = errors.New("conflict")

// Persistence contract for the catalog. Business rules live in the usecases.
type ProductRepository interface {
	List(ctx context.Context, category string) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error
}
