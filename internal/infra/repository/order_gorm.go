package repository

import (
	"context"
	"errors"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// The pending order is the active cart. At most one exists per user.
func (r *OrderGormRepository) FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.OrderStatusPending).
		Order("id desc").
		First(&order).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}

	return orders, nil
}

func (r *OrderGormRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order

	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}

	return orders, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, err
	}
	return order, nil
}

// Save writes the full row conditional on the version the caller read.
// RowsAffected == 0 means another write bumped the version in between.
func (r *OrderGormRepository) Save(ctx context.Context, order model.Order) (model.Order, error) {
	readVersion := order.Version
	order.Version = readVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND version = ?", order.ID, readVersion).
		Updates(map[string]interface{}{
			"items":            order.Items,
			"total":            order.Total,
			"status":           order.Status,
			"shipping_address": order.ShippingAddress,
			"payment":          order.Payment,
			"notes":            order.Notes,
			"status_history":   order.StatusHistory,
			"version":          order.Version,
		})

	if res.Error != nil {
		return model.Order{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Order{}, repo.ErrConflict
	}
	return order, nil
}
