package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"
)

type AdminOrderUsecase struct {
	tx repo.TransactionManager
}

func NewAdminOrderUsecase(tx repo.TransactionManager) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx}
}

type AdminUpdateOrderInput struct {
	Status        string
	Note          string
	ShippingPrice float64
}

func (u *AdminOrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	var outs []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListAll(ctx)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = orders
		return nil
	})

	if err != nil {
		return []model.Order{}, err
	}
	return outs, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = order
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// UpdateOrder applies an optional status change and always recomputes the
// total as item sum plus shipping. Re-submitting the current status is a
// no-op for the history trail. Backward transitions are not blocked.
func (u *AdminOrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in AdminUpdateOrderInput) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		newStatus := model.OrderStatus(strings.TrimSpace(in.Status))
		if adminSettableStatus(newStatus) && newStatus != order.Status {
			note := in.Note
			if note == "" {
				note = fmt.Sprintf("Status changed to %s", newStatus)
			}
			order.Status = newStatus
			order.StatusHistory = append(order.StatusHistory, model.StatusChange{
				Status: newStatus,
				At:     time.Now(),
				Note:   note,
			})
		}

		order.Total = sumItems(order.Items) + in.ShippingPrice

		saved, err := r.Orders().Save(ctx, order)
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusConflict, "order was modified concurrently, retry")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = saved
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// pending is deliberately absent: the only way out of pending is customer
// confirmation.
func adminSettableStatus(s model.OrderStatus) bool {
	switch s {
	case model.OrderStatusProcessing, model.OrderStatusShipped,
		model.OrderStatusDelivered, model.OrderStatusCancelled:
		return true
	}
	return false
}
