package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"

	"gorm.io/datatypes"
)

// OrderUsecase covers the customer side of a confirmed order.
type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type ConfirmOrderInput struct {
	FullName      string
	Phone         string
	City          string
	Street        string
	Country       string
	PaymentMethod string
	Notes         string
}

// ConfirmOrder is the only pending -> processing transition point. After it
// succeeds the items are frozen; only status, notes and shipping evolve.
func (u *OrderUsecase) ConfirmOrder(ctx context.Context, userID int64, orderID int64, in ConfirmOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if strings.TrimSpace(in.FullName) == "" ||
		strings.TrimSpace(in.Phone) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.Street) == "" ||
		strings.TrimSpace(in.Country) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "all shipping fields are required")
	}

	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))
	if method != model.PaymentMethodCash && method != model.PaymentMethodCard {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "payment method is required")
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

		if order.UserID != userID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if order.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusBadRequest, "order already confirmed")
		}

		order.ShippingAddress = datatypes.NewJSONType(model.ShippingAddress{
			FullName: in.FullName,
			Phone:    in.Phone,
			City:     in.City,
			Street:   in.Street,
			Country:  in.Country,
		})
		order.Payment = datatypes.NewJSONType(model.Payment{Method: method})
		order.Notes = in.Notes
		order.Status = model.OrderStatusProcessing
		order.StatusHistory = append(order.StatusHistory, model.StatusChange{
			Status: model.OrderStatusProcessing,
			At:     time.Now(),
			Note:   "Order confirmed by customer",
		})

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

// ListMyOrders returns all of the user's orders, newest first.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByUserID(ctx, userID)
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
