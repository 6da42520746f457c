package usecase

import (
	"context"
	"net/http"
	"time"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"
)

// CartUsecase owns the pending order acting as the user's cart.
type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
	Size      string
}

// ReplaceItemInput is one entry of the full cart rewrite. Name, price and
// image are ignored on input and re-snapshotted from the catalog.
type ReplaceItemInput struct {
	ProductID int64
	Quantity  int64
	Size      string
}

// GetActiveCart returns the pending order, or a zero-value cart when none
// exists. It never creates one.
func (u *CartUsecase) GetActiveCart(ctx context.Context, userID int64) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindPendingByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			out = emptyCart()
			return nil
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

// AddItem puts a product into the cart, creating the pending order on first
// use. The same (product, size) pair merges into one line item.
func (u *CartUsecase) AddItem(ctx context.Context, userID int64, in AddItemInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "product id is required")
	}
	if in.Quantity < 1 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.InStock {
			return NewHTTPError(http.StatusBadRequest, "product out of stock")
		}

		order, err := r.Orders().FindPendingByUserID(ctx, userID)
		created := false
		if err == repo.ErrNotFound {
			order = newPendingOrder(userID)
			created = true
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// merge on (product, size), otherwise append a fresh snapshot
		merged := false
		for i := range order.Items {
			if order.Items[i].ProductID == in.ProductID && order.Items[i].Size == in.Size {
				order.Items[i].Quantity += in.Quantity
				merged = true
				break
			}
		}
		if !merged {
			order.Items = append(order.Items, snapshotItem(p, in.Quantity, in.Size))
		}

		order.Total = sumItems(order.Items)

		if created {
			saved, err := r.Orders().Create(ctx, order)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = saved
			return nil
		}

		saved, err := r.Orders().Save(ctx, order)
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusConflict, "cart was modified concurrently, retry")
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

// ReplaceItems rebuilds the whole item list. Entries with quantity <= 0 are
// dropped and unresolvable product refs are skipped without error. Calling it
// twice with the same input yields the same cart.
func (u *CartUsecase) ReplaceItems(ctx context.Context, userID int64, items []ReplaceItemInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindPendingByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "no active cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		rebuilt := make([]model.OrderItem, 0, len(items))
		for _, it := range items {
			if it.Quantity <= 0 {
				continue
			}

			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err == repo.ErrNotFound {
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			rebuilt = append(rebuilt, snapshotItem(p, it.Quantity, it.Size))
		}

		order.Items = rebuilt
		order.Total = sumItems(order.Items)

		saved, err := r.Orders().Save(ctx, order)
		if err == repo.ErrConflict {
			return NewHTTPError(http.StatusConflict, "cart was modified concurrently, retry")
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

func emptyCart() model.Order {
	return model.Order{
		Items: []model.OrderItem{},
		Total: 0,
	}
}

func newPendingOrder(userID int64) model.Order {
	now := time.Now()
	return model.Order{
		UserID: userID,
		Items:  []model.OrderItem{},
		Total:  0,
		Status: model.OrderStatusPending,
		StatusHistory: []model.StatusChange{
			{Status: model.OrderStatusPending, At: now, Note: "Cart created"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func snapshotItem(p model.Product, qty int64, size string) model.OrderItem {
	image := ""
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return model.OrderItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		Size:      size,
		Image:     image,
	}
}

// total is always recomputed from the items, never mutated on its own
func sumItems(items []model.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}
