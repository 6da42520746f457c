package usecase_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"medstore/internal/domain/model"
	repo "medstore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock runs the callback against a fixed set of repos.
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders   repo.OrderRepository
	products repo.ProductRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository     { return r.orders }
func (r *TxReposMock) Products() repo.ProductRepository { return r.products }

func newTxManager(orders repo.OrderRepository, products repo.ProductRepository) *TxManagerMock {
	tx := &TxManagerMock{Repos: &TxReposMock{orders: orders, products: products}}
	tx.On("WithinTx", mock.Anything).Return(nil)
	return tx
}

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error) {
	args := m.Called(ctx, userID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	if o, ok := args.Get(0).(model.Order); ok {
		return o, args.Error(1)
	}
	return order, args.Error(1)
}

func (m *OrderRepoMock) Save(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	if o, ok := args.Get(0).(model.Order); ok {
		return o, args.Error(1)
	}
	return order, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, category string) ([]model.Product, error) {
	args := m.Called(ctx, category)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	if created, ok := args.Get(0).(model.Product); ok {
		return created, args.Error(1)
	}
	return p, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type ImageStorageMock struct{ mock.Mock }

func (m *ImageStorageMock) Upload(ctx context.Context, body io.Reader, filename string, contentType string) (string, error) {
	args := m.Called(ctx, body, filename, contentType)
	return args.String(0), args.Error(1)
}

// =====================
// In-memory fakes for multi-step scenarios
// =====================

// fakeOrderRepo keeps orders in a map and enforces the version check the
// same way the GORM repository does.
type fakeOrderRepo struct {
	nextID int64
	orders map[int64]model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1, orders: map[int64]model.Order{}}
}

func (f *fakeOrderRepo) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (f *fakeOrderRepo) FindPendingByUserID(ctx context.Context, userID int64) (model.Order, error) {
	for _, o := range f.orders {
		if o.UserID == userID && o.Status == model.OrderStatusPending {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (f *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, order model.Order) (model.Order, error) {
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) Save(ctx context.Context, order model.Order) (model.Order, error) {
	current, ok := f.orders[order.ID]
	if !ok || current.Version != order.Version {
		return model.Order{}, repo.ErrConflict
	}
	order.Version++
	f.orders[order.ID] = order
	return order, nil
}

type fakeProductRepo struct {
	products map[int64]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[int64]model.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) List(ctx context.Context, category string) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id int64) (model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p model.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return repo.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

// fakeTxManager runs the callback directly against the fakes.
type fakeTxManager struct {
	repos repo.TxRepos
}

func (f *fakeTxManager) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(f.repos)
}

func newFakeTx(orders repo.OrderRepository, products repo.ProductRepository) *fakeTxManager {
	return &fakeTxManager{repos: &TxReposMock{orders: orders, products: products}}
}

// =====================
// Helpers
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}

func assertErrStatus(t *testing.T, err error, wantStatus int) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.HasPrefix(err.Error(), fmt.Sprintf("%d:", wantStatus)), "err=%q want status %d", err.Error(), wantStatus)
	}
}
