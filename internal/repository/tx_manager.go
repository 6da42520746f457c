package repository

import "context"

// TxRepos are the repositories available inside one transaction.
type TxRepos interface {
	Orders() OrderRepository
	Products() ProductRepository
}

// TransactionManager hides begin/commit/rollback from the usecases.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
