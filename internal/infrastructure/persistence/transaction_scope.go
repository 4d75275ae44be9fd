package persistence

import (
	"context"

	"gorm.io/gorm"

	appinv "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/warehouse"
)

// GormTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides access to all repositories within a transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// BalanceRepo returns the stock balance repository scoped to the current transaction
func (r *gormTransactionalRepositories) BalanceRepo() inventory.StockBalanceRepository {
	return NewGormStockBalanceRepository(r.tx)
}

// MovementRepo returns the stock movement repository scoped to the current transaction
func (r *gormTransactionalRepositories) MovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormTransactionalRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// LocationRepo returns the location repository scoped to the current transaction
func (r *gormTransactionalRepositories) LocationRepo() warehouse.LocationRepository {
	return NewGormLocationRepository(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
