package inventory

import (
	"context"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/warehouse"
)

// TransactionScope provides transactional access to the repositories a
// fulfillment operation touches. Everything executed within one scope
// commits or rolls back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories bound to
// the current transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// BalanceRepo returns the stock balance repository scoped to the current transaction
	BalanceRepo() inventory.StockBalanceRepository
	// MovementRepo returns the movement ledger repository scoped to the current transaction
	MovementRepo() inventory.StockMovementRepository
	// OrderRepo returns the order repository scoped to the current transaction
	OrderRepo() order.OrderRepository
	// LocationRepo returns the location repository scoped to the current transaction
	LocationRepo() warehouse.LocationRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with in-memory repositories.
type NoOpTransactionScope struct {
	balanceRepo  inventory.StockBalanceRepository
	movementRepo inventory.StockMovementRepository
	orderRepo    order.OrderRepository
	locationRepo warehouse.LocationRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	balanceRepo inventory.StockBalanceRepository,
	movementRepo inventory.StockMovementRepository,
	orderRepo order.OrderRepository,
	locationRepo warehouse.LocationRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		balanceRepo:  balanceRepo,
		movementRepo: movementRepo,
		orderRepo:    orderRepo,
		locationRepo: locationRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BalanceRepo returns the stock balance repository.
func (s *NoOpTransactionScope) BalanceRepo() inventory.StockBalanceRepository {
	return s.balanceRepo
}

// MovementRepo returns the movement ledger repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.StockMovementRepository {
	return s.movementRepo
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository {
	return s.orderRepo
}

// LocationRepo returns the location repository.
func (s *NoOpTransactionScope) LocationRepo() warehouse.LocationRepository {
	return s.locationRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
