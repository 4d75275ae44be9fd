package order

import (
	"context"

	"github.com/google/uuid"
)

// Query filters order listings
type Query struct {
	Type     *OrderType
	Status   *OrderStatus
	Page     int
	PageSize int
}

// OrderRepository persists Order aggregates together with their items
type OrderRepository interface {
	// FindByID returns the order with its items, or shared.ErrOrderNotFound
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate returns the order locked for update. Must run
	// inside a transaction scope; status transitions go through it so
	// concurrent updates serialize.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindByNumber returns the order with the given order number
	FindByNumber(ctx context.Context, number string) (*Order, error)
	// FindAll returns a page of orders (items included) plus the total count
	FindAll(ctx context.Context, query Query) ([]Order, int64, error)
	// Create inserts the order and its items
	Create(ctx context.Context, o *Order) error
	// Save updates the order row (items are immutable after creation)
	Save(ctx context.Context, o *Order) error
}
