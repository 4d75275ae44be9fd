package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BalanceQuery filters balance lookups
type BalanceQuery struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
	Page       int
	PageSize   int
}

// MovementQuery filters ledger reads
type MovementQuery struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
	Type       *MovementType
	Page       int
	PageSize   int
}

// BalanceView is a balance row joined with product and location identity for display
type BalanceView struct {
	BalanceID    int64     `json:"balance_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductSKU   string    `json:"product_sku"`
	ProductName  string    `json:"product_name"`
	LocationID   uuid.UUID `json:"location_id"`
	LocationCode string    `json:"location_code"`
	Quantity     int64     `json:"quantity"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementView is a ledger row joined with product and location identity for display
type MovementView struct {
	MovementID       uuid.UUID  `json:"movement_id"`
	Type             string     `json:"type"`
	ProductID        uuid.UUID  `json:"product_id"`
	ProductSKU       string     `json:"product_sku"`
	ProductName      string     `json:"product_name"`
	FromLocationID   *uuid.UUID `json:"from_location_id,omitempty"`
	FromLocationCode *string    `json:"from_location_code,omitempty"`
	ToLocationID     *uuid.UUID `json:"to_location_id,omitempty"`
	ToLocationCode   *string    `json:"to_location_code,omitempty"`
	Quantity         int64      `json:"quantity"`
	ReferenceID      *string    `json:"reference_id,omitempty"`
	CreatedBy        *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// StockBalanceRepository persists balance rows. Increase and Decrease are
// the only mutations; both must run inside a transaction scope so that a
// movement's effects commit or roll back as one unit.
type StockBalanceRepository interface {
	// FindByProductAndLocation returns the balance row, locking it for
	// update when called inside a transaction. Returns
	// shared.ErrBalanceNotFound when no row exists.
	FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*StockBalance, error)
	// FindByProductFIFO returns every positive balance for the product in
	// allocation order (oldest row first), locked for update inside a
	// transaction.
	FindByProductFIFO(ctx context.Context, productID uuid.UUID) ([]StockBalance, error)
	// Increase adds quantity at the location, creating the row when absent
	Increase(ctx context.Context, productID, locationID uuid.UUID, quantity int64) (*StockBalance, error)
	// Decrease removes quantity at the location. Fails with
	// shared.ErrBalanceNotFound when no row exists and
	// shared.ErrInsufficientStock when the row holds less than requested.
	// A row that reaches zero is deleted.
	Decrease(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error
	// QueryViews returns display-ready balance rows matching the query
	QueryViews(ctx context.Context, query BalanceQuery) ([]BalanceView, int64, error)
	// ExistsForLocation reports whether any balance references the location
	ExistsForLocation(ctx context.Context, locationID uuid.UUID) (bool, error)
}

// StockMovementRepository is the append-only ledger store
type StockMovementRepository interface {
	// Create appends a movement. Movements are never updated or deleted.
	Create(ctx context.Context, movement *StockMovement) error
	// FindByID returns a single ledger row
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)
	// FindViewByID returns a single display-ready ledger row
	FindViewByID(ctx context.Context, id uuid.UUID) (*MovementView, error)
	// QueryViews returns display-ready ledger rows, newest first
	QueryViews(ctx context.Context, query MovementQuery) ([]MovementView, int64, error)
}
