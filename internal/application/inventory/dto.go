package inventory

import (
	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/inventory"
)

// CreateMovementRequest carries everything needed to record one movement
type CreateMovementRequest struct {
	Type           string
	ProductID      uuid.UUID
	FromLocationID *uuid.UUID
	ToLocationID   *uuid.UUID
	Quantity       int64
	ReferenceID    *string
	CreatedBy      uuid.UUID
}

// ListMovementsRequest filters ledger reads
type ListMovementsRequest struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
	Type       *string
	Page       int
	PageSize   int
}

// ListBalancesRequest filters balance reads
type ListBalancesRequest struct {
	ProductID  *uuid.UUID
	LocationID *uuid.UUID
	Page       int
	PageSize   int
}

func (r ListMovementsRequest) toQuery() inventory.MovementQuery {
	q := inventory.MovementQuery{
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
	if r.Type != nil {
		mt := inventory.MovementType(*r.Type)
		q.Type = &mt
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	return q
}

func (r ListBalancesRequest) toQuery() inventory.BalanceQuery {
	q := inventory.BalanceQuery{
		ProductID:  r.ProductID,
		LocationID: r.LocationID,
		Page:       r.Page,
		PageSize:   r.PageSize,
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	return q
}
