package warehouse

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// WarehouseRepository persists Warehouse aggregates
type WarehouseRepository interface {
	shared.Repository[Warehouse]
}

// ZoneRepository persists Zone aggregates
type ZoneRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Zone, error)
	FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]Zone, error)
	Save(ctx context.Context, zone *Zone) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LocationRepository persists Location aggregates
type LocationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Location, error)
	FindByZone(ctx context.Context, zoneID uuid.UUID) ([]Location, error)
	// Exists reports whether the location exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// FindFirst returns the oldest location, used to pick a default
	// receiving slot. Returns shared.ErrNoLocationAvailable when none exist.
	FindFirst(ctx context.Context) (*Location, error)
	Save(ctx context.Context, location *Location) error
	Delete(ctx context.Context, id uuid.UUID) error
}
