package warehouse

import (
	"strings"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// Warehouse is a physical site holding stock
type Warehouse struct {
	shared.BaseAggregateRoot
	Code    string  `gorm:"size:50;not null;uniqueIndex"`
	Name    string  `gorm:"size:255;not null"`
	Address *string `gorm:"size:500"`
}

// TableName returns the database table name
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Warehouse name is required")
	}
	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
	}, nil
}

// SetAddress sets the optional street address
func (w *Warehouse) SetAddress(address string) {
	address = strings.TrimSpace(address)
	if address == "" {
		w.Address = nil
		return
	}
	w.Address = &address
}

// Zone is a named area inside a warehouse
type Zone struct {
	shared.BaseAggregateRoot
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_zones_warehouse_code"`
	Code        string    `gorm:"size:50;not null;uniqueIndex:idx_zones_warehouse_code"`
	Name        string    `gorm:"size:255;not null"`
}

// TableName returns the database table name
func (Zone) TableName() string {
	return "zones"
}

// NewZone creates a new zone in the given warehouse
func NewZone(warehouseID uuid.UUID, code, name string) (*Zone, error) {
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Zone warehouse is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Zone code is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Zone name is required")
	}
	return &Zone{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		WarehouseID:       warehouseID,
		Code:              code,
		Name:              name,
	}, nil
}

// Location is a storage slot inside a zone. Stock balances reference locations.
type Location struct {
	shared.BaseAggregateRoot
	ZoneID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_locations_zone_code"`
	Code   string    `gorm:"size:50;not null;uniqueIndex:idx_locations_zone_code"`
	Name   *string   `gorm:"size:255"`
}

// TableName returns the database table name
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new storage location in the given zone
func NewLocation(zoneID uuid.UUID, code string) (*Location, error) {
	code = strings.TrimSpace(code)
	if zoneID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location zone is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Location code is required")
	}
	return &Location{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ZoneID:            zoneID,
		Code:              code,
	}, nil
}

// SetName sets the optional display name
func (l *Location) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		l.Name = nil
		return
	}
	l.Name = &name
}
