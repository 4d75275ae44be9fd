package warehouse

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// WarehouseService manages the warehouse, zone and location hierarchy
type WarehouseService struct {
	warehouses warehouse.WarehouseRepository
	zones      warehouse.ZoneRepository
	locations  warehouse.LocationRepository
	balances   inventory.StockBalanceRepository
	logger     *zap.Logger
}

// NewWarehouseService creates a warehouse service
func NewWarehouseService(
	warehouses warehouse.WarehouseRepository,
	zones warehouse.ZoneRepository,
	locations warehouse.LocationRepository,
	balances inventory.StockBalanceRepository,
	logger *zap.Logger,
) *WarehouseService {
	return &WarehouseService{
		warehouses: warehouses,
		zones:      zones,
		locations:  locations,
		balances:   balances,
		logger:     logger,
	}
}

// CreateWarehouse registers a new warehouse site
func (s *WarehouseService) CreateWarehouse(ctx context.Context, code, name string, address *string) (*warehouse.Warehouse, error) {
	w, err := warehouse.NewWarehouse(code, name)
	if err != nil {
		return nil, err
	}
	if address != nil {
		w.SetAddress(*address)
	}
	if err := s.warehouses.Save(ctx, w); err != nil {
		return nil, err
	}
	s.logger.Info("warehouse created",
		zap.String("warehouse_id", w.ID.String()),
		zap.String("code", w.Code))
	return w, nil
}

// GetWarehouse returns one warehouse by id
func (s *WarehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	return s.warehouses.FindByID(ctx, id)
}

// ListWarehouses returns a page of warehouses with pagination totals
func (s *WarehouseService) ListWarehouses(ctx context.Context, filter shared.Filter) (shared.Paginated[warehouse.Warehouse], error) {
	if def := shared.DefaultFilter(); filter.Page < 1 || filter.PageSize < 1 {
		if filter.Page < 1 {
			filter.Page = def.Page
		}
		if filter.PageSize < 1 {
			filter.PageSize = def.PageSize
		}
	}
	items, total, err := s.warehouses.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[warehouse.Warehouse]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// CreateZone adds a zone to an existing warehouse
func (s *WarehouseService) CreateZone(ctx context.Context, warehouseID uuid.UUID, code, name string) (*warehouse.Zone, error) {
	if _, err := s.warehouses.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}
	z, err := warehouse.NewZone(warehouseID, code, name)
	if err != nil {
		return nil, err
	}
	if err := s.zones.Save(ctx, z); err != nil {
		return nil, err
	}
	return z, nil
}

// ListZones returns the zones of a warehouse
func (s *WarehouseService) ListZones(ctx context.Context, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	return s.zones.FindByWarehouse(ctx, warehouseID)
}

// CreateLocation adds a storage slot to an existing zone
func (s *WarehouseService) CreateLocation(ctx context.Context, zoneID uuid.UUID, code string, name *string) (*warehouse.Location, error) {
	if _, err := s.zones.FindByID(ctx, zoneID); err != nil {
		return nil, err
	}
	l, err := warehouse.NewLocation(zoneID, code)
	if err != nil {
		return nil, err
	}
	if name != nil {
		l.SetName(*name)
	}
	if err := s.locations.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations returns the locations of a zone
func (s *WarehouseService) ListLocations(ctx context.Context, zoneID uuid.UUID) ([]warehouse.Location, error) {
	return s.locations.FindByZone(ctx, zoneID)
}

// DeleteLocation removes a storage slot. A location still holding stock
// refuses deletion; the balance rows must be moved out first.
func (s *WarehouseService) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	exists, err := s.locations.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound.WithDetails(map[string]interface{}{
			"location_id": id.String(),
		})
	}

	occupied, err := s.balances.ExistsForLocation(ctx, id)
	if err != nil {
		return err
	}
	if occupied {
		return shared.ErrInvalidState.WithDetails(map[string]interface{}{
			"location_id": id.String(),
			"reason":      "location still holds stock",
		})
	}

	if err := s.locations.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("location deleted", zap.String("location_id", id.String()))
	return nil
}
