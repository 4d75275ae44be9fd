package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// GormZoneRepository implements ZoneRepository using GORM
type GormZoneRepository struct {
	db *gorm.DB
}

// NewGormZoneRepository creates a new GormZoneRepository
func NewGormZoneRepository(db *gorm.DB) *GormZoneRepository {
	return &GormZoneRepository{db: db}
}

// FindByID finds a zone by its ID
func (r *GormZoneRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Zone, error) {
	var zone warehouse.Zone
	if err := r.db.WithContext(ctx).First(&zone, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &zone, nil
}

// FindByWarehouse returns all zones in a warehouse
func (r *GormZoneRepository) FindByWarehouse(ctx context.Context, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	var zones []warehouse.Zone
	if err := r.db.WithContext(ctx).
		Where("warehouse_id = ?", warehouseID).
		Order("code ASC").
		Find(&zones).Error; err != nil {
		return nil, err
	}
	return zones, nil
}

// Save creates or updates a zone
func (r *GormZoneRepository) Save(ctx context.Context, zone *warehouse.Zone) error {
	return r.db.WithContext(ctx).Save(zone).Error
}

// Delete deletes a zone
func (r *GormZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Zone{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormZoneRepository implements ZoneRepository
var _ warehouse.ZoneRepository = (*GormZoneRepository)(nil)
