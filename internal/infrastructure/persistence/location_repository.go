package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// GormLocationRepository implements LocationRepository using GORM
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GormLocationRepository
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// FindByID finds a location by its ID
func (r *GormLocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Location, error) {
	var location warehouse.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &location, nil
}

// FindByZone returns all locations in a zone
func (r *GormLocationRepository) FindByZone(ctx context.Context, zoneID uuid.UUID) ([]warehouse.Location, error) {
	var locations []warehouse.Location
	if err := r.db.WithContext(ctx).
		Where("zone_id = ?", zoneID).
		Order("code ASC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// Exists reports whether the location exists
func (r *GormLocationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&warehouse.Location{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindFirst returns the oldest location, used as the default receiving slot
func (r *GormLocationRepository) FindFirst(ctx context.Context) (*warehouse.Location, error) {
	var location warehouse.Location
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNoLocationAvailable
		}
		return nil, err
	}
	return &location, nil
}

// Save creates or updates a location
func (r *GormLocationRepository) Save(ctx context.Context, location *warehouse.Location) error {
	return r.db.WithContext(ctx).Save(location).Error
}

// Delete deletes a location
func (r *GormLocationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Location{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormLocationRepository implements LocationRepository
var _ warehouse.LocationRepository = (*GormLocationRepository)(nil)
