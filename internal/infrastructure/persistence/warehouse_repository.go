package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// GormWarehouseRepository implements WarehouseRepository using GORM
type GormWarehouseRepository struct {
	db *gorm.DB
}

// NewGormWarehouseRepository creates a new GormWarehouseRepository
func NewGormWarehouseRepository(db *gorm.DB) *GormWarehouseRepository {
	return &GormWarehouseRepository{db: db}
}

// FindByID finds a warehouse by its ID
func (r *GormWarehouseRepository) FindByID(ctx context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	var w warehouse.Warehouse
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// FindAll returns a page of warehouses plus the total count
func (r *GormWarehouseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]warehouse.Warehouse, int64, error) {
	base := r.db.WithContext(ctx).Model(&warehouse.Warehouse{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("code ILIKE ? OR name ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Order("code ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var warehouses []warehouse.Warehouse
	if err := query.Find(&warehouses).Error; err != nil {
		return nil, 0, err
	}
	if warehouses == nil {
		warehouses = []warehouse.Warehouse{}
	}
	return warehouses, total, nil
}

// Save creates or updates a warehouse
func (r *GormWarehouseRepository) Save(ctx context.Context, w *warehouse.Warehouse) error {
	return r.db.WithContext(ctx).Save(w).Error
}

// Delete deletes a warehouse
func (r *GormWarehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&warehouse.Warehouse{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormWarehouseRepository implements WarehouseRepository
var _ warehouse.WarehouseRepository = (*GormWarehouseRepository)(nil)
