package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID returns the order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrOrderNotFound.WithDetails(map[string]interface{}{
				"order_id": id.String(),
			})
		}
		return nil, err
	}
	return &o, nil
}

// FindByIDForUpdate returns the order locked for update so concurrent status
// transitions serialize on the row
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := lockForUpdate(r.db.WithContext(ctx)).
		Preload("Items").
		First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrOrderNotFound.WithDetails(map[string]interface{}{
				"order_id": id.String(),
			})
		}
		return nil, err
	}
	return &o, nil
}

// FindByNumber returns the order with the given order number
func (r *GormOrderRepository) FindByNumber(ctx context.Context, number string) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", number).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrOrderNotFound.WithDetails(map[string]interface{}{
				"order_number": number,
			})
		}
		return nil, err
	}
	return &o, nil
}

// FindAll returns a page of orders with their items plus the total count
func (r *GormOrderRepository) FindAll(ctx context.Context, query order.Query) ([]order.Order, int64, error) {
	base := r.db.WithContext(ctx).Model(&order.Order{})

	if query.Type != nil {
		base = base.Where("type = ?", query.Type.String())
	}
	if query.Status != nil {
		base = base.Where("status = ?", query.Status.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)

	var orders []order.Order
	err := base.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	if orders == nil {
		orders = []order.Order{}
	}
	return orders, total, nil
}

// Create inserts the order and its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// Save updates the order row. Items are immutable after creation and are
// deliberately excluded from the update.
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(o).Error
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)
