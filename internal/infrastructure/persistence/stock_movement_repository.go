package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The ledger is append-only; no update or delete methods exist.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID returns a single ledger row
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindViewByID returns a single display-ready ledger row
func (r *GormStockMovementRepository) FindViewByID(ctx context.Context, id uuid.UUID) (*inventory.MovementView, error) {
	var view inventory.MovementView
	err := r.viewQuery(ctx).
		Where("stock_movements.id = ?", id).
		Scan(&view).Error
	if err != nil {
		return nil, err
	}
	if view.MovementID == uuid.Nil {
		return nil, shared.ErrNotFound
	}
	return &view, nil
}

// QueryViews returns display-ready ledger rows, newest first
func (r *GormStockMovementRepository) QueryViews(ctx context.Context, query inventory.MovementQuery) ([]inventory.MovementView, int64, error) {
	base := r.db.WithContext(ctx).Table("stock_movements")

	if query.ProductID != nil {
		base = base.Where("stock_movements.product_id = ?", *query.ProductID)
	}
	if query.LocationID != nil {
		base = base.Where("stock_movements.from_location_id = ? OR stock_movements.to_location_id = ?",
			*query.LocationID, *query.LocationID)
	}
	if query.Type != nil {
		base = base.Where("stock_movements.type = ?", query.Type.String())
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)

	var views []inventory.MovementView
	err := r.applyViewJoins(base).
		Order("stock_movements.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&views).Error
	if err != nil {
		return nil, 0, err
	}
	if views == nil {
		views = []inventory.MovementView{}
	}
	return views, total, nil
}

func (r *GormStockMovementRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.applyViewJoins(r.db.WithContext(ctx).Table("stock_movements"))
}

// applyViewJoins attaches product and location identity to ledger rows.
// Location joins are LEFT JOINs because either side may be absent
// depending on the movement type.
func (r *GormStockMovementRepository) applyViewJoins(query *gorm.DB) *gorm.DB {
	return query.
		Joins("JOIN products ON products.id = stock_movements.product_id").
		Joins("LEFT JOIN locations from_loc ON from_loc.id = stock_movements.from_location_id").
		Joins("LEFT JOIN locations to_loc ON to_loc.id = stock_movements.to_location_id").
		Select(`stock_movements.id AS movement_id,
			stock_movements.type,
			stock_movements.product_id,
			products.sku AS product_sku,
			products.name AS product_name,
			stock_movements.from_location_id,
			from_loc.code AS from_location_code,
			stock_movements.to_location_id,
			to_loc.code AS to_location_code,
			stock_movements.quantity,
			stock_movements.reference_id,
			stock_movements.created_by,
			stock_movements.created_at`)
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
