package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

// GormStockBalanceRepository implements StockBalanceRepository using GORM
type GormStockBalanceRepository struct {
	db *gorm.DB
}

// NewGormStockBalanceRepository creates a new GormStockBalanceRepository
func NewGormStockBalanceRepository(db *gorm.DB) *GormStockBalanceRepository {
	return &GormStockBalanceRepository{db: db}
}

// lockForUpdate appends FOR UPDATE on dialects that support row locks.
// SQLite serializes writers on the database lock, so the clause is skipped there.
func lockForUpdate(query *gorm.DB) *gorm.DB {
	if query.Dialector.Name() == "sqlite" {
		return query
	}
	return query.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindByProductAndLocation returns the balance row for a product-location pair,
// locked for update when called inside a transaction
func (r *GormStockBalanceRepository) FindByProductAndLocation(ctx context.Context, productID, locationID uuid.UUID) (*inventory.StockBalance, error) {
	var balance inventory.StockBalance
	query := lockForUpdate(r.db.WithContext(ctx)).
		Where("product_id = ? AND location_id = ?", productID, locationID)

	if err := query.First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrBalanceNotFound.WithDetails(map[string]interface{}{
				"product_id":  productID.String(),
				"location_id": locationID.String(),
			})
		}
		return nil, err
	}
	return &balance, nil
}

// FindByProductFIFO returns every positive balance for the product ordered by
// row id ascending, which is creation order. Rows are locked for update so a
// concurrent allocation cannot drain the same stock twice.
func (r *GormStockBalanceRepository) FindByProductFIFO(ctx context.Context, productID uuid.UUID) ([]inventory.StockBalance, error) {
	var balances []inventory.StockBalance
	query := lockForUpdate(r.db.WithContext(ctx)).
		Where("product_id = ? AND quantity > 0", productID).
		Order("id ASC")

	if err := query.Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

// Increase adds quantity at the location, creating the row when absent
func (r *GormStockBalanceRepository) Increase(ctx context.Context, productID, locationID uuid.UUID, quantity int64) (*inventory.StockBalance, error) {
	balance, err := r.FindByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		if !errors.Is(err, shared.ErrBalanceNotFound) {
			return nil, err
		}
		created, err := inventory.NewStockBalance(productID, locationID, quantity)
		if err != nil {
			return nil, err
		}
		if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
			return nil, err
		}
		return created, nil
	}

	if err := balance.Increase(quantity); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Save(balance).Error; err != nil {
		return nil, err
	}
	return balance, nil
}

// Decrease removes quantity at the location. A row that reaches zero is deleted
// so absence and zero stay interchangeable.
func (r *GormStockBalanceRepository) Decrease(ctx context.Context, productID, locationID uuid.UUID, quantity int64) error {
	balance, err := r.FindByProductAndLocation(ctx, productID, locationID)
	if err != nil {
		return err
	}

	if err := balance.Decrease(quantity); err != nil {
		return err
	}

	if balance.IsDepleted() {
		return r.db.WithContext(ctx).Delete(&inventory.StockBalance{}, "id = ?", balance.ID).Error
	}
	return r.db.WithContext(ctx).Save(balance).Error
}

// QueryViews returns display-ready balance rows joined with product and location identity
func (r *GormStockBalanceRepository) QueryViews(ctx context.Context, query inventory.BalanceQuery) ([]inventory.BalanceView, int64, error) {
	base := r.db.WithContext(ctx).
		Table("stock_balances").
		Joins("JOIN products ON products.id = stock_balances.product_id").
		Joins("JOIN locations ON locations.id = stock_balances.location_id")

	if query.ProductID != nil {
		base = base.Where("stock_balances.product_id = ?", *query.ProductID)
	}
	if query.LocationID != nil {
		base = base.Where("stock_balances.location_id = ?", *query.LocationID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)

	var views []inventory.BalanceView
	err := base.
		Select(`stock_balances.id AS balance_id,
			stock_balances.product_id,
			products.sku AS product_sku,
			products.name AS product_name,
			stock_balances.location_id,
			locations.code AS location_code,
			stock_balances.quantity,
			stock_balances.updated_at`).
		Order("stock_balances.id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Scan(&views).Error
	if err != nil {
		return nil, 0, err
	}
	if views == nil {
		views = []inventory.BalanceView{}
	}
	return views, total, nil
}

// ExistsForLocation reports whether any balance references the location
func (r *GormStockBalanceRepository) ExistsForLocation(ctx context.Context, locationID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockBalance{}).
		Where("location_id = ?", locationID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// normalizePage clamps pagination parameters to sane bounds
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// Ensure GormStockBalanceRepository implements StockBalanceRepository
var _ inventory.StockBalanceRepository = (*GormStockBalanceRepository)(nil)
