package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/warehouse"
)

// setupTestDB opens an in-memory SQLite database with the full schema migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&warehouse.Warehouse{},
		&warehouse.Zone{},
		&warehouse.Location{},
		&inventory.StockBalance{},
		&inventory.StockMovement{},
		&order.Order{},
		&order.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

// seedProduct inserts a product and returns it
func seedProduct(t *testing.T, db *gorm.DB, sku, name string) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, name)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

// seedLocation inserts a warehouse, zone and location chain and returns the location
func seedLocation(t *testing.T, db *gorm.DB, code string) *warehouse.Location {
	t.Helper()
	wh, err := warehouse.NewWarehouse("WH-"+code, "Warehouse "+code)
	require.NoError(t, err)
	require.NoError(t, db.Create(wh).Error)

	zone, err := warehouse.NewZone(wh.ID, "Z-"+code, "Zone "+code)
	require.NoError(t, err)
	require.NoError(t, db.Create(zone).Error)

	loc, err := warehouse.NewLocation(zone.ID, code)
	require.NoError(t, err)
	require.NoError(t, db.Create(loc).Error)
	return loc
}

// seedBalance inserts a stock balance row directly
func seedBalance(t *testing.T, db *gorm.DB, productID, locationID uuid.UUID, quantity int64) *inventory.StockBalance {
	t.Helper()
	balance, err := inventory.NewStockBalance(productID, locationID, quantity)
	require.NoError(t, err)
	require.NoError(t, db.Create(balance).Error)
	return balance
}
