package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
)

func TestGormStockMovementRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockMovementRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "SKU-001", "Widget")
	location := seedLocation(t, db, "A-01-01")
	actor := uuid.New()

	movement, err := inventory.NewStockMovement(
		inventory.MovementTypeIn, product.ID, nil, &location.ID, 10, nil, actor)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, movement))

	t.Run("finds the raw row", func(t *testing.T) {
		found, err := repo.FindByID(ctx, movement.ID)
		require.NoError(t, err)
		assert.Equal(t, inventory.MovementTypeIn, found.Type)
		assert.Equal(t, int64(10), found.Quantity)
		require.NotNil(t, found.CreatedBy)
		assert.Equal(t, actor, *found.CreatedBy)
	})

	t.Run("finds the display view", func(t *testing.T) {
		view, err := repo.FindViewByID(ctx, movement.ID)
		require.NoError(t, err)
		assert.Equal(t, movement.ID, view.MovementID)
		assert.Equal(t, "SKU-001", view.ProductSKU)
		require.NotNil(t, view.ToLocationCode)
		assert.Equal(t, "A-01-01", *view.ToLocationCode)
		assert.Nil(t, view.FromLocationCode)
	})

	t.Run("returns NOT_FOUND for unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindViewByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormStockMovementRepository_QueryViews(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormStockMovementRepository(db)
	ctx := context.Background()

	widget := seedProduct(t, db, "SKU-001", "Widget")
	gadget := seedProduct(t, db, "SKU-002", "Gadget")
	locA := seedLocation(t, db, "A-01-01")
	locB := seedLocation(t, db, "B-01-01")
	actor := uuid.New()

	ref := "ORDER-" + uuid.New().String()
	seedMovement := func(mt inventory.MovementType, productID uuid.UUID, from, to *uuid.UUID, qty int64, createdAt time.Time) *inventory.StockMovement {
		m, err := inventory.NewStockMovement(mt, productID, from, to, qty, &ref, actor)
		require.NoError(t, err)
		m.CreatedAt = createdAt
		require.NoError(t, repo.Create(ctx, m))
		return m
	}

	base := time.Now().Add(-time.Hour)
	seedMovement(inventory.MovementTypeIn, widget.ID, nil, &locA.ID, 10, base)
	seedMovement(inventory.MovementTypeTransfer, widget.ID, &locA.ID, &locB.ID, 4, base.Add(time.Minute))
	newest := seedMovement(inventory.MovementTypeOut, gadget.ID, &locB.ID, nil, 2, base.Add(2*time.Minute))

	t.Run("returns newest first", func(t *testing.T) {
		views, total, err := repo.QueryViews(ctx, inventory.MovementQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, views, 3)
		assert.Equal(t, newest.ID, views[0].MovementID)
	})

	t.Run("filters by product", func(t *testing.T) {
		views, total, err := repo.QueryViews(ctx, inventory.MovementQuery{ProductID: &widget.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, views, 2)
	})

	t.Run("filters by location on either side", func(t *testing.T) {
		views, total, err := repo.QueryViews(ctx, inventory.MovementQuery{LocationID: &locB.ID})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, views, 2)
	})

	t.Run("filters by type", func(t *testing.T) {
		mt := inventory.MovementTypeTransfer
		views, total, err := repo.QueryViews(ctx, inventory.MovementQuery{Type: &mt})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, views, 1)
		assert.Equal(t, "TRANSFER", views[0].Type)
		require.NotNil(t, views[0].FromLocationCode)
		assert.Equal(t, "A-01-01", *views[0].FromLocationCode)
		require.NotNil(t, views[0].ToLocationCode)
		assert.Equal(t, "B-01-01", *views[0].ToLocationCode)
		require.NotNil(t, views[0].ReferenceID)
		assert.Equal(t, ref, *views[0].ReferenceID)
	})
}
