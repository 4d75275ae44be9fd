package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/apptest"
	"github.com/wms/backend/internal/domain/shared"
)

func TestProductService_CreateProduct(t *testing.T) {
	repo := apptest.NewFakeProductRepo()
	svc := NewProductService(repo, zap.NewNop())
	ctx := context.Background()

	price := decimal.NewFromFloat(19.99)
	barcode := "4006381333931"
	p, err := svc.CreateProduct(ctx, CreateProductRequest{
		SKU:     "SKU-001",
		Name:    "Widget",
		Barcode: &barcode,
		Price:   &price,
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", p.SKU)
	require.NotNil(t, p.Barcode)
	assert.Equal(t, barcode, *p.Barcode)
	require.NotNil(t, p.Price)
	assert.True(t, price.Equal(*p.Price))

	t.Run("duplicate SKU rejected", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{SKU: "SKU-001", Name: "Other"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrAlreadyExists))
	})

	t.Run("blank SKU rejected", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{SKU: "  ", Name: "Widget"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrInvalidInput))
	})
}

func TestProductService_ListProducts(t *testing.T) {
	repo := apptest.NewFakeProductRepo()
	svc := NewProductService(repo, zap.NewNop())
	ctx := context.Background()

	for _, sku := range []string{"SKU-001", "SKU-002", "SKU-003"} {
		_, err := svc.CreateProduct(ctx, CreateProductRequest{SKU: sku, Name: "Widget " + sku})
		require.NoError(t, err)
	}

	t.Run("computes pagination totals", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, shared.Filter{Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.PageSize)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("zero filter falls back to defaults", func(t *testing.T) {
		page, err := svc.ListProducts(ctx, shared.Filter{})
		require.NoError(t, err)
		def := shared.DefaultFilter()
		assert.Equal(t, def.Page, page.Page)
		assert.Equal(t, def.PageSize, page.PageSize)
		assert.Equal(t, int64(3), page.Total)
	})
}

func TestProductService_UpdateProduct(t *testing.T) {
	repo := apptest.NewFakeProductRepo()
	svc := NewProductService(repo, zap.NewNop())
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, CreateProductRequest{SKU: "SKU-001", Name: "Widget"})
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, UpdateProductRequest{ID: p.ID, Name: "Widget v2"})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, 2, updated.Version)

	negative := decimal.NewFromInt(-1)
	_, err = svc.UpdateProduct(ctx, UpdateProductRequest{ID: p.ID, Name: "Widget v3", Price: &negative})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))
}
