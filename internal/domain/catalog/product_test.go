package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct(" SKU-001 ", " Widget ")
	require.NoError(t, err)
	assert.Equal(t, "SKU-001", p.SKU)
	assert.Equal(t, "Widget", p.Name)
	assert.Nil(t, p.Barcode)
	assert.Nil(t, p.Price)

	_, err = NewProduct("", "Widget")
	assert.Error(t, err)

	_, err = NewProduct("SKU-001", "  ")
	assert.Error(t, err)
}

func TestProduct_SetPrice(t *testing.T) {
	p, err := NewProduct("SKU-001", "Widget")
	require.NoError(t, err)

	require.NoError(t, p.SetPrice(decimal.NewFromFloat(19.99)))
	require.NotNil(t, p.Price)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(19.99)))

	err = p.SetPrice(decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestProduct_Update(t *testing.T) {
	p, err := NewProduct("SKU-001", "Widget")
	require.NoError(t, err)

	v := p.GetVersion()
	require.NoError(t, p.Update("Widget Mk II"))
	assert.Equal(t, "Widget Mk II", p.Name)
	assert.Equal(t, v+1, p.GetVersion())

	assert.Error(t, p.Update(""))
}
