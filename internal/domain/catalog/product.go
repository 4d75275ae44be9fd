package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wms/backend/internal/domain/shared"
)

// Product is a sellable/storable item tracked by the warehouse
type Product struct {
	shared.AuditedAggregateRoot
	SKU     string           `gorm:"size:100;not null;uniqueIndex"`
	Name    string           `gorm:"size:255;not null"`
	Barcode *string          `gorm:"size:100"`
	Price   *decimal.Decimal `gorm:"type:decimal(12,2)"`
}

// TableName returns the database table name
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with the given SKU and name
func NewProduct(sku, name string) (*Product, error) {
	sku = strings.TrimSpace(sku)
	name = strings.TrimSpace(name)
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product SKU is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	return &Product{
		AuditedAggregateRoot: shared.AuditedAggregateRoot{
			BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		},
		SKU:  sku,
		Name: name,
	}, nil
}

// Update changes the product name
func (p *Product) Update(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	p.Name = name
	p.IncrementVersion()
	return nil
}

// SetBarcode sets the optional barcode
func (p *Product) SetBarcode(barcode string) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		p.Barcode = nil
		return
	}
	p.Barcode = &barcode
}

// SetPrice sets the optional unit price
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	p.Price = &price
	return nil
}
