package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// StockBalance is the on-hand quantity of one product at one location.
// A row only exists while the quantity is positive; reaching zero deletes
// the row, so absence and zero mean the same thing.
//
// The primary key is a plain autoincrement integer rather than a UUID:
// it doubles as the allocation order key. Rows created earlier drain
// first, and because the key is unique there are never FIFO ties.
type StockBalance struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_balances_product_location"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_stock_balances_product_location"`
	Quantity   int64     `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the database table name
func (StockBalance) TableName() string {
	return "stock_balances"
}

// NewStockBalance creates a balance entry for a product at a location
func NewStockBalance(productID, locationID uuid.UUID, quantity int64) (*StockBalance, error) {
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock balance quantity must be positive")
	}
	now := time.Now()
	return &StockBalance{
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Increase adds quantity to the balance
func (b *StockBalance) Increase(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Increase quantity must be positive")
	}
	b.Quantity += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Decrease removes quantity from the balance. It fails with
// INSUFFICIENT_STOCK when the balance holds less than requested,
// leaving the balance untouched.
func (b *StockBalance) Decrease(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Decrease quantity must be positive")
	}
	if b.Quantity < quantity {
		return shared.ErrInsufficientStock.WithDetails(map[string]interface{}{
			"product_id":  b.ProductID.String(),
			"location_id": b.LocationID.String(),
			"available":   b.Quantity,
			"requested":   quantity,
		})
	}
	b.Quantity -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IsDepleted reports whether the balance reached zero and must be removed
func (b *StockBalance) IsDepleted() bool {
	return b.Quantity <= 0
}
