package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// ProductRepository persists Product aggregates. FindByID returns
// shared.ErrProductNotFound when the id is unknown.
type ProductRepository interface {
	shared.Repository[Product]

	// FindBySKU returns the product with the given SKU or shared.ErrProductNotFound
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	// FindExistingIDs returns the subset of ids that exist, in no particular order.
	// Used for batch existence checks before creating orders or movements.
	FindExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
}
