package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
)

// CreateProductRequest carries the fields for a new product
type CreateProductRequest struct {
	SKU     string
	Name    string
	Barcode *string
	Price   *decimal.Decimal
}

// UpdateProductRequest carries the mutable product fields
type UpdateProductRequest struct {
	ID      uuid.UUID
	Name    string
	Barcode *string
	Price   *decimal.Decimal
}

// ProductService manages the product catalog
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// CreateProduct registers a new product. SKUs are unique; creating a
// duplicate fails with ALREADY_EXISTS.
func (s *ProductService) CreateProduct(ctx context.Context, req CreateProductRequest) (*catalog.Product, error) {
	if _, err := s.products.FindBySKU(ctx, req.SKU); err == nil {
		return nil, shared.ErrAlreadyExists.WithDetails(map[string]interface{}{
			"sku": req.SKU,
		})
	}

	p, err := catalog.NewProduct(req.SKU, req.Name)
	if err != nil {
		return nil, err
	}
	if req.Barcode != nil {
		p.SetBarcode(*req.Barcode)
	}
	if req.Price != nil {
		if err := p.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID.String()),
		zap.String("sku", p.SKU))
	return p, nil
}

// GetProduct returns one product by id
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	return s.products.FindByID(ctx, id)
}

// ListProducts returns a page of products with pagination totals
func (s *ProductService) ListProducts(ctx context.Context, filter shared.Filter) (shared.Paginated[catalog.Product], error) {
	if def := shared.DefaultFilter(); filter.Page < 1 || filter.PageSize < 1 {
		if filter.Page < 1 {
			filter.Page = def.Page
		}
		if filter.PageSize < 1 {
			filter.PageSize = def.PageSize
		}
	}
	items, total, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[catalog.Product]{}, err
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// UpdateProduct changes name, barcode and price
func (s *ProductService) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*catalog.Product, error) {
	p, err := s.products.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Name); err != nil {
		return nil, err
	}
	if req.Barcode != nil {
		p.SetBarcode(*req.Barcode)
	}
	if req.Price != nil {
		if err := p.SetPrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if err := s.products.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}
