package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogapp "github.com/wms/backend/internal/application/catalog"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// ProductHandler handles product catalog API endpoints
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// CreateProductRequest represents a request to create a product
// @Description Request body for registering a product
type CreateProductRequest struct {
	SKU     string  `json:"sku" binding:"required,max=64" example:"SKU-001"`
	Name    string  `json:"name" binding:"required,max=255" example:"Widget"`
	Barcode *string `json:"barcode" binding:"omitempty,max=64" example:"4006381333931"`
	Price   *string `json:"price" binding:"omitempty" example:"19.99"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name    string  `json:"name" binding:"required,max=255" example:"Widget v2"`
	Barcode *string `json:"barcode" binding:"omitempty,max=64"`
	Price   *string `json:"price" binding:"omitempty" example:"24.99"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	SKU       string  `json:"sku" example:"SKU-001"`
	Name      string  `json:"name" example:"Widget"`
	Barcode   *string `json:"barcode,omitempty"`
	Price     *string `json:"price,omitempty" example:"19.99"`
	Version   int     `json:"version" example:"1"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// CreateProduct godoc
// @ID           createProduct
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "Product to create"
// @Success      201 {object} APIResponse[ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	price, err := parseOptionalDecimal(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	created, err := h.products.CreateProduct(c.Request.Context(), catalogapp.CreateProductRequest{
		SKU:     req.SKU,
		Name:    req.Name,
		Barcode: req.Barcode,
		Price:   price,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toProductResponse(created))
}

// GetProduct godoc
// @ID           getProductById
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Success      200 {object} APIResponse[ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	found, err := h.products.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(found))
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        search query string false "Search by SKU or name"
// @Success      200 {object} APIResponse[[]ProductResponse]
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.products.ListProducts(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, toProductResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, out, page.Total, page.Page, page.PageSize)
}

// UpdateProduct godoc
// @ID           updateProduct
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID" format(uuid)
// @Param        request body UpdateProductRequest true "Fields to update"
// @Success      200 {object} APIResponse[ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	price, err := parseOptionalDecimal(req.Price)
	if err != nil {
		h.BadRequest(c, "Invalid price")
		return
	}

	updated, err := h.products.UpdateProduct(c.Request.Context(), catalogapp.UpdateProductRequest{
		ID:      id,
		Name:    req.Name,
		Barcode: req.Barcode,
		Price:   price,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProductResponse(updated))
}

// DeleteProduct godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         products
// @Param        id path string true "Product ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.products.DeleteProduct(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID.String(),
		SKU:       p.SKU,
		Name:      p.Name,
		Barcode:   p.Barcode,
		Version:   p.Version,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Price != nil {
		s := p.Price.String()
		resp.Price = &s
	}
	return resp
}

func parseOptionalDecimal(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
