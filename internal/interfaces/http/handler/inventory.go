package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/inventory"
)

// InventoryHandler handles movement and balance API endpoints
type InventoryHandler struct {
	BaseHandler
	movements *inventoryapp.MovementService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(movements *inventoryapp.MovementService) *InventoryHandler {
	return &InventoryHandler{movements: movements}
}

// CreateMovementRequest represents a request to record a stock movement
// @Description Request body for recording one stock movement
type CreateMovementRequest struct {
	Type           string  `json:"type" binding:"required,oneof=IN OUT TRANSFER ADJUSTMENT" example:"TRANSFER"`
	ProductID      string  `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	FromLocationID *string `json:"from_location_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440001"`
	ToLocationID   *string `json:"to_location_id" binding:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440002"`
	Quantity       int64   `json:"quantity" binding:"required,gt=0" example:"25"`
	ReferenceID    *string `json:"reference_id" example:"ORDER-550e8400-e29b-41d4-a716-446655440003"`
}

// MovementResponse represents a ledger entry in API responses
// @Description Stock movement ledger entry with product and location identity
type MovementResponse struct {
	MovementID       string  `json:"movement_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Type             string  `json:"type" example:"TRANSFER"`
	ProductID        string  `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	ProductSKU       string  `json:"product_sku" example:"SKU-001"`
	ProductName      string  `json:"product_name" example:"Widget"`
	FromLocationID   *string `json:"from_location_id,omitempty"`
	FromLocationCode *string `json:"from_location_code,omitempty" example:"A-01-01"`
	ToLocationID     *string `json:"to_location_id,omitempty"`
	ToLocationCode   *string `json:"to_location_code,omitempty" example:"B-02-01"`
	Quantity         int64   `json:"quantity" example:"25"`
	ReferenceID      *string `json:"reference_id,omitempty"`
	CreatedBy        *string `json:"created_by,omitempty"`
	CreatedAt        string  `json:"created_at" example:"2026-01-15T10:30:00Z"`
}

// BalanceResponse represents a stock balance in API responses
// @Description Current stock level for one product at one location
type BalanceResponse struct {
	BalanceID    int64  `json:"balance_id" example:"42"`
	ProductID    string `json:"product_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ProductSKU   string `json:"product_sku" example:"SKU-001"`
	ProductName  string `json:"product_name" example:"Widget"`
	LocationID   string `json:"location_id" example:"550e8400-e29b-41d4-a716-446655440001"`
	LocationCode string `json:"location_code" example:"A-01-01"`
	Quantity     int64  `json:"quantity" example:"100"`
	UpdatedAt    string `json:"updated_at" example:"2026-01-15T10:30:00Z"`
}

// CreateMovement godoc
// @ID           createMovement
// @Summary      Record a stock movement
// @Description  Validates the movement shape, applies the balance effects and appends the ledger entry atomically
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body CreateMovementRequest true "Movement to record"
// @Success      201 {object} APIResponse[MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/movements [post]
func (h *InventoryHandler) CreateMovement(c *gin.Context) {
	var req CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	fromID, err := parseOptionalUUID(req.FromLocationID)
	if err != nil {
		h.BadRequest(c, "Invalid from_location_id")
		return
	}
	toID, err := parseOptionalUUID(req.ToLocationID)
	if err != nil {
		h.BadRequest(c, "Invalid to_location_id")
		return
	}

	view, err := h.movements.CreateMovement(c.Request.Context(), inventoryapp.CreateMovementRequest{
		Type:           req.Type,
		ProductID:      productID,
		FromLocationID: fromID,
		ToLocationID:   toID,
		Quantity:       req.Quantity,
		ReferenceID:    req.ReferenceID,
		CreatedBy:      actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toMovementResponse(view))
}

// GetMovement godoc
// @ID           getMovementById
// @Summary      Get a ledger entry
// @Tags         inventory
// @Produce      json
// @Param        id path string true "Movement ID" format(uuid)
// @Success      200 {object} APIResponse[MovementResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	view, err := h.movements.GetMovement(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMovementResponse(view))
}

// listMovementsQuery binds the ledger list filters
type listMovementsQuery struct {
	ProductID  *string `form:"product_id" binding:"omitempty,uuid"`
	LocationID *string `form:"location_id" binding:"omitempty,uuid"`
	Type       *string `form:"type" binding:"omitempty,oneof=IN OUT TRANSFER ADJUSTMENT"`
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListMovements godoc
// @ID           listMovements
// @Summary      List ledger entries
// @Description  Returns ledger entries newest first, optionally filtered by product, location (either side) or type
// @Tags         inventory
// @Produce      json
// @Param        product_id query string false "Filter by product" format(uuid)
// @Param        location_id query string false "Filter by location on either side" format(uuid)
// @Param        type query string false "Filter by movement type" Enums(IN, OUT, TRANSFER, ADJUSTMENT)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]MovementResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var q listMovementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	req := inventoryapp.ListMovementsRequest{
		Type:     q.Type,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	var err error
	if req.ProductID, err = parseOptionalUUID(q.ProductID); err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	if req.LocationID, err = parseOptionalUUID(q.LocationID); err != nil {
		h.BadRequest(c, "Invalid location_id")
		return
	}

	views, total, err := h.movements.ListMovements(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]MovementResponse, 0, len(views))
	for i := range views {
		out = append(out, toMovementResponse(&views[i]))
	}
	h.SuccessWithMeta(c, out, total, pageOrDefault(q.Page), pageSizeOrDefault(q.PageSize))
}

// listBalancesQuery binds the balance list filters
type listBalancesQuery struct {
	ProductID  *string `form:"product_id" binding:"omitempty,uuid"`
	LocationID *string `form:"location_id" binding:"omitempty,uuid"`
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListBalances godoc
// @ID           listBalances
// @Summary      List stock balances
// @Description  Returns current stock levels; a missing entry means zero stock
// @Tags         inventory
// @Produce      json
// @Param        product_id query string false "Filter by product" format(uuid)
// @Param        location_id query string false "Filter by location" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]BalanceResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /inventory/balances [get]
func (h *InventoryHandler) ListBalances(c *gin.Context) {
	var q listBalancesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	req := inventoryapp.ListBalancesRequest{
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	var err error
	if req.ProductID, err = parseOptionalUUID(q.ProductID); err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	if req.LocationID, err = parseOptionalUUID(q.LocationID); err != nil {
		h.BadRequest(c, "Invalid location_id")
		return
	}

	views, total, err := h.movements.ListBalances(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]BalanceResponse, 0, len(views))
	for i := range views {
		out = append(out, toBalanceResponse(&views[i]))
	}
	h.SuccessWithMeta(c, out, total, pageOrDefault(q.Page), pageSizeOrDefault(q.PageSize))
}

func toMovementResponse(v *inventory.MovementView) MovementResponse {
	resp := MovementResponse{
		MovementID:       v.MovementID.String(),
		Type:             v.Type,
		ProductID:        v.ProductID.String(),
		ProductSKU:       v.ProductSKU,
		ProductName:      v.ProductName,
		FromLocationCode: v.FromLocationCode,
		ToLocationCode:   v.ToLocationCode,
		Quantity:         v.Quantity,
		ReferenceID:      v.ReferenceID,
		CreatedAt:        v.CreatedAt.Format(time.RFC3339),
	}
	if v.FromLocationID != nil {
		s := v.FromLocationID.String()
		resp.FromLocationID = &s
	}
	if v.ToLocationID != nil {
		s := v.ToLocationID.String()
		resp.ToLocationID = &s
	}
	if v.CreatedBy != nil {
		s := v.CreatedBy.String()
		resp.CreatedBy = &s
	}
	return resp
}

func toBalanceResponse(v *inventory.BalanceView) BalanceResponse {
	return BalanceResponse{
		BalanceID:    v.BalanceID,
		ProductID:    v.ProductID.String(),
		ProductSKU:   v.ProductSKU,
		ProductName:  v.ProductName,
		LocationID:   v.LocationID.String(),
		LocationCode: v.LocationCode,
		Quantity:     v.Quantity,
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
	}
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageSizeOrDefault(size int) int {
	if size < 1 || size > 100 {
		return 20
	}
	return size
}
