package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	warehouseapp "github.com/wms/backend/internal/application/warehouse"
	"github.com/wms/backend/internal/domain/warehouse"
	"github.com/wms/backend/internal/interfaces/http/dto"
)

// WarehouseHandler handles warehouse hierarchy API endpoints
type WarehouseHandler struct {
	BaseHandler
	warehouses *warehouseapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(warehouses *warehouseapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Code    string  `json:"code" binding:"required,max=64" example:"WH-EAST"`
	Name    string  `json:"name" binding:"required,max=255" example:"East Coast DC"`
	Address *string `json:"address" binding:"omitempty,max=512"`
}

// CreateZoneRequest represents a request to add a zone to a warehouse
type CreateZoneRequest struct {
	Code string `json:"code" binding:"required,max=64" example:"A"`
	Name string `json:"name" binding:"required,max=255" example:"Ambient storage"`
}

// CreateLocationRequest represents a request to add a location to a zone
type CreateLocationRequest struct {
	Code string  `json:"code" binding:"required,max=64" example:"A-01-01"`
	Name *string `json:"name" binding:"omitempty,max=255"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        string  `json:"id"`
	Code      string  `json:"code" example:"WH-EAST"`
	Name      string  `json:"name" example:"East Coast DC"`
	Address   *string `json:"address,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ZoneResponse represents a zone in API responses
type ZoneResponse struct {
	ID          string `json:"id"`
	WarehouseID string `json:"warehouse_id"`
	Code        string `json:"code" example:"A"`
	Name        string `json:"name"`
	CreatedAt   string `json:"created_at"`
}

// LocationResponse represents a storage location in API responses
type LocationResponse struct {
	ID        string  `json:"id"`
	ZoneID    string  `json:"zone_id"`
	Code      string  `json:"code" example:"A-01-01"`
	Name      *string `json:"name,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// CreateWarehouse godoc
// @ID           createWarehouse
// @Summary      Create a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        request body CreateWarehouseRequest true "Warehouse to create"
// @Success      201 {object} APIResponse[WarehouseResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses [post]
func (h *WarehouseHandler) CreateWarehouse(c *gin.Context) {
	var req CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.warehouses.CreateWarehouse(c.Request.Context(), req.Code, req.Name, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toWarehouseResponse(created))
}

// GetWarehouse godoc
// @ID           getWarehouseById
// @Summary      Get a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[WarehouseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id} [get]
func (h *WarehouseHandler) GetWarehouse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	found, err := h.warehouses.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toWarehouseResponse(found))
}

// ListWarehouses godoc
// @ID           listWarehouses
// @Summary      List warehouses
// @Tags         warehouses
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]WarehouseResponse]
// @Security     BearerAuth
// @Router       /warehouses [get]
func (h *WarehouseHandler) ListWarehouses(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}
	page, err := h.warehouses.ListWarehouses(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]WarehouseResponse, 0, len(page.Items))
	for i := range page.Items {
		out = append(out, toWarehouseResponse(&page.Items[i]))
	}
	h.SuccessWithMeta(c, out, page.Total, page.Page, page.PageSize)
}

// CreateZone godoc
// @ID           createZone
// @Summary      Add a zone to a warehouse
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Param        request body CreateZoneRequest true "Zone to create"
// @Success      201 {object} APIResponse[ZoneResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id}/zones [post]
func (h *WarehouseHandler) CreateZone(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.warehouses.CreateZone(c.Request.Context(), warehouseID, req.Code, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toZoneResponse(created))
}

// ListZones godoc
// @ID           listZones
// @Summary      List the zones of a warehouse
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Warehouse ID" format(uuid)
// @Success      200 {object} APIResponse[[]ZoneResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /warehouses/{id}/zones [get]
func (h *WarehouseHandler) ListZones(c *gin.Context) {
	warehouseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	zones, err := h.warehouses.ListZones(c.Request.Context(), warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ZoneResponse, 0, len(zones))
	for i := range zones {
		out = append(out, toZoneResponse(&zones[i]))
	}
	h.Success(c, out)
}

// CreateLocation godoc
// @ID           createLocation
// @Summary      Add a storage location to a zone
// @Tags         warehouses
// @Accept       json
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Param        request body CreateLocationRequest true "Location to create"
// @Success      201 {object} APIResponse[LocationResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /zones/{id}/locations [post]
func (h *WarehouseHandler) CreateLocation(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.warehouses.CreateLocation(c.Request.Context(), zoneID, req.Code, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toLocationResponse(created))
}

// ListLocations godoc
// @ID           listLocations
// @Summary      List the locations of a zone
// @Tags         warehouses
// @Produce      json
// @Param        id path string true "Zone ID" format(uuid)
// @Success      200 {object} APIResponse[[]LocationResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /zones/{id}/locations [get]
func (h *WarehouseHandler) ListLocations(c *gin.Context) {
	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID")
		return
	}

	locations, err := h.warehouses.ListLocations(c.Request.Context(), zoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, toLocationResponse(&locations[i]))
	}
	h.Success(c, out)
}

// DeleteLocation godoc
// @ID           deleteLocation
// @Summary      Delete a storage location
// @Description  A location that still holds stock refuses deletion with INVALID_STATE
// @Tags         warehouses
// @Param        id path string true "Location ID" format(uuid)
// @Success      204 "No Content"
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /locations/{id} [delete]
func (h *WarehouseHandler) DeleteLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid location ID")
		return
	}

	if err := h.warehouses.DeleteLocation(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

func toWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID.String(),
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt.Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.Format(time.RFC3339),
	}
}

func toZoneResponse(z *warehouse.Zone) ZoneResponse {
	return ZoneResponse{
		ID:          z.ID.String(),
		WarehouseID: z.WarehouseID.String(),
		Code:        z.Code,
		Name:        z.Name,
		CreatedAt:   z.CreatedAt.Format(time.RFC3339),
	}
}

func toLocationResponse(l *warehouse.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID.String(),
		ZoneID:    l.ZoneID.String(),
		Code:      l.Code,
		Name:      l.Name,
		CreatedAt: l.CreatedAt.Format(time.RFC3339),
	}
}
