package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/wms/backend/internal/application/order"
	"github.com/wms/backend/internal/domain/order"
)

// OrderHandler handles order workflow API endpoints
type OrderHandler struct {
	BaseHandler
	orders *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// CreateOrderItemRequest is one line of an order creation request
type CreateOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0" example:"10"`
}

// CreateOrderRequest represents a request to create an order
// @Description Request body for creating an inbound or outbound order
type CreateOrderRequest struct {
	Type         string                   `json:"type" binding:"required,oneof=INBOUND OUTBOUND" example:"OUTBOUND"`
	PartnerName  string                   `json:"partner_name" binding:"required,max=255" example:"Acme Corp"`
	ExpectedDate *time.Time               `json:"expected_date" example:"2026-02-01T00:00:00Z"`
	Items        []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderStatusRequest represents a status transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=DRAFT PENDING PROCESSING COMPLETED CANCELLED" example:"PROCESSING"`
}

// OrderItemResponse is one order line in API responses
type OrderItemResponse struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity" example:"10"`
}

// OrderResponse represents an order in API responses
// @Description Order with its lines and workflow status
type OrderResponse struct {
	ID           string              `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	OrderNumber  string              `json:"order_number" example:"ORD-1768471800000"`
	Type         string              `json:"type" example:"OUTBOUND"`
	Status       string              `json:"status" example:"PENDING"`
	PartnerName  string              `json:"partner_name" example:"Acme Corp"`
	ExpectedDate *string             `json:"expected_date,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	Version      int                 `json:"version" example:"1"`
	CreatedBy    *string             `json:"created_by,omitempty"`
	CreatedAt    string              `json:"created_at"`
	UpdatedAt    string              `json:"updated_at"`
}

// CreateOrder godoc
// @ID           createOrder
// @Summary      Create an order
// @Description  Creates a PENDING order with at least one line; every product must exist
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        request body CreateOrderRequest true "Order to create"
// @Success      201 {object} APIResponse[OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items := make([]orderapp.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product_id in items")
			return
		}
		items = append(items, orderapp.OrderItemRequest{
			ProductID: productID,
			Quantity:  item.Quantity,
		})
	}

	created, err := h.orders.CreateOrder(c.Request.Context(), orderapp.CreateOrderRequest{
		Type:         req.Type,
		PartnerName:  req.PartnerName,
		ExpectedDate: req.ExpectedDate,
		Items:        items,
		CreatedBy:    actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toOrderResponse(created))
}

// GetOrder godoc
// @ID           getOrderById
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID" format(uuid)
// @Success      200 {object} APIResponse[OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	found, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(found))
}

// listOrdersQuery binds the order list filters
type listOrdersQuery struct {
	Type     *string `form:"type" binding:"omitempty,oneof=INBOUND OUTBOUND"`
	Status   *string `form:"status" binding:"omitempty,oneof=DRAFT PENDING PROCESSING COMPLETED CANCELLED"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ListOrders godoc
// @ID           listOrders
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Param        type query string false "Filter by order type" Enums(INBOUND, OUTBOUND)
// @Param        status query string false "Filter by status" Enums(DRAFT, PENDING, PROCESSING, COMPLETED, CANCELLED)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} APIResponse[[]OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var q listOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindError(c, err)
		return
	}

	found, total, err := h.orders.ListOrders(c.Request.Context(), orderapp.ListOrdersRequest{
		Type:     q.Type,
		Status:   q.Status,
		Page:     q.Page,
		PageSize: q.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]OrderResponse, 0, len(found))
	for i := range found {
		out = append(out, toOrderResponse(&found[i]))
	}
	h.SuccessWithMeta(c, out, total, pageOrDefault(q.Page), pageSizeOrDefault(q.PageSize))
}

// UpdateStatus godoc
// @ID           updateOrderStatus
// @Summary      Transition an order's status
// @Description  Moves the order through its workflow; PENDING to PROCESSING applies stock effects atomically
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for safe retries"
// @Param        id path string true "Order ID" format(uuid)
// @Param        request body UpdateOrderStatusRequest true "Target status"
// @Success      200 {object} APIResponse[OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	actor, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	updated, err := h.orders.UpdateStatus(c.Request.Context(), orderapp.UpdateStatusRequest{
		OrderID:   id,
		Status:    req.Status,
		UpdatedBy: actor,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toOrderResponse(updated))
}

func toOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Quantity:  item.Quantity,
		})
	}

	resp := OrderResponse{
		ID:          o.ID.String(),
		OrderNumber: o.OrderNumber,
		Type:        string(o.Type),
		Status:      string(o.Status),
		PartnerName: o.PartnerName,
		Items:       items,
		Version:     o.Version,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   o.UpdatedAt.Format(time.RFC3339),
	}
	if o.ExpectedDate != nil {
		s := o.ExpectedDate.Format(time.RFC3339)
		resp.ExpectedDate = &s
	}
	if o.CreatedBy != nil {
		s := o.CreatedBy.String()
		resp.CreatedBy = &s
	}
	return resp
}
