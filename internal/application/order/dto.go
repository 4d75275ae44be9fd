package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/order"
)

// OrderItemRequest is one product line in a creation request
type OrderItemRequest struct {
	ProductID uuid.UUID
	Quantity  int64
}

// CreateOrderRequest carries everything needed to create an order
type CreateOrderRequest struct {
	Type         string
	PartnerName  string
	ExpectedDate *time.Time
	Items        []OrderItemRequest
	CreatedBy    uuid.UUID
}

// UpdateStatusRequest asks for one status transition
type UpdateStatusRequest struct {
	OrderID   uuid.UUID
	Status    string
	UpdatedBy uuid.UUID
}

// ListOrdersRequest filters order listings
type ListOrdersRequest struct {
	Type     *string
	Status   *string
	Page     int
	PageSize int
}

func (r ListOrdersRequest) toQuery() order.Query {
	q := order.Query{
		Page:     r.Page,
		PageSize: r.PageSize,
	}
	if r.Type != nil {
		ot := order.OrderType(*r.Type)
		q.Type = &ot
	}
	if r.Status != nil {
		os := order.OrderStatus(*r.Status)
		q.Status = &os
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}
	return q
}
