package order

import (
	"github.com/wms/backend/internal/domain/shared"
)

// Event types for the order context
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is raised when a new order is accepted
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	OrderType   string `json:"order_type"`
	ItemCount   int    `json:"item_count"`
}

// NewOrderCreatedEvent creates the event from an order
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		OrderType:       o.Type.String(),
		ItemCount:       len(o.Items),
	}
}

// OrderStatusChangedEvent is raised on every status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

// NewOrderStatusChangedEvent creates the event from a transition
func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		FromStatus:      from.String(),
		ToStatus:        to.String(),
	}
}
