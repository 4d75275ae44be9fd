package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// OrderType distinguishes inbound (receiving) from outbound (shipping) orders
type OrderType string

const (
	// OrderTypeIn receives stock from a supplier
	OrderTypeIn OrderType = "IN"
	// OrderTypeOut ships stock to a customer
	OrderTypeOut OrderType = "OUT"
)

// IsValid checks if the order type is valid
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeIn, OrderTypeOut:
		return true
	}
	return false
}

// String returns the string representation
func (t OrderType) String() string {
	return string(t)
}

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	// OrderStatusDraft is reserved for orders assembled incrementally.
	// The creation path never assigns it; orders start at PENDING.
	OrderStatusDraft OrderStatus = "DRAFT"
	// OrderStatusPending is the initial status after creation
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusProcessing marks an order being worked
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// OrderStatusCompleted is terminal; stock effects have been applied
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled is terminal; the order was abandoned
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPending, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo reports whether the order may move to the target status.
// Any non-terminal status may move to any valid status; terminal statuses
// are frozen.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	return target.IsValid()
}

// OrderItem is one product line on an order. Items are fixed at creation.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int64     `gorm:"not null"`
}

// TableName returns the database table name
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemSpec is the input for one order line
type ItemSpec struct {
	ProductID uuid.UUID
	Quantity  int64
}

// Order is a fulfillment request moving stock in or out of the warehouse
type Order struct {
	shared.AuditedAggregateRoot
	OrderNumber  string      `gorm:"size:50;not null;uniqueIndex"`
	Type         OrderType   `gorm:"size:10;not null;index"`
	Status       OrderStatus `gorm:"size:20;not null;index"`
	PartnerName  string      `gorm:"size:255;not null"`
	ExpectedDate *time.Time
	Items        []OrderItem `gorm:"foreignKey:OrderID"`
}

// TableName returns the database table name
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a PENDING order with the given lines. The order number
// is derived from the creation time in milliseconds, matching the
// ORD-<millis> convention.
func NewOrder(orderType OrderType, partnerName string, expectedDate *time.Time, createdBy uuid.UUID, items []ItemSpec) (*Order, error) {
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown order type %q", string(orderType)))
	}
	partnerName = strings.TrimSpace(partnerName)
	if partnerName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner name is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one item")
	}

	o := &Order{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		OrderNumber:          fmt.Sprintf("ORD-%d", time.Now().UnixMilli()),
		Type:                 orderType,
		Status:               OrderStatusPending,
		PartnerName:          partnerName,
		ExpectedDate:         expectedDate,
	}

	for _, spec := range items {
		if spec.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Order item product is required")
		}
		if spec.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_INPUT", "Order item quantity must be positive")
		}
		o.Items = append(o.Items, OrderItem{
			BaseEntity: shared.NewBaseEntity(),
			OrderID:    o.ID,
			ProductID:  spec.ProductID,
			Quantity:   spec.Quantity,
		})
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return o, nil
}

// ChangeStatus moves the order to the target status. Terminal orders
// refuse every transition with ORDER_ALREADY_FINAL.
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown order status %q", string(target)))
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.ErrOrderAlreadyFinal.WithDetails(map[string]interface{}{
			"order_id": o.ID.String(),
			"status":   o.Status.String(),
		})
	}
	from := o.Status
	o.Status = target
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))
	return nil
}

// ReferenceTag returns the ledger reference linking movements to this order
func (o *Order) ReferenceTag() string {
	return fmt.Sprintf("ORDER-%s", o.ID.String())
}
