package inventory

import (
	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// Event types for the inventory context
const (
	EventTypeStockMovementRecorded = "inventory.stock_movement.recorded"
)

// StockMovementRecordedEvent is raised when a movement is appended to the ledger
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementType   MovementType `json:"movement_type"`
	ProductID      uuid.UUID    `json:"product_id"`
	FromLocationID *uuid.UUID   `json:"from_location_id,omitempty"`
	ToLocationID   *uuid.UUID   `json:"to_location_id,omitempty"`
	Quantity       int64        `json:"quantity"`
	ReferenceID    *string      `json:"reference_id,omitempty"`
}

// NewStockMovementRecordedEvent creates the event from a movement
func NewStockMovementRecordedEvent(m *StockMovement) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, "StockMovement", m.ID),
		MovementType:    m.Type,
		ProductID:       m.ProductID,
		FromLocationID:  m.FromLocationID,
		ToLocationID:    m.ToLocationID,
		Quantity:        m.Quantity,
		ReferenceID:     m.ReferenceID,
	}
}
