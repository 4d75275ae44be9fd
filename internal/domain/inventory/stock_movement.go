package inventory

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/shared"
)

// MovementType classifies a stock movement
type MovementType string

const (
	// MovementTypeIn receives stock into a location
	MovementTypeIn MovementType = "IN"
	// MovementTypeOut removes stock from a location
	MovementTypeOut MovementType = "OUT"
	// MovementTypeTransfer moves stock between two locations
	MovementTypeTransfer MovementType = "TRANSFER"
	// MovementTypeAdjustment corrects the quantity at a location upward
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}

// String returns the string representation
func (t MovementType) String() string {
	return string(t)
}

// AllMovementTypes returns all valid movement types
func AllMovementTypes() []MovementType {
	return []MovementType{
		MovementTypeIn,
		MovementTypeOut,
		MovementTypeTransfer,
		MovementTypeAdjustment,
	}
}

// StockMovement is one immutable line in the movement ledger. Movements
// are only ever appended; corrections happen through compensating
// movements, never by editing history.
type StockMovement struct {
	shared.AuditedAggregateRoot
	Type           MovementType `gorm:"size:20;not null;index"`
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index"`
	FromLocationID *uuid.UUID   `gorm:"type:uuid;index"`
	ToLocationID   *uuid.UUID   `gorm:"type:uuid;index"`
	Quantity       int64        `gorm:"not null"`
	ReferenceID    *string      `gorm:"size:100;index"`
}

// TableName returns the database table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a movement after validating its shape for the
// given type: IN and ADJUSTMENT need a destination, OUT needs a source,
// TRANSFER needs both. A missing location fails with
// INVALID_MOVEMENT_SHAPE naming the absent field.
func NewStockMovement(
	movementType MovementType,
	productID uuid.UUID,
	fromLocationID, toLocationID *uuid.UUID,
	quantity int64,
	referenceID *string,
	createdBy uuid.UUID,
) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown movement type %q", string(movementType)))
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Movement quantity must be positive")
	}
	if err := validateShape(movementType, fromLocationID, toLocationID); err != nil {
		return nil, err
	}

	m := &StockMovement{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Type:                 movementType,
		ProductID:            productID,
		FromLocationID:       fromLocationID,
		ToLocationID:         toLocationID,
		Quantity:             quantity,
		ReferenceID:          referenceID,
	}

	m.AddDomainEvent(NewStockMovementRecordedEvent(m))
	return m, nil
}

func validateShape(movementType MovementType, from, to *uuid.UUID) error {
	needsFrom := movementType == MovementTypeOut || movementType == MovementTypeTransfer
	needsTo := movementType == MovementTypeIn || movementType == MovementTypeTransfer || movementType == MovementTypeAdjustment

	if needsFrom && from == nil {
		return shapeError(movementType, "from_location_id")
	}
	if needsTo && to == nil {
		return shapeError(movementType, "to_location_id")
	}
	return nil
}

func shapeError(movementType MovementType, missing string) error {
	return shared.ErrInvalidMovementShape.WithDetails(map[string]interface{}{
		"movement_type": string(movementType),
		"missing_field": missing,
	})
}

// DecreasesStock reports whether applying the movement removes stock from its source
func (m *StockMovement) DecreasesStock() bool {
	return m.Type == MovementTypeOut || m.Type == MovementTypeTransfer
}

// IncreasesStock reports whether applying the movement adds stock to its destination
func (m *StockMovement) IncreasesStock() bool {
	return m.Type == MovementTypeIn || m.Type == MovementTypeTransfer || m.Type == MovementTypeAdjustment
}
