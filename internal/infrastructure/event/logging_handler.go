package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/logger"
)

// LoggingEventHandler writes an audit line for every fulfillment event.
// It subscribes to the movement ledger and order lifecycle events.
type LoggingEventHandler struct {
	logger *zap.Logger
}

// NewLoggingEventHandler creates a new logging event handler
func NewLoggingEventHandler(logger *zap.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger.Named("audit")}
}

// EventTypes returns the event types this handler is interested in
func (h *LoggingEventHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeStockMovementRecorded,
		order.EventTypeOrderCreated,
		order.EventTypeOrderStatusChanged,
	}
}

// Handle logs the event with its type-specific fields
func (h *LoggingEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	fields := []zap.Field{
		zap.String("event_id", event.EventID().String()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
	}
	if userID := logger.GetUserID(ctx); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch e := event.(type) {
	case *inventory.StockMovementRecordedEvent:
		fields = append(fields,
			zap.String("movement_type", e.MovementType.String()),
			zap.String("product_id", e.ProductID.String()),
			zap.Int64("quantity", e.Quantity),
		)
		if e.ReferenceID != nil {
			fields = append(fields, zap.String("reference_id", *e.ReferenceID))
		}
	case *order.OrderCreatedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("order_type", e.OrderType),
			zap.Int("item_count", e.ItemCount),
		)
	case *order.OrderStatusChangedEvent:
		fields = append(fields,
			zap.String("order_number", e.OrderNumber),
			zap.String("from_status", e.FromStatus),
			zap.String("to_status", e.ToStatus),
		)
	}

	h.logger.Info(event.EventType(), fields...)
	return nil
}

// Ensure LoggingEventHandler implements EventHandler
var _ shared.EventHandler = (*LoggingEventHandler)(nil)
