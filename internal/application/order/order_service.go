package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appinventory "github.com/wms/backend/internal/application/inventory"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// OrderService creates fulfillment orders and drives their lifecycle.
// Completing an order applies its stock effects and the status change in
// one transaction, so a failed allocation leaves the order untouched.
type OrderService struct {
	scope     appinventory.TransactionScope
	orders    order.OrderRepository
	products  catalog.ProductRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates an order service
func NewOrderService(
	scope appinventory.TransactionScope,
	orders order.OrderRepository,
	products catalog.ProductRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		scope:     scope,
		orders:    orders,
		products:  products,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateOrder validates the product lines and persists a PENDING order.
// Every referenced product must exist; the error lists all missing ids
// at once so the caller can fix the request in one round trip.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*order.Order, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must have at least one item")
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, item := range req.Items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	existing, err := s.products.FindExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(ids, existing); len(missing) > 0 {
		return nil, productNotFoundError(missing)
	}

	specs := make([]order.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		specs = append(specs, order.ItemSpec{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	o, err := order.NewOrder(order.OrderType(req.Type), req.PartnerName, req.ExpectedDate, req.CreatedBy, specs)
	if err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, o.GetDomainEvents())
	o.ClearDomainEvents()

	s.logger.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.String("order_number", o.OrderNumber),
		zap.String("type", o.Type.String()),
		zap.Int("items", len(o.Items)))

	return o, nil
}

// GetOrder returns an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// ListOrders returns a page of orders matching the filter
func (s *OrderService) ListOrders(ctx context.Context, req ListOrdersRequest) ([]order.Order, int64, error) {
	if req.Type != nil && !order.OrderType(*req.Type).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown order type %q", *req.Type))
	}
	if req.Status != nil && !order.OrderStatus(*req.Status).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown order status %q", *req.Status))
	}
	return s.orders.FindAll(ctx, req.toQuery())
}

// UpdateStatus moves the order to the requested status. A transition to
// COMPLETED also applies the order's stock effects; the status write and
// every movement commit together or not at all.
func (s *OrderService) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*order.Order, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, req.OrderID.String(),
		telemetry.SpanAttrOrderStatus, req.Status,
	)

	target := order.OrderStatus(req.Status)
	if !target.IsValid() {
		err := shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown order status %q", req.Status))
		telemetry.RecordError(span, err)
		return nil, err
	}

	var updated *order.Order
	var pending []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		o, err := repos.OrderRepo().FindByIDForUpdate(ctx, req.OrderID)
		if err != nil {
			return err
		}

		if err := o.ChangeStatus(target); err != nil {
			return err
		}

		if target == order.OrderStatusCompleted {
			events, err := s.applyCompletion(ctx, repos, o, req.UpdatedBy)
			if err != nil {
				return err
			}
			pending = append(pending, events...)
		}

		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		pending = append(pending, o.GetDomainEvents()...)
		o.ClearDomainEvents()
		updated = o
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if target == order.OrderStatusCompleted {
		telemetry.AddEvent(span, "order_completed",
			telemetry.SpanAttrOrderNumber, updated.OrderNumber)
	}

	s.publishEvents(ctx, pending)

	logger.WithTraceContext(ctx, s.logger).Info("order status updated",
		zap.String("order_id", updated.ID.String()),
		zap.String("status", updated.Status.String()))

	return updated, nil
}

// applyCompletion turns the order's lines into stock movements. OUT
// orders drain balances oldest first; IN orders receive everything into
// the first available location.
func (s *OrderService) applyCompletion(
	ctx context.Context,
	repos appinventory.TransactionalRepositories,
	o *order.Order,
	actor uuid.UUID,
) ([]shared.DomainEvent, error) {
	var events []shared.DomainEvent
	ref := o.ReferenceTag()

	switch o.Type {
	case order.OrderTypeOut:
		for _, item := range o.Items {
			balances, err := repos.BalanceRepo().FindByProductFIFO(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			lines, err := inventory.PlanFIFOAllocation(item.Quantity, balances)
			if err != nil {
				return nil, err
			}
			for _, line := range lines {
				from := line.LocationID
				if err := repos.BalanceRepo().Decrease(ctx, item.ProductID, from, line.Quantity); err != nil {
					return nil, err
				}
				m, err := inventory.NewStockMovement(
					inventory.MovementTypeOut, item.ProductID, &from, nil, line.Quantity, &ref, actor)
				if err != nil {
					return nil, err
				}
				if err := repos.MovementRepo().Create(ctx, m); err != nil {
					return nil, err
				}
				events = append(events, m.GetDomainEvents()...)
				m.ClearDomainEvents()
			}
		}

	case order.OrderTypeIn:
		loc, err := repos.LocationRepo().FindFirst(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range o.Items {
			to := loc.ID
			if _, err := repos.BalanceRepo().Increase(ctx, item.ProductID, to, item.Quantity); err != nil {
				return nil, err
			}
			m, err := inventory.NewStockMovement(
				inventory.MovementTypeIn, item.ProductID, nil, &to, item.Quantity, &ref, actor)
			if err != nil {
				return nil, err
			}
			if err := repos.MovementRepo().Create(ctx, m); err != nil {
				return nil, err
			}
			events = append(events, m.GetDomainEvents()...)
			m.ClearDomainEvents()
		}

	default:
		s.logger.Warn("order type has no fulfillment handler, skipping stock effects",
			zap.String("order_id", o.ID.String()),
			zap.String("order_type", o.Type.String()))
	}

	return events, nil
}

func (s *OrderService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
}

func missingIDs(requested, existing []uuid.UUID) []uuid.UUID {
	found := make(map[uuid.UUID]bool, len(existing))
	for _, id := range existing {
		found[id] = true
	}
	var missing []uuid.UUID
	for _, id := range requested {
		if !found[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func productNotFoundError(missing []uuid.UUID) error {
	strs := make([]string, 0, len(missing))
	for _, id := range missing {
		strs = append(strs, id.String())
	}
	return shared.NewDomainError("PRODUCT_NOT_FOUND",
		fmt.Sprintf("Products not found: %s", strings.Join(strs, ", "))).
		WithDetails(map[string]interface{}{"missing_product_ids": strs})
}
