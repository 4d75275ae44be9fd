package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
	"github.com/wms/backend/internal/infrastructure/logger"
	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// MovementService records stock movements and applies their balance
// effects. A movement and its balance changes are one atomic unit: if
// any step fails nothing is persisted.
type MovementService struct {
	scope     TransactionScope
	products  catalog.ProductRepository
	locations warehouse.LocationRepository
	movements inventory.StockMovementRepository
	balances  inventory.StockBalanceRepository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewMovementService creates a movement service
func NewMovementService(
	scope TransactionScope,
	products catalog.ProductRepository,
	locations warehouse.LocationRepository,
	movements inventory.StockMovementRepository,
	balances inventory.StockBalanceRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *MovementService {
	return &MovementService{
		scope:     scope,
		products:  products,
		locations: locations,
		movements: movements,
		balances:  balances,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateMovement validates, applies and records one stock movement.
// Shape validation happens before anything is touched; the balance
// effects and the ledger append run inside one transaction.
func (s *MovementService) CreateMovement(ctx context.Context, req CreateMovementRequest) (*inventory.MovementView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "create_movement")
	defer span.End()

	telemetry.SetAttributes(span,
		telemetry.SpanAttrMovementType, req.Type,
		telemetry.SpanAttrProductID, req.ProductID.String(),
		telemetry.SpanAttrQuantity, req.Quantity,
	)

	movement, err := inventory.NewStockMovement(
		inventory.MovementType(req.Type),
		req.ProductID,
		req.FromLocationID,
		req.ToLocationID,
		req.Quantity,
		req.ReferenceID,
		req.CreatedBy,
	)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	if _, err := s.products.FindByID(ctx, req.ProductID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.checkLocation(ctx, movement.FromLocationID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.checkLocation(ctx, movement.ToLocationID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if movement.DecreasesStock() {
			if err := repos.BalanceRepo().Decrease(ctx, movement.ProductID, *movement.FromLocationID, movement.Quantity); err != nil {
				return err
			}
		}
		if movement.IncreasesStock() {
			if _, err := repos.BalanceRepo().Increase(ctx, movement.ProductID, *movement.ToLocationID, movement.Quantity); err != nil {
				return err
			}
		}
		return repos.MovementRepo().Create(ctx, movement)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrMovementID, movement.ID.String())

	s.publishEvents(ctx, movement.GetDomainEvents())
	movement.ClearDomainEvents()

	logger.WithTraceContext(ctx, s.logger).Info("stock movement recorded",
		zap.String("movement_id", movement.ID.String()),
		zap.String("type", movement.Type.String()),
		zap.String("product_id", movement.ProductID.String()),
		zap.Int64("quantity", movement.Quantity))

	return s.movements.FindViewByID(ctx, movement.ID)
}

// GetMovement returns one display-ready ledger row
func (s *MovementService) GetMovement(ctx context.Context, id uuid.UUID) (*inventory.MovementView, error) {
	return s.movements.FindViewByID(ctx, id)
}

// ListMovements returns ledger rows matching the filter, newest first
func (s *MovementService) ListMovements(ctx context.Context, req ListMovementsRequest) ([]inventory.MovementView, int64, error) {
	if req.Type != nil && !inventory.MovementType(*req.Type).IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("Unknown movement type %q", *req.Type))
	}
	return s.movements.QueryViews(ctx, req.toQuery())
}

// ListBalances returns current stock levels matching the filter
func (s *MovementService) ListBalances(ctx context.Context, req ListBalancesRequest) ([]inventory.BalanceView, int64, error) {
	return s.balances.QueryViews(ctx, req.toQuery())
}

func (s *MovementService) checkLocation(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	exists, err := s.locations.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !exists {
		return shared.ErrNotFound.WithDetails(map[string]interface{}{
			"location_id": id.String(),
		})
	}
	return nil
}

func (s *MovementService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events", zap.Error(err))
	}
}
