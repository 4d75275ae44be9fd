package inventory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/apptest"
	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

type movementFixture struct {
	service   *MovementService
	products  *apptest.FakeProductRepo
	locations *apptest.FakeLocationRepo
	balances  *apptest.FakeBalanceRepo
	movements *apptest.FakeMovementRepo
	publisher *apptest.CapturingPublisher

	product *catalog.Product
	locA    *warehouse.Location
	locB    *warehouse.Location
	actor   uuid.UUID
}

func newMovementFixture(t *testing.T) *movementFixture {
	t.Helper()

	products := apptest.NewFakeProductRepo()
	locations := apptest.NewFakeLocationRepo()
	balances := apptest.NewFakeBalanceRepo()
	movements := apptest.NewFakeMovementRepo()
	publisher := &apptest.CapturingPublisher{}

	scope := NewNoOpTransactionScope(balances, movements, apptest.NewFakeOrderRepo(), locations)
	service := NewMovementService(scope, products, locations, movements, balances, publisher, zap.NewNop())

	product, err := catalog.NewProduct("SKU-001", "Widget")
	require.NoError(t, err)
	products.Add(product)

	zoneID := uuid.New()
	locA, err := warehouse.NewLocation(zoneID, "A-01")
	require.NoError(t, err)
	locB, err := warehouse.NewLocation(zoneID, "B-01")
	require.NoError(t, err)
	locations.Add(locA)
	locations.Add(locB)

	return &movementFixture{
		service:   service,
		products:  products,
		locations: locations,
		balances:  balances,
		movements: movements,
		publisher: publisher,
		product:   product,
		locA:      locA,
		locB:      locB,
		actor:     uuid.New(),
	}
}

func (f *movementFixture) move(t *testing.T, movementType string, from, to *uuid.UUID, qty int64) {
	t.Helper()
	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:           movementType,
		ProductID:      f.product.ID,
		FromLocationID: from,
		ToLocationID:   to,
		Quantity:       qty,
		CreatedBy:      f.actor,
	})
	require.NoError(t, err)
}

func (f *movementFixture) quantityAt(t *testing.T, locationID uuid.UUID) int64 {
	t.Helper()
	b, err := f.balances.FindByProductAndLocation(context.Background(), f.product.ID, locationID)
	if err != nil {
		return 0
	}
	return b.Quantity
}

func TestCreateMovement_InAddsStock(t *testing.T) {
	f := newMovementFixture(t)

	view, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:         "IN",
		ProductID:    f.product.ID,
		ToLocationID: &f.locA.ID,
		Quantity:     10,
		CreatedBy:    f.actor,
	})
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "IN", view.Type)
	assert.Equal(t, int64(10), view.Quantity)

	assert.Equal(t, int64(10), f.quantityAt(t, f.locA.ID))
	assert.Len(t, f.movements.All(), 1)
	assert.Contains(t, f.publisher.EventTypes(), "inventory.stock_movement.recorded")
}

func TestCreateMovement_OutDeletesBalanceAtZero(t *testing.T) {
	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 10)

	f.move(t, "OUT", &f.locA.ID, nil, 10)

	_, err := f.balances.FindByProductAndLocation(context.Background(), f.product.ID, f.locA.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "BALANCE_NOT_FOUND", domainErr.Code)
}

func TestCreateMovement_TransferMovesBetweenLocations(t *testing.T) {
	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 10)

	f.move(t, "TRANSFER", &f.locA.ID, &f.locB.ID, 4)

	assert.Equal(t, int64(6), f.quantityAt(t, f.locA.ID))
	assert.Equal(t, int64(4), f.quantityAt(t, f.locB.ID))
	assert.Len(t, f.movements.All(), 2)
}

func TestCreateMovement_AdjustmentIncreases(t *testing.T) {
	f := newMovementFixture(t)

	f.move(t, "ADJUSTMENT", nil, &f.locB.ID, 3)

	assert.Equal(t, int64(3), f.quantityAt(t, f.locB.ID))
}

func TestCreateMovement_InsufficientStockLeavesEverythingUntouched(t *testing.T) {
	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 3)
	before := len(f.movements.All())

	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:           "OUT",
		ProductID:      f.product.ID,
		FromLocationID: &f.locA.ID,
		Quantity:       5,
		CreatedBy:      f.actor,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	assert.Equal(t, int64(3), f.quantityAt(t, f.locA.ID))
	assert.Len(t, f.movements.All(), before)
}

func TestCreateMovement_ConcurrentDecreasesNeverOversell(t *testing.T) {
	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 50)

	// 20 workers request 100 units total against 50 available. The
	// check-and-decrement must serialize so exactly 10 succeed.
	const workers = 20
	const each = int64(5)

	var wg sync.WaitGroup
	var successes atomic.Int64
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
				Type:           "OUT",
				ProductID:      f.product.ID,
				FromLocationID: &f.locA.ID,
				Quantity:       each,
				CreatedBy:      f.actor,
			})
			if err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), successes.Load())
	remaining := f.quantityAt(t, f.locA.ID)
	assert.GreaterOrEqual(t, remaining, int64(0))
	assert.Equal(t, 50-successes.Load()*each, remaining)
	// one ledger row for the IN plus one per successful OUT
	assert.Len(t, f.movements.All(), int(successes.Load())+1)
}

func TestCreateMovement_EmitsServiceSpan(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	}()

	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 10)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "inventory.create_movement", spans[0].Name())

	attrs := make(map[string]interface{})
	for _, attr := range spans[0].Attributes() {
		attrs[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, "IN", attrs["movement_type"])
	assert.Equal(t, f.product.ID.String(), attrs["product_id"])
	assert.Equal(t, int64(10), attrs["quantity"])
	assert.NotEmpty(t, attrs["movement_id"])
}

func TestCreateMovement_MissingBalance(t *testing.T) {
	f := newMovementFixture(t)

	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:           "OUT",
		ProductID:      f.product.ID,
		FromLocationID: &f.locA.ID,
		Quantity:       1,
		CreatedBy:      f.actor,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "BALANCE_NOT_FOUND", domainErr.Code)
}

func TestCreateMovement_ShapeRejectedBeforeAnyEffect(t *testing.T) {
	f := newMovementFixture(t)

	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:      "IN",
		ProductID: f.product.ID,
		Quantity:  5,
		CreatedBy: f.actor,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_MOVEMENT_SHAPE", domainErr.Code)

	assert.Empty(t, f.movements.All())
}

func TestCreateMovement_UnknownProduct(t *testing.T) {
	f := newMovementFixture(t)

	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:         "IN",
		ProductID:    uuid.New(),
		ToLocationID: &f.locA.ID,
		Quantity:     5,
		CreatedBy:    f.actor,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PRODUCT_NOT_FOUND", domainErr.Code)
}

func TestCreateMovement_UnknownLocation(t *testing.T) {
	f := newMovementFixture(t)
	bogus := uuid.New()

	_, err := f.service.CreateMovement(context.Background(), CreateMovementRequest{
		Type:         "IN",
		ProductID:    f.product.ID,
		ToLocationID: &bogus,
		Quantity:     5,
		CreatedBy:    f.actor,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestListMovements_RejectsUnknownType(t *testing.T) {
	f := newMovementFixture(t)
	bad := "RETURN"

	_, _, err := f.service.ListMovements(context.Background(), ListMovementsRequest{Type: &bad})
	require.Error(t, err)
}

func TestListBalances(t *testing.T) {
	f := newMovementFixture(t)
	f.move(t, "IN", nil, &f.locA.ID, 5)
	f.move(t, "IN", nil, &f.locB.ID, 7)

	views, total, err := f.service.ListBalances(context.Background(), ListBalancesRequest{ProductID: &f.product.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, views, 2)
}
