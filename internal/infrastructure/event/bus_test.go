package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/domain/shared"
)

// recordingHandler captures every event it receives
type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("handler exploded")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) received() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func newTestEvent(eventType string) shared.DomainEvent {
	e := shared.NewBaseDomainEvent(eventType, "Test", uuid.New())
	return &e
}

func TestInMemoryEventBus_PublishToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
	assert.Equal(t, 1, handler.received())

	// Unrelated event types are not delivered
	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.status_changed")))
	assert.Equal(t, 1, handler.received())
}

func TestInMemoryEventBus_WildcardHandlerReceivesAll(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("order.created"),
		newTestEvent("inventory.stock_movement.recorded"),
	))
	assert.Equal(t, 2, handler.received())
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"order.created"}, err: errors.New("boom")}
	healthy := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
	assert.Equal(t, 1, healthy.received())
}

func TestInMemoryEventBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"order.created"}, panics: true}
	healthy := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("order.created"))
	})
	assert.Equal(t, 1, healthy.received())
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"order.created"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("order.created")))
	assert.Zero(t, handler.received())
}

func TestInMemoryEventBus_Stop(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	require.NoError(t, bus.Stop(context.Background()))
}
