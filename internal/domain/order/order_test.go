package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms/backend/internal/domain/shared"
)

func validItems() []ItemSpec {
	return []ItemSpec{{ProductID: uuid.New(), Quantity: 3}}
}

func TestNewOrder(t *testing.T) {
	expected := time.Now().Add(48 * time.Hour)
	o, err := NewOrder(OrderTypeOut, "Acme Corp", &expected, uuid.New(), validItems())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(o.OrderNumber, "ORD-"))
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, OrderTypeOut, o.Type)
	require.Len(t, o.Items, 1)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventTypeOrderCreated, events[0].EventType())
}

func TestNewOrder_Validation(t *testing.T) {
	actor := uuid.New()

	tests := []struct {
		name      string
		orderType OrderType
		partner   string
		items     []ItemSpec
	}{
		{"unknown type", OrderType("RETURN"), "Acme", validItems()},
		{"empty partner", OrderTypeIn, "  ", validItems()},
		{"no items", OrderTypeIn, "Acme", nil},
		{"zero quantity item", OrderTypeIn, "Acme", []ItemSpec{{ProductID: uuid.New(), Quantity: 0}}},
		{"negative quantity item", OrderTypeIn, "Acme", []ItemSpec{{ProductID: uuid.New(), Quantity: -1}}},
		{"nil product", OrderTypeIn, "Acme", []ItemSpec{{ProductID: uuid.Nil, Quantity: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.orderType, tt.partner, nil, actor, tt.items)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		})
	}
}

func TestOrder_ChangeStatus(t *testing.T) {
	o, err := NewOrder(OrderTypeOut, "Acme", nil, uuid.New(), validItems())
	require.NoError(t, err)
	o.ClearDomainEvents()

	require.NoError(t, o.ChangeStatus(OrderStatusProcessing))
	assert.Equal(t, OrderStatusProcessing, o.Status)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	changed, ok := events[0].(*OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "PENDING", changed.FromStatus)
	assert.Equal(t, "PROCESSING", changed.ToStatus)
}

func TestOrder_TerminalStatusIsFrozen(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		t.Run(terminal.String(), func(t *testing.T) {
			o, err := NewOrder(OrderTypeIn, "Acme", nil, uuid.New(), validItems())
			require.NoError(t, err)
			require.NoError(t, o.ChangeStatus(terminal))

			err = o.ChangeStatus(OrderStatusPending)
			require.Error(t, err)

			var domainErr *shared.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, "ORDER_ALREADY_FINAL", domainErr.Code)
			assert.Equal(t, terminal, o.Status)
		})
	}
}

func TestOrder_ChangeStatusRejectsUnknownTarget(t *testing.T) {
	o, err := NewOrder(OrderTypeIn, "Acme", nil, uuid.New(), validItems())
	require.NoError(t, err)

	err = o.ChangeStatus(OrderStatus("ARCHIVED"))
	require.Error(t, err)
	assert.Equal(t, OrderStatusPending, o.Status)
}

func TestOrderStatus_Transitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusProcessing.CanTransitionTo(OrderStatusCancelled))
	assert.True(t, OrderStatusDraft.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusProcessing))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatus("BOGUS")))
}

func TestOrder_ReferenceTag(t *testing.T) {
	o, err := NewOrder(OrderTypeOut, "Acme", nil, uuid.New(), validItems())
	require.NoError(t, err)
	assert.Equal(t, "ORDER-"+o.ID.String(), o.ReferenceTag())
}
