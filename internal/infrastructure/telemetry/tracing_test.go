package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/wms/backend/internal/infrastructure/telemetry"
)

// setupTestTracer installs an in-memory span recorder as the global
// tracer provider. Returns the recorder and a cleanup function that
// restores the original provider.
func setupTestTracer(t *testing.T) (*tracetest.SpanRecorder, func()) {
	t.Helper()

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sr),
	)

	originalProvider := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)

	cleanup := func() {
		otel.SetTracerProvider(originalProvider)
		_ = tp.Shutdown(context.Background())
	}

	return sr, cleanup
}

func TestStartSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, "test.operation", spans[0].Name())
	assert.Equal(t, trace.SpanKindInternal, spans[0].SpanKind())
}

func TestStartSpan_WithOptions(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation",
		telemetry.WithAttribute("test_key", "test_value"),
		telemetry.WithSpanKind(trace.SpanKindClient),
	)
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, trace.SpanKindClient, spans[0].SpanKind())

	var found bool
	for _, attr := range spans[0].Attributes() {
		if attr.Key == "test_key" && attr.Value.AsString() == "test_value" {
			found = true
			break
		}
	}
	assert.True(t, found, "expected attribute 'test_key' not found")
}

func TestStartServiceSpan(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartServiceSpan(context.Background(), "order", "update_status")
	require.NotNil(t, span)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	// Naming convention is {service}.{method}
	assert.Equal(t, "order.update_status", spans[0].Name())
}

func TestSetAttributes(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	telemetry.SetAttributes(span,
		"string_attr", "value",
		"int_attr", 42,
		"int64_attr", int64(100),
		"bool_attr", true,
	)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	attrMap := make(map[string]interface{})
	for _, attr := range spans[0].Attributes() {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}

	assert.Equal(t, "value", attrMap["string_attr"])
	assert.Equal(t, int64(42), attrMap["int_attr"])
	assert.Equal(t, int64(100), attrMap["int64_attr"])
	assert.Equal(t, true, attrMap["bool_attr"])
}

func TestSetAttributes_StringerValue(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	// UUIDs go through fmt.Stringer
	productID := uuid.New()
	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, productID)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	var found bool
	for _, attr := range spans[0].Attributes() {
		if string(attr.Key) == telemetry.SpanAttrProductID && attr.Value.AsString() == productID.String() {
			found = true
			break
		}
	}
	assert.True(t, found, "expected product_id attribute with UUID value")
}

func TestSetAttributes_OddKeyValues(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	// The trailing key has no value and must be dropped
	telemetry.SetAttributes(span,
		"key1", "value1",
		"key2", "value2",
		"orphan_key",
	)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes(), 2)
}

func TestSetAttributes_NonStringKey(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	telemetry.SetAttributes(span,
		"valid_key", "value",
		123, "skipped",
	)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Len(t, spans[0].Attributes(), 1)
}

func TestSetAttributes_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.SetAttributes(nil, "key", "value")
	})
}

func TestRecordError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	testErr := errors.New("insufficient stock")
	telemetry.RecordError(span, testErr)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "insufficient stock", spans[0].Status().Description)

	events := spans[0].Events()
	require.GreaterOrEqual(t, len(events), 1)
	assert.Equal(t, "exception", events[0].Name)
}

func TestRecordError_NilError(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")
	telemetry.RecordError(span, nil)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestRecordError_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.RecordError(nil, errors.New("test error"))
	})
}

func TestAddEvent(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	_, span := telemetry.StartSpan(context.Background(), "test.operation")

	telemetry.AddEvent(span, "order_completed",
		telemetry.SpanAttrOrderNumber, "ORD-20260831-0001",
		telemetry.SpanAttrQuantity, int64(10),
	)

	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)

	events := spans[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "order_completed", events[0].Name)

	attrMap := make(map[string]interface{})
	for _, attr := range events[0].Attributes {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}
	assert.Equal(t, "ORD-20260831-0001", attrMap[telemetry.SpanAttrOrderNumber])
	assert.Equal(t, int64(10), attrMap[telemetry.SpanAttrQuantity])
}

func TestAddEvent_NilSpan(t *testing.T) {
	assert.NotPanics(t, func() {
		telemetry.AddEvent(nil, "event_name", "key", "value")
	})
}

func TestGetTraceID(t *testing.T) {
	_, cleanup := setupTestTracer(t)
	defer cleanup()

	assert.Empty(t, telemetry.GetTraceID(context.Background()))

	ctx, span := telemetry.StartSpan(context.Background(), "test.operation")
	defer span.End()

	traceID := telemetry.GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, 32)
}

func TestNestedSpans(t *testing.T) {
	sr, cleanup := setupTestTracer(t)
	defer cleanup()

	ctx, parentSpan := telemetry.StartServiceSpan(context.Background(), "order", "update_status")
	_, childSpan := telemetry.StartServiceSpan(ctx, "inventory", "create_movement")
	childSpan.End()
	parentSpan.End()

	spans := sr.Ended()
	require.Len(t, spans, 2)

	var parent, child sdktrace.ReadOnlySpan
	for _, s := range spans {
		switch s.Name() {
		case "order.update_status":
			parent = s
		case "inventory.create_movement":
			child = s
		}
	}
	require.NotNil(t, parent, "parent span not found")
	require.NotNil(t, child, "child span not found")

	assert.Equal(t, parent.SpanContext().TraceID(), child.SpanContext().TraceID())
	assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
}
