package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func TestWithContext(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := WithContext(context.Background(), logger)

	retrieved := FromContext(ctx)
	assert.Equal(t, logger, retrieved)
}

func TestFromContext_NotFound(t *testing.T) {
	logger := FromContext(context.Background())

	// Should return a no-op logger
	assert.NotNil(t, logger)
}

func TestFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), LoggerKey, "not a logger")
	logger := FromContext(ctx)

	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Info("test")
	})
}

func TestWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	newCtx, newLogger := WithRequestID(context.Background(), logger, "req-123")

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, "req-123", GetRequestID(newCtx))
}

func TestWithUserID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	newCtx, newLogger := WithUserID(context.Background(), logger, "user-789")

	assert.NotNil(t, newCtx)
	assert.NotNil(t, newLogger)
	assert.Equal(t, "user-789", GetUserID(newCtx))
}

func TestGetRequestID_NotFound(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestGetUserID_NotFound(t *testing.T) {
	assert.Empty(t, GetUserID(context.Background()))
}

func TestContextChaining(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctx, logger = WithRequestID(ctx, logger, "req-1")
	ctx, logger = WithUserID(ctx, logger, "user-1")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.NotNil(t, logger)
}

func TestContextKeys(t *testing.T) {
	assert.NotEqual(t, LoggerKey, RequestIDKey)
	assert.NotEqual(t, RequestIDKey, UserIDKey)
	assert.NotEqual(t, LoggerKey, UserIDKey)
}

func TestLoggerFromEnrichedContext(t *testing.T) {
	baseLogger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx, enrichedLogger := WithRequestID(context.Background(), baseLogger, "req-test")

	// The logger in context is the enriched one, not the base logger
	assert.Equal(t, enrichedLogger, FromContext(ctx))
	assert.NotEqual(t, baseLogger, enrichedLogger)
}

func TestMultipleWithRequestID(t *testing.T) {
	logger, err := NewForEnvironment("development")
	require.NoError(t, err)

	ctx := context.Background()
	ctx, _ = WithRequestID(ctx, logger, "first-id")
	assert.Equal(t, "first-id", GetRequestID(ctx))

	// Second call overrides
	ctx, _ = WithRequestID(ctx, logger, "second-id")
	assert.Equal(t, "second-id", GetRequestID(ctx))
}

func TestWithTraceContext_NoSpan(t *testing.T) {
	baseLogger := zap.NewNop()

	enriched := WithTraceContext(context.Background(), baseLogger)

	// Without a span the original logger comes back unchanged
	assert.Equal(t, baseLogger, enriched)
}

func TestWithTraceContext_InvalidSpanContext(t *testing.T) {
	// Noop tracer spans carry an invalid span context
	tp := noop.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	require.False(t, spanCtx.IsValid())

	baseLogger := zap.NewNop()
	assert.Equal(t, baseLogger, WithTraceContext(ctx, baseLogger))
}

func TestWithTraceContext_WithRecordingSpan(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	original := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	defer func() {
		otel.SetTracerProvider(original)
		_ = tp.Shutdown(context.Background())
	}()

	ctx, span := tp.Tracer("test").Start(context.Background(), "test-span")
	defer span.End()

	baseLogger := zap.NewNop()
	enriched := WithTraceContext(ctx, baseLogger)

	// A valid span produces an enriched logger
	assert.NotEqual(t, baseLogger, enriched)
}
