package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/infrastructure/cache"
)

func setupIdempotencyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = store.Close() })

	r := gin.New()
	r.Use(Idempotency(IdempotencyConfig{
		Store:  store,
		TTL:    time.Minute,
		Logger: zap.NewNop(),
	}))
	r.POST("/orders", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestIdempotency_FirstRequestPasses(t *testing.T) {
	r := setupIdempotencyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	req.Header.Set(IdempotencyHeader, "key-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_ReplayRejected(t *testing.T) {
	r := setupIdempotencyRouter(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(IdempotencyHeader, "key-replay")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "request %d", i+1)
	}
}

func TestIdempotency_DistinctKeysIndependent(t *testing.T) {
	r := setupIdempotencyRouter(t)

	for _, key := range []string{"key-a", "key-b"} {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		req.Header.Set(IdempotencyHeader, key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestIdempotency_NoHeaderSkipped(t *testing.T) {
	r := setupIdempotencyRouter(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/orders", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
}

func TestIdempotency_ReadRequestsSkipped(t *testing.T) {
	r := setupIdempotencyRouter(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/orders", nil)
		req.Header.Set(IdempotencyHeader, "key-read")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
