package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wms/backend/internal/application/apptest"
	warehouseapp "github.com/wms/backend/internal/application/warehouse"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

type stubWarehouseRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*warehouse.Warehouse
}

func (r *stubWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return w, nil
}

func (r *stubWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]warehouse.Warehouse, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]warehouse.Warehouse, 0, len(r.items))
	for _, w := range r.items {
		out = append(out, *w)
	}
	return out, int64(len(out)), nil
}

func (r *stubWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[w.ID] = w
	return nil
}

func (r *stubWarehouseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

type stubZoneRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*warehouse.Zone
}

func (r *stubZoneRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	z, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return z, nil
}

func (r *stubZoneRepo) FindByWarehouse(_ context.Context, warehouseID uuid.UUID) ([]warehouse.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]warehouse.Zone, 0)
	for _, z := range r.items {
		if z.WarehouseID == warehouseID {
			out = append(out, *z)
		}
	}
	return out, nil
}

func (r *stubZoneRepo) Save(_ context.Context, z *warehouse.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[z.ID] = z
	return nil
}

func (r *stubZoneRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func newWarehouseTestRouter(t *testing.T) (*gin.Engine, *apptest.FakeBalanceRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	balances := apptest.NewFakeBalanceRepo()
	svc := warehouseapp.NewWarehouseService(
		&stubWarehouseRepo{items: make(map[uuid.UUID]*warehouse.Warehouse)},
		&stubZoneRepo{items: make(map[uuid.UUID]*warehouse.Zone)},
		apptest.NewFakeLocationRepo(),
		balances,
		zap.NewNop())
	h := NewWarehouseHandler(svc)

	engine := gin.New()
	api := engine.Group("/api/v1")
	api.POST("/warehouses", h.CreateWarehouse)
	api.GET("/warehouses", h.ListWarehouses)
	api.GET("/warehouses/:id", h.GetWarehouse)
	api.POST("/warehouses/:id/zones", h.CreateZone)
	api.GET("/warehouses/:id/zones", h.ListZones)
	api.POST("/zones/:id/locations", h.CreateLocation)
	api.GET("/zones/:id/locations", h.ListLocations)
	api.DELETE("/locations/:id", h.DeleteLocation)
	return engine, balances
}

func TestWarehouseHandler_Hierarchy(t *testing.T) {
	engine, _ := newWarehouseTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/api/v1/warehouses", gin.H{
		"code": "WH-EAST",
		"name": "East Coast DC",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var wh struct {
		Data WarehouseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wh))

	w = doJSON(engine, http.MethodPost, "/api/v1/warehouses/"+wh.Data.ID+"/zones", gin.H{
		"code": "A",
		"name": "Ambient storage",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var zone struct {
		Data ZoneResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zone))
	assert.Equal(t, wh.Data.ID, zone.Data.WarehouseID)

	w = doJSON(engine, http.MethodPost, "/api/v1/zones/"+zone.Data.ID+"/locations", gin.H{
		"code": "A-01-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(engine, http.MethodGet, "/api/v1/zones/"+zone.Data.ID+"/locations", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var locations struct {
		Data []LocationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &locations))
	assert.Len(t, locations.Data, 1)
}

func TestWarehouseHandler_CreateZoneUnknownWarehouse(t *testing.T) {
	engine, _ := newWarehouseTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/api/v1/warehouses/"+uuid.New().String()+"/zones", gin.H{
		"code": "A",
		"name": "Ambient storage",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWarehouseHandler_DeleteLocationWithStock(t *testing.T) {
	engine, balances := newWarehouseTestRouter(t)

	w := doJSON(engine, http.MethodPost, "/api/v1/warehouses", gin.H{"code": "WH", "name": "DC"})
	require.Equal(t, http.StatusCreated, w.Code)
	var wh struct {
		Data WarehouseResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &wh))

	w = doJSON(engine, http.MethodPost, "/api/v1/warehouses/"+wh.Data.ID+"/zones", gin.H{"code": "A", "name": "Zone A"})
	require.Equal(t, http.StatusCreated, w.Code)
	var zone struct {
		Data ZoneResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &zone))

	w = doJSON(engine, http.MethodPost, "/api/v1/zones/"+zone.Data.ID+"/locations", gin.H{"code": "A-01-01"})
	require.Equal(t, http.StatusCreated, w.Code)
	var loc struct {
		Data LocationResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loc))

	locID, err := uuid.Parse(loc.Data.ID)
	require.NoError(t, err)
	_, err = balances.Increase(context.Background(), uuid.New(), locID, 5)
	require.NoError(t, err)

	w = doJSON(engine, http.MethodDelete, "/api/v1/locations/"+loc.Data.ID, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
