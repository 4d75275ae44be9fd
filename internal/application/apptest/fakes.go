// Package apptest provides in-memory repository fakes for application
// service tests. The fakes honor the same error contracts as the real
// gorm-backed repositories.
package apptest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/wms/backend/internal/domain/catalog"
	"github.com/wms/backend/internal/domain/inventory"
	"github.com/wms/backend/internal/domain/order"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/domain/warehouse"
)

// FakeProductRepo is an in-memory catalog.ProductRepository
type FakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

// NewFakeProductRepo creates an empty product repository
func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

// Add seeds a product
func (r *FakeProductRepo) Add(p *catalog.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
}

func (r *FakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, shared.ErrProductNotFound
	}
	return p, nil
}

func (r *FakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrProductNotFound
}

func (r *FakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *FakeProductRepo) FindExistingIDs(_ context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var existing []uuid.UUID
	for _, id := range ids {
		if _, ok := r.products[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (r *FakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ID] = p
	return nil
}

func (r *FakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

var _ catalog.ProductRepository = (*FakeProductRepo)(nil)

// FakeLocationRepo is an in-memory warehouse.LocationRepository.
// FindFirst returns locations in insertion order, oldest first.
type FakeLocationRepo struct {
	mu        sync.Mutex
	locations []*warehouse.Location
}

// NewFakeLocationRepo creates an empty location repository
func NewFakeLocationRepo() *FakeLocationRepo {
	return &FakeLocationRepo{}
}

// Add seeds a location
func (r *FakeLocationRepo) Add(l *warehouse.Location) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, l)
}

func (r *FakeLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeLocationRepo) FindByZone(_ context.Context, zoneID uuid.UUID) ([]warehouse.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []warehouse.Location
	for _, l := range r.locations {
		if l.ZoneID == zoneID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (r *FakeLocationRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.locations {
		if l.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *FakeLocationRepo) FindFirst(_ context.Context) (*warehouse.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.locations) == 0 {
		return nil, shared.ErrNoLocationAvailable
	}
	return r.locations[0], nil
}

func (r *FakeLocationRepo) Save(_ context.Context, l *warehouse.Location) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.locations {
		if existing.ID == l.ID {
			r.locations[i] = l
			return nil
		}
	}
	r.locations = append(r.locations, l)
	return nil
}

func (r *FakeLocationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.locations {
		if l.ID == id {
			r.locations = append(r.locations[:i], r.locations[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ warehouse.LocationRepository = (*FakeLocationRepo)(nil)

// FakeBalanceRepo is an in-memory inventory.StockBalanceRepository.
// Row IDs are assigned in creation order so FIFO behaves like the real
// autoincrement key.
type FakeBalanceRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*inventory.StockBalance
}

// NewFakeBalanceRepo creates an empty balance repository
func NewFakeBalanceRepo() *FakeBalanceRepo {
	return &FakeBalanceRepo{nextID: 1}
}

func (r *FakeBalanceRepo) find(productID, locationID uuid.UUID) *inventory.StockBalance {
	for _, b := range r.rows {
		if b.ProductID == productID && b.LocationID == locationID {
			return b
		}
	}
	return nil
}

func (r *FakeBalanceRepo) FindByProductAndLocation(_ context.Context, productID, locationID uuid.UUID) (*inventory.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.find(productID, locationID)
	if b == nil {
		return nil, shared.ErrBalanceNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *FakeBalanceRepo) FindByProductFIFO(_ context.Context, productID uuid.UUID) ([]inventory.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.StockBalance
	for _, b := range r.rows {
		if b.ProductID == productID && b.Quantity > 0 {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *FakeBalanceRepo) Increase(_ context.Context, productID, locationID uuid.UUID, quantity int64) (*inventory.StockBalance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b := r.find(productID, locationID); b != nil {
		if err := b.Increase(quantity); err != nil {
			return nil, err
		}
		copied := *b
		return &copied, nil
	}
	b, err := inventory.NewStockBalance(productID, locationID, quantity)
	if err != nil {
		return nil, err
	}
	b.ID = r.nextID
	r.nextID++
	r.rows = append(r.rows, b)
	copied := *b
	return &copied, nil
}

func (r *FakeBalanceRepo) Decrease(_ context.Context, productID, locationID uuid.UUID, quantity int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.find(productID, locationID)
	if b == nil {
		return shared.ErrBalanceNotFound.WithDetails(map[string]interface{}{
			"product_id":  productID.String(),
			"location_id": locationID.String(),
		})
	}
	if err := b.Decrease(quantity); err != nil {
		return err
	}
	if b.IsDepleted() {
		for i, row := range r.rows {
			if row == b {
				r.rows = append(r.rows[:i], r.rows[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (r *FakeBalanceRepo) QueryViews(_ context.Context, query inventory.BalanceQuery) ([]inventory.BalanceView, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.BalanceView
	for _, b := range r.rows {
		if query.ProductID != nil && b.ProductID != *query.ProductID {
			continue
		}
		if query.LocationID != nil && b.LocationID != *query.LocationID {
			continue
		}
		out = append(out, inventory.BalanceView{
			BalanceID:  b.ID,
			ProductID:  b.ProductID,
			LocationID: b.LocationID,
			Quantity:   b.Quantity,
			UpdatedAt:  b.UpdatedAt,
		})
	}
	return out, int64(len(out)), nil
}

func (r *FakeBalanceRepo) ExistsForLocation(_ context.Context, locationID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.rows {
		if b.LocationID == locationID {
			return true, nil
		}
	}
	return false, nil
}

var _ inventory.StockBalanceRepository = (*FakeBalanceRepo)(nil)

// FakeMovementRepo is an in-memory inventory.StockMovementRepository
type FakeMovementRepo struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

// NewFakeMovementRepo creates an empty movement ledger
func NewFakeMovementRepo() *FakeMovementRepo {
	return &FakeMovementRepo{}
}

// All returns every recorded movement in append order
func (r *FakeMovementRepo) All() []inventory.StockMovement {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, len(r.movements))
	copy(out, r.movements)
	return out
}

func (r *FakeMovementRepo) Create(_ context.Context, m *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *m)
	return nil
}

func (r *FakeMovementRepo) FindByID(_ context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			copied := m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *FakeMovementRepo) FindViewByID(ctx context.Context, id uuid.UUID) (*inventory.MovementView, error) {
	m, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := movementView(m)
	return &v, nil
}

func (r *FakeMovementRepo) QueryViews(_ context.Context, query inventory.MovementQuery) ([]inventory.MovementView, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []inventory.MovementView
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if query.ProductID != nil && m.ProductID != *query.ProductID {
			continue
		}
		if query.Type != nil && m.Type != *query.Type {
			continue
		}
		out = append(out, movementView(&m))
	}
	return out, int64(len(out)), nil
}

func movementView(m *inventory.StockMovement) inventory.MovementView {
	return inventory.MovementView{
		MovementID:     m.ID,
		Type:           m.Type.String(),
		ProductID:      m.ProductID,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		ReferenceID:    m.ReferenceID,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

var _ inventory.StockMovementRepository = (*FakeMovementRepo)(nil)

// FakeOrderRepo is an in-memory order.OrderRepository. Reads hand out
// copies so an aborted unit of work leaves the stored order untouched,
// mirroring transactional rollback.
type FakeOrderRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*order.Order
}

// NewFakeOrderRepo creates an empty order repository
func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{orders: make(map[uuid.UUID]*order.Order)}
}

func cloneOrder(o *order.Order) *order.Order {
	copied := *o
	copied.Items = make([]order.OrderItem, len(o.Items))
	copy(copied.Items, o.Items)
	copied.ClearDomainEvents()
	return &copied
}

func (r *FakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (r *FakeOrderRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *FakeOrderRepo) FindByNumber(_ context.Context, number string) (*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == number {
			return cloneOrder(o), nil
		}
	}
	return nil, shared.ErrOrderNotFound
}

func (r *FakeOrderRepo) FindAll(_ context.Context, query order.Query) ([]order.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Order
	for _, o := range r.orders {
		if query.Type != nil && o.Type != *query.Type {
			continue
		}
		if query.Status != nil && o.Status != *query.Status {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *FakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

func (r *FakeOrderRepo) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; !ok {
		return shared.ErrOrderNotFound
	}
	r.orders[o.ID] = cloneOrder(o)
	return nil
}

var _ order.OrderRepository = (*FakeOrderRepo)(nil)

// CapturingPublisher records published domain events
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []shared.DomainEvent
}

// Publish appends the events
func (p *CapturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, events...)
	return nil
}

// EventTypes returns the recorded event type strings in order
func (p *CapturingPublisher) EventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.Events))
	for _, e := range p.Events {
		out = append(out, e.EventType())
	}
	return out
}

var _ shared.EventPublisher = (*CapturingPublisher)(nil)
