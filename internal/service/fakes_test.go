package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/tenant"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/stretchr/testify/require"
)

// memDB é um banco em memória compartilhado pelos repositórios falsos
type memDB struct {
	mu        sync.Mutex
	products  []*product.Product
	movements []*movement.Movement
	subs      map[string]*subscription.Subscription
	users     map[string]*user.User
	tenants   map[string]*tenant.Tenant
	adjustErr map[string]error
}

func newMemDB() *memDB {
	return &memDB{
		subs:      make(map[string]*subscription.Subscription),
		users:     make(map[string]*user.User),
		tenants:   make(map[string]*tenant.Tenant),
		adjustErr: make(map[string]error),
	}
}

func (db *memDB) findProduct(tenantID, id string) *product.Product {
	for _, p := range db.products {
		if p.TenantID == tenantID && p.ID == id {
			return p
		}
	}
	return nil
}

func (db *memDB) quantity(id string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, p := range db.products {
		if p.ID == id {
			return p.Quantity
		}
	}
	return -1
}

func (db *memDB) movementList() []*movement.Movement {
	db.mu.Lock()
	defer db.mu.Unlock()
	return append([]*movement.Movement(nil), db.movements...)
}

type memProducts struct{ db *memDB }

func (r memProducts) Create(_ context.Context, p *product.Product, initial *movement.Movement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.products {
		if existing.TenantID == p.TenantID && existing.SKU == p.SKU {
			return product.ErrDuplicateSKU
		}
	}
	cp := *p
	r.db.products = append(r.db.products, &cp)
	if initial != nil {
		r.db.movements = append(r.db.movements, initial)
	}
	return nil
}

func (r memProducts) FindByID(_ context.Context, tenantID, id string) (*product.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p := r.db.findProduct(tenantID, id)
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r memProducts) FindByBarcode(_ context.Context, tenantID, barcode string) (*product.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, p := range r.db.products {
		if p.TenantID == tenantID && p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, product.ErrProductNotFound
}

func (r memProducts) matching(tenantID string, filter product.ListFilter) []*product.Product {
	search := strings.ToLower(filter.Search)
	var out []*product.Product
	for i := len(r.db.products) - 1; i >= 0; i-- {
		p := r.db.products[i]
		if p.TenantID != tenantID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if search != "" {
			hay := strings.ToLower(p.Name + " " + p.SKU)
			if p.Barcode != nil {
				hay += " " + strings.ToLower(*p.Barcode)
			}
			if !strings.Contains(hay, search) {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	return out
}

func (r memProducts) List(_ context.Context, tenantID string, filter product.ListFilter) ([]*product.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := r.matching(tenantID, filter)
	if filter.Offset >= len(out) {
		return []*product.Product{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r memProducts) Count(_ context.Context, tenantID string, filter product.ListFilter) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.matching(tenantID, filter)), nil
}

func (r memProducts) Update(_ context.Context, p *product.Product) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored := r.db.findProduct(p.TenantID, p.ID)
	if stored == nil {
		return product.ErrProductNotFound
	}
	quantity := stored.Quantity
	*stored = *p
	stored.Quantity = quantity
	return nil
}

func (r memProducts) Delete(_ context.Context, tenantID, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for i, p := range r.db.products {
		if p.TenantID == tenantID && p.ID == id {
			r.db.products = append(r.db.products[:i], r.db.products[i+1:]...)
			return nil
		}
	}
	return product.ErrProductNotFound
}

type memMovements struct{ db *memDB }

func (r memMovements) Adjust(_ context.Context, tenantID, productID string, build movement.BuildFunc) (*movement.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.adjustErr[productID]; err != nil {
		return nil, err
	}
	p := r.db.findProduct(tenantID, productID)
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	m, err := build(p.Quantity)
	if err != nil || m == nil {
		return nil, err
	}
	p.Quantity = m.QuantityAfter
	r.db.movements = append(r.db.movements, m)
	return m, nil
}

func (r memMovements) FindByID(_ context.Context, tenantID, id string) (*movement.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, m := range r.db.movements {
		if m.TenantID == tenantID && m.ID == id {
			return m, nil
		}
	}
	return nil, movement.ErrMovementNotFound
}

func (r memMovements) List(_ context.Context, tenantID string, filter movement.ListFilter) ([]*movement.Movement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*movement.Movement
	for i := len(r.db.movements) - 1; i >= 0; i-- {
		m := r.db.movements[i]
		if m.TenantID == tenantID && (filter.ProductID == "" || m.ProductID == filter.ProductID) {
			out = append(out, m)
		}
	}
	return out, nil
}

type memSubscriptions struct{ db *memDB }

func (r memSubscriptions) FindByTenant(_ context.Context, tenantID string) (*subscription.Subscription, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.subs[tenantID]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r memSubscriptions) Create(_ context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if existing, ok := r.db.subs[s.TenantID]; ok {
		cp := *existing
		return &cp, nil
	}
	cp := *s
	r.db.subs[s.TenantID] = &cp
	return s, nil
}

func (r memSubscriptions) Update(_ context.Context, s *subscription.Subscription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *s
	r.db.subs[s.TenantID] = &cp
	return nil
}

type memUsers struct{ db *memDB }

func copyUser(u *user.User) *user.User {
	cp := *u
	cp.Roles = append([]user.Role(nil), u.Roles...)
	return &cp
}

func (r memUsers) create(u *user.User) error {
	for _, existing := range r.db.users {
		if existing.Email == u.Email {
			return user.ErrDuplicateEmail
		}
	}
	r.db.users[u.ID] = copyUser(u)
	return nil
}

func (r memUsers) Create(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.create(u)
}

func (r memUsers) FindByID(_ context.Context, id string) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r memUsers) ListInvitedBy(_ context.Context, tenantID, inviterID string) ([]*user.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*user.User
	for _, u := range r.db.users {
		if u.TenantID == tenantID && u.WasInvitedBy(inviterID) {
			out = append(out, copyUser(u))
		}
	}
	return out, nil
}

func (r memUsers) CountByTenant(_ context.Context, tenantID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	count := 0
	for _, u := range r.db.users {
		if u.TenantID == tenantID {
			count++
		}
	}
	return count, nil
}

func (r memUsers) UpdateProfile(_ context.Context, u *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.users[u.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.FullName = u.FullName
	return nil
}

func (r memUsers) UpdatePassword(_ context.Context, id, hashedPassword string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	stored, ok := r.db.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	stored.Password = hashedPassword
	return nil
}

func (r memUsers) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.db.users, id)
	return nil
}

func (r memUsers) AssignRole(_ context.Context, userID string, role user.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	if u.HasRole(role) {
		return user.ErrDuplicateRole
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (r memUsers) RemoveRole(_ context.Context, userID string, role user.Role) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u, ok := r.db.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	for i, existing := range u.Roles {
		if existing == role {
			u.Roles = append(u.Roles[:i], u.Roles[i+1:]...)
			return nil
		}
	}
	return user.ErrRoleNotFound
}

type memTenants struct{ db *memDB }

func (r memTenants) CreateWithOwner(_ context.Context, t *tenant.Tenant, owner *user.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := (memUsers{db: r.db}).create(owner); err != nil {
		return err
	}
	cp := *t
	r.db.tenants[t.ID] = &cp
	return nil
}

func (r memTenants) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

// recordingPublisher guarda as chaves publicadas
type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey, _ string, _ interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

var errBroker = errors.New("broker indisponível")

var fixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// fixture monta os serviços sobre o banco em memória
type fixture struct {
	db       *memDB
	events   *recordingPublisher
	billing  *BillingService
	products *ProductService
	stock    *StockService
	actor    Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	events := &recordingPublisher{}
	log := logger.NewNop()

	billing := NewBillingService(memSubscriptions{db}, memProducts{db}, memUsers{db}, log)
	billing.now = func() time.Time { return fixedNow }
	products := NewProductService(memProducts{db}, memMovements{db}, billing, events, log)
	stock := NewStockService(memProducts{db}, memMovements{db}, events, log)

	return &fixture{
		db:       db,
		events:   events,
		billing:  billing,
		products: products,
		stock:    stock,
		actor:    Actor{TenantID: "tenant-1", UserID: "user-1"},
	}
}

func (f *fixture) upgrade(t *testing.T, plan subscription.Plan) {
	t.Helper()
	_, err := f.billing.ChangePlan(context.Background(), f.actor.TenantID, plan)
	require.NoError(t, err)
}

func (f *fixture) addProduct(t *testing.T, name, skuCode string, quantity int) *product.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), f.actor, product.Attributes{
		Name:     name,
		SKU:      skuCode,
		Quantity: quantity,
	})
	require.NoError(t, err)
	return p
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
