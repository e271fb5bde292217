package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/stretchr/testify/require"
)

const (
	testTenant = "tenant-1"
	testUser   = "user-1"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()
}

// newRouter cria um router com o usuário autenticado já no contexto
func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(auth.KeyUserID, testUser)
		c.Set(auth.KeyTenantID, testTenant)
		c.Set(auth.KeyUserRole, string(user.RoleAdmin))
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// fakeProducts implementa ProductService com funções substituíveis por teste
type fakeProducts struct {
	ProductService
	create func(actor service.Actor, attrs product.Attributes) (*product.Product, error)
	get    func(id string) (*product.Product, error)
	list   func(filter product.ListFilter) ([]*product.Product, int, error)
	update func(id string, attrs product.Attributes, quantity *int) (*product.Product, error)
}

func (f *fakeProducts) Create(_ context.Context, actor service.Actor, attrs product.Attributes) (*product.Product, error) {
	return f.create(actor, attrs)
}

func (f *fakeProducts) Get(_ context.Context, _, id string) (*product.Product, error) {
	return f.get(id)
}

func (f *fakeProducts) List(_ context.Context, _ string, filter product.ListFilter) ([]*product.Product, int, error) {
	return f.list(filter)
}

func (f *fakeProducts) Update(_ context.Context, _ service.Actor, id string, attrs product.Attributes, quantity *int) (*product.Product, error) {
	return f.update(id, attrs, quantity)
}

func (f *fakeProducts) SuggestSKU(category string) string {
	return "GEN-0001"
}

type fakeStock struct {
	StockService
	apply   func(productID string, t movement.Type, change int) (*movement.Movement, error)
	history func(productID string, limit int) ([]*movement.Movement, error)
}

func (f *fakeStock) Apply(_ context.Context, _ service.Actor, productID string, t movement.Type, change int, _ string) (*movement.Movement, error) {
	return f.apply(productID, t, change)
}

func (f *fakeStock) History(_ context.Context, _, productID string, limit int) ([]*movement.Movement, error) {
	return f.history(productID, limit)
}

type fakeAccounts struct {
	AccountService
	login       func(email, password string) (*service.Session, error)
	deleteStaff func(admin service.Actor, staffID string) error
}

func (f *fakeAccounts) Login(_ context.Context, email, password string) (*service.Session, error) {
	return f.login(email, password)
}

func (f *fakeAccounts) DeleteStaff(_ context.Context, admin service.Actor, staffID string) error {
	return f.deleteStaff(admin, staffID)
}

type fakeAlerts struct {
	AlertService
	items []notification.Notification
}

func (f *fakeAlerts) List(string) []notification.Notification { return f.items }

func (f *fakeAlerts) UnreadCount(string) int {
	n := 0
	for _, item := range f.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (f *fakeAlerts) MarkAsRead(_, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Read = true
			return nil
		}
	}
	return notification.ErrNotificationNotFound
}

func sampleProduct(id string) *product.Product {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &product.Product{
		ID:        id,
		TenantID:  testTenant,
		Name:      "Caneta Azul",
		SKU:       "CAN-001",
		Quantity:  3,
		MinStock:  10,
		Category:  "Office Supplies",
		CreatedAt: now,
		UpdatedAt: now,
	}
}
