package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededCache() *ProductCache {
	c := NewProductCache()
	c.Load([]Product{
		{ID: "p1", Name: "Arroz", Quantity: 10},
		{ID: "p2", Name: "Feijão", Quantity: 3},
	})
	return c
}

func TestProductCache_RollbackRestoresSnapshot(t *testing.T) {
	c := seededCache()

	m := c.Begin(func(items map[string]Product, order *[]string) {
		p := items["p1"]
		p.Quantity = 0
		items["p1"] = p
	})
	assert.Equal(t, MutationPending, m.State)
	p, _ := c.Get("p1")
	assert.Equal(t, 0, p.Quantity)

	c.Rollback(m, assert.AnError)

	assert.Equal(t, MutationRolledBack, m.State)
	assert.Equal(t, assert.AnError, m.Err)
	p, _ = c.Get("p1")
	assert.Equal(t, 10, p.Quantity)

	// uma mutação encerrada não muda mais de estado
	c.Commit(m, "p1", &Product{ID: "p1", Quantity: 99})
	assert.Equal(t, MutationRolledBack, m.State)
	p, _ = c.Get("p1")
	assert.Equal(t, 10, p.Quantity)
}

func TestProductCache_Reset(t *testing.T) {
	c := seededCache()
	c.Reset()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.List())
}

func optimisticServer(t *testing.T, fail bool) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"code": 400, "message": "Estoque insuficiente"})
			return
		}
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/products":
			var in ProductInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			writeJSON(w, http.StatusCreated, Product{ID: "p3", Name: in.Name, SKU: in.SKU, Quantity: in.Quantity})
		case r.Method == http.MethodPost && r.URL.Path == "/products/p2/movements":
			writeJSON(w, http.StatusCreated, Movement{ID: "m1", ProductID: "p2", QuantityBefore: 3, QuantityChange: 5, QuantityAfter: 8})
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestOptimistic_CreateCommits(t *testing.T) {
	srv := optimisticServer(t, false)
	defer srv.Close()

	cache := seededCache()
	o := NewOptimistic(New(srv.URL, fastPolicies), cache)

	m := o.Create(context.Background(), ProductInput{Name: "Sal", SKU: "FOO-1", Quantity: 2})

	require.Equal(t, MutationCommitted, m.State)
	assert.Equal(t, "p3", m.Product.ID)
	list := cache.List()
	require.Len(t, list, 3)
	assert.Equal(t, "p3", list[0].ID)
}

func TestOptimistic_MoveCommitsServerQuantity(t *testing.T) {
	srv := optimisticServer(t, false)
	defer srv.Close()

	cache := seededCache()
	m := NewOptimistic(New(srv.URL, fastPolicies), cache).Move(context.Background(), "p2",
		MovementInput{MovementType: "stock_in", QuantityChange: 5})

	require.Equal(t, MutationCommitted, m.State)
	p, _ := cache.Get("p2")
	assert.Equal(t, 8, p.Quantity)
}

func TestOptimistic_FailureRollsBack(t *testing.T) {
	srv := optimisticServer(t, true)
	defer srv.Close()

	cache := seededCache()
	o := NewOptimistic(New(srv.URL, fastPolicies), cache)

	m := o.Move(context.Background(), "p2", MovementInput{MovementType: "stock_out", QuantityChange: -5})
	assert.Equal(t, MutationRolledBack, m.State)
	assert.Error(t, m.Err)
	p, _ := cache.Get("p2")
	assert.Equal(t, 3, p.Quantity)

	m = o.Delete(context.Background(), "p1")
	assert.Equal(t, MutationRolledBack, m.State)
	assert.Equal(t, 2, cache.Len())

	m = o.Create(context.Background(), ProductInput{Name: "Sal", SKU: "FOO-1"})
	assert.Equal(t, MutationRolledBack, m.State)
	assert.Equal(t, 2, cache.Len())
}
