package client

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MutationState é o estado de uma atualização otimista
type MutationState string

const (
	MutationPending    MutationState = "pending"
	MutationCommitted  MutationState = "committed"
	MutationRolledBack MutationState = "rolled_back"
)

// Mutation é o resultado de uma atualização otimista.
// Product é o valor confirmado pelo servidor (nil em remoções e rollbacks).
type Mutation struct {
	ID      string
	State   MutationState
	Product *Product
	Err     error

	snapshot cacheState
}

type cacheState struct {
	items map[string]Product
	order []string
}

func (s cacheState) clone() cacheState {
	items := make(map[string]Product, len(s.items))
	for k, v := range s.items {
		items[k] = v
	}
	order := make([]string, len(s.order))
	copy(order, s.order)
	return cacheState{items: items, order: order}
}

// ProductCache guarda a visão local dos produtos. É criado no início da sessão e limpo com Reset no logout.
type ProductCache struct {
	mu    sync.RWMutex
	state cacheState
}

// NewProductCache cria um cache vazio
func NewProductCache() *ProductCache {
	return &ProductCache{state: cacheState{items: map[string]Product{}}}
}

// Load substitui o conteúdo pelo resultado de uma leitura do servidor
func (c *ProductCache) Load(products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = cacheState{items: make(map[string]Product, len(products))}
	for _, p := range products {
		if _, ok := c.state.items[p.ID]; !ok {
			c.state.order = append(c.state.order, p.ID)
		}
		c.state.items[p.ID] = p
	}
}

// Get retorna um produto do cache
func (c *ProductCache) Get(id string) (Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.state.items[id]
	return p, ok
}

// List retorna os produtos na ordem do cache
func (c *ProductCache) List() []Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Product, 0, len(c.state.order))
	for _, id := range c.state.order {
		out = append(out, c.state.items[id])
	}
	return out
}

// Len retorna a quantidade de produtos em cache
func (c *ProductCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.state.order)
}

// Reset descarta todo o conteúdo
func (c *ProductCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = cacheState{items: map[string]Product{}}
}

// Begin aplica a alteração local e devolve a mutação pendente com o snapshot anterior
func (c *ProductCache) Begin(local func(p map[string]Product, order *[]string)) *Mutation {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := &Mutation{ID: uuid.New().String(), State: MutationPending, snapshot: c.state.clone()}
	local(c.state.items, &c.state.order)
	return m
}

// Commit confirma a mutação. replaceID é a chave local a ser substituída pelo valor do servidor.
func (c *ProductCache) Commit(m *Mutation, replaceID string, confirmed *Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m.State != MutationPending {
		return
	}
	if confirmed != nil {
		if _, ok := c.state.items[replaceID]; ok && replaceID != confirmed.ID {
			delete(c.state.items, replaceID)
			for i, id := range c.state.order {
				if id == replaceID {
					c.state.order[i] = confirmed.ID
				}
			}
		} else if _, ok := c.state.items[confirmed.ID]; !ok {
			c.state.order = append([]string{confirmed.ID}, c.state.order...)
		}
		c.state.items[confirmed.ID] = *confirmed
	}
	m.State = MutationCommitted
	m.Product = confirmed
	m.snapshot = cacheState{}
}

// Rollback restaura o snapshot anterior à mutação
func (c *ProductCache) Rollback(m *Mutation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m.State != MutationPending {
		return
	}
	c.state = m.snapshot
	m.State = MutationRolledBack
	m.Err = err
	m.snapshot = cacheState{}
}

// Optimistic combina o Client com o ProductCache: altera a visão local, confirma no servidor
// e desfaz a alteração local quando o servidor falha.
type Optimistic struct {
	client *Client
	cache  *ProductCache
}

// NewOptimistic cria o orquestrador de atualizações otimistas
func NewOptimistic(client *Client, cache *ProductCache) *Optimistic {
	return &Optimistic{client: client, cache: cache}
}

// Refresh recarrega o cache a partir do servidor
func (o *Optimistic) Refresh(ctx context.Context, search, category string) error {
	page, err := o.client.ListProducts(ctx, search, category, 0, 100)
	if err != nil {
		return err
	}
	o.cache.Load(page.Data)
	return nil
}

// Create insere um produto provisório no topo da lista e o substitui pelo produto criado
func (o *Optimistic) Create(ctx context.Context, in ProductInput) *Mutation {
	tempID := "temp-" + uuid.New().String()
	m := o.cache.Begin(func(items map[string]Product, order *[]string) {
		items[tempID] = Product{ID: tempID, Name: in.Name, SKU: in.SKU, Barcode: in.Barcode,
			Quantity: in.Quantity, ExpiryDate: in.ExpiryDate, Category: in.Category}
		*order = append([]string{tempID}, *order...)
	})

	created, err := o.client.CreateProduct(ctx, in)
	if err != nil {
		o.cache.Rollback(m, err)
		return m
	}
	o.cache.Commit(m, tempID, created)
	return m
}

// Update aplica os campos localmente e confirma no servidor
func (o *Optimistic) Update(ctx context.Context, id string, in ProductInput) *Mutation {
	m := o.cache.Begin(func(items map[string]Product, _ *[]string) {
		if p, ok := items[id]; ok {
			p.Name, p.SKU, p.Barcode, p.Quantity = in.Name, in.SKU, in.Barcode, in.Quantity
			p.ExpiryDate = in.ExpiryDate
			if in.MinStock != nil {
				p.MinStock = *in.MinStock
			}
			if in.Category != "" {
				p.Category = in.Category
			}
			items[id] = p
		}
	})

	updated, err := o.client.UpdateProduct(ctx, id, in)
	if err != nil {
		o.cache.Rollback(m, err)
		return m
	}
	o.cache.Commit(m, id, updated)
	return m
}

// Delete remove o produto localmente e no servidor
func (o *Optimistic) Delete(ctx context.Context, id string) *Mutation {
	m := o.cache.Begin(func(items map[string]Product, order *[]string) {
		delete(items, id)
		kept := (*order)[:0]
		for _, v := range *order {
			if v != id {
				kept = append(kept, v)
			}
		}
		*order = kept
	})

	if err := o.client.DeleteProduct(ctx, id); err != nil {
		o.cache.Rollback(m, err)
		return m
	}
	o.cache.Commit(m, id, nil)
	return m
}

// Move ajusta a quantidade local pela variação e confirma a movimentação no servidor
func (o *Optimistic) Move(ctx context.Context, id string, in MovementInput) *Mutation {
	m := o.cache.Begin(func(items map[string]Product, _ *[]string) {
		if p, ok := items[id]; ok {
			p.Quantity += in.QuantityChange
			items[id] = p
		}
	})

	mv, err := o.client.ApplyMovement(ctx, id, in)
	if err != nil {
		o.cache.Rollback(m, err)
		return m
	}

	var confirmed *Product
	if p, ok := o.cache.Get(id); ok {
		p.Quantity = mv.QuantityAfter
		confirmed = &p
	}
	o.cache.Commit(m, id, confirmed)
	return m
}
