// Package realtime distribui eventos de mudança do banco para assinantes filtrados
// por tenant e tabela.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/hugohenrick/erp-estoque/pkg/logger"
)

// EventType é o tipo da mudança
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// DefaultBuffer é o tamanho padrão do canal de cada assinatura
const DefaultBuffer = 64

// Event é uma mudança numa linha de tabela
type Event struct {
	Type     EventType       `json:"eventType"`
	Table    string          `json:"table"`
	TenantID string          `json:"tenantId"`
	Old      json.RawMessage `json:"old,omitempty"`
	New      json.RawMessage `json:"new,omitempty"`
}

// Broker entrega cada evento publicado às assinaturas compatíveis
type Broker struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
	logger logger.Logger
}

// NewBroker cria um broker vazio
func NewBroker(log logger.Logger) *Broker {
	return &Broker{
		subs:   make(map[*Subscription]struct{}),
		logger: log,
	}
}

// Subscribe cria uma assinatura para os eventos do tenant na tabela informada.
// A assinatura deve ser encerrada com Close.
func (b *Broker) Subscribe(tenantID, table string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	s := &Subscription{
		broker:   b,
		tenantID: tenantID,
		table:    table,
		events:   make(chan Event, buffer),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(s.events)
		s.done = true
		return s
	}
	b.subs[s] = struct{}{}
	return s
}

// Publish entrega o evento sem bloquear; assinaturas com o canal cheio perdem o evento
func (b *Broker) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		if s.tenantID != e.TenantID || s.table != e.Table {
			continue
		}
		select {
		case s.events <- e:
		default:
			b.logger.Warn("assinatura lenta, evento descartado", "tenant_id", e.TenantID, "table", e.Table)
		}
	}
}

// Subscribers retorna o número de assinaturas ativas
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close encerra todas as assinaturas; publicações seguintes são ignoradas
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for s := range b.subs {
		s.done = true
		close(s.events)
		delete(b.subs, s)
	}
}

func (b *Broker) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.done {
		return
	}
	s.done = true
	delete(b.subs, s)
	close(s.events)
}

// Subscription é o handle de uma assinatura ativa
type Subscription struct {
	broker   *Broker
	tenantID string
	table    string
	events   chan Event
	done     bool // protegido por broker.mu
}

// Events retorna o canal de eventos; ele é fechado quando a assinatura termina
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close encerra a assinatura; chamadas repetidas não têm efeito
func (s *Subscription) Close() {
	s.broker.remove(s)
}
