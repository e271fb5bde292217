package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/hugohenrick/erp-estoque/pkg/retry"
	"github.com/streadway/amqp"
)

// Routing keys dos eventos de estoque
const (
	RoutingStockMoved     = "inventory.stock.moved"
	RoutingProductCreated = "inventory.product.created"
	RoutingProductDeleted = "inventory.product.deleted"
)

// ErrNotConnected indica que não há conexão ativa com o broker
var ErrNotConnected = errors.New("sem conexão com o RabbitMQ")

// Broker é o destino das mensagens publicadas
type Broker interface {
	Publish(routingKey string, msg amqp.Publishing) error
}

// Envelope é o formato JSON de todos os eventos publicados
type Envelope struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	TenantID   string      `json:"tenant_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher serializa eventos e os publica com novas tentativas
type Publisher struct {
	broker Broker
	policy retry.Policy
	logger logger.Logger
}

// NewPublisher cria um publisher sobre o broker informado
func NewPublisher(broker Broker, log logger.Logger) *Publisher {
	return &Publisher{
		broker: broker,
		policy: retry.Policy{MaxAttempts: 3, BaseDelay: time.Second, MaxDelay: 4 * time.Second},
		logger: log,
	}
}

// NewEnvelope monta o envelope de um evento
func NewEnvelope(routingKey, tenantID string, payload interface{}) Envelope {
	return Envelope{
		ID:         uuid.New().String(),
		Type:       routingKey,
		TenantID:   tenantID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publish publica o payload na routing key informada
func (p *Publisher) Publish(ctx context.Context, routingKey, tenantID string, payload interface{}) error {
	env := NewEnvelope(routingKey, tenantID, payload)
	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("falha ao serializar evento: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		MessageId:    env.ID,
		Timestamp:    env.OccurredAt,
		Headers: amqp.Table{
			"tenant_id":  tenantID,
			"event_type": routingKey,
		},
	}

	err = retry.Do(ctx, p.policy, func(context.Context) error {
		return p.broker.Publish(routingKey, msg)
	})
	if err != nil {
		return fmt.Errorf("falha ao publicar evento %s: %w", routingKey, err)
	}

	p.logger.Debug("evento publicado", "routing_key", routingKey, "event_id", env.ID)
	return nil
}

// NopPublisher descarta os eventos; usado quando o RabbitMQ está desabilitado
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) error {
	return nil
}
