package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/hugohenrick/erp-estoque/pkg/retry"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBroker struct {
	failures int
	calls    int
	keys     []string
	messages []amqp.Publishing
}

func (f *fakeBroker) Publish(routingKey string, msg amqp.Publishing) error {
	f.calls++
	if f.calls <= f.failures {
		return ErrNotConnected
	}
	f.keys = append(f.keys, routingKey)
	f.messages = append(f.messages, msg)
	return nil
}

func fastPublisher(b Broker) *Publisher {
	p := NewPublisher(b, logger.NewNop())
	p.policy = retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond}
	return p
}

func TestPublisher_Publish(t *testing.T) {
	b := &fakeBroker{}
	p := fastPublisher(b)

	err := p.Publish(context.Background(), RoutingStockMoved, "tenant-1", map[string]int{"quantity_after": 4})
	require.NoError(t, err)

	require.Len(t, b.messages, 1)
	msg := b.messages[0]
	assert.Equal(t, RoutingStockMoved, b.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "tenant-1", msg.Headers["tenant_id"])

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Body, &env))
	assert.Equal(t, RoutingStockMoved, env.Type)
	assert.Equal(t, msg.MessageId, env.ID)
	assert.Equal(t, map[string]interface{}{"quantity_after": float64(4)}, env.Payload)
}

func TestPublisher_RetriesThenSucceeds(t *testing.T) {
	b := &fakeBroker{failures: 2}
	err := fastPublisher(b).Publish(context.Background(), RoutingProductCreated, "tenant-1", nil)

	require.NoError(t, err)
	assert.Equal(t, 3, b.calls)
}

func TestPublisher_GivesUp(t *testing.T) {
	b := &fakeBroker{failures: 10}
	err := fastPublisher(b).Publish(context.Background(), RoutingProductDeleted, "tenant-1", nil)

	assert.True(t, errors.Is(err, ErrNotConnected))
	assert.Equal(t, 3, b.calls)
}

func TestConnectionURL(t *testing.T) {
	cfg := &RabbitMQConfig{Host: "mq", Port: 5672, Username: "guest", Password: "pw", VHost: "estoque"}
	assert.Equal(t, "amqp://guest:pw@mq:5672/estoque", cfg.ConnectionURL())

	cfg.VHost = "/"
	assert.Equal(t, "amqp://guest:pw@mq:5672/", cfg.ConnectionURL())
}
