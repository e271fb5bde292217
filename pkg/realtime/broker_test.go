package realtime

import (
	"testing"

	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_FiltersByTenantAndTable(t *testing.T) {
	b := NewBroker(logger.NewNop())
	sub := b.Subscribe("tenant-1", "products", 4)
	defer sub.Close()

	b.Publish(Event{Type: EventUpdate, Table: "products", TenantID: "tenant-2"})
	b.Publish(Event{Type: EventUpdate, Table: "subscriptions", TenantID: "tenant-1"})
	b.Publish(Event{Type: EventInsert, Table: "products", TenantID: "tenant-1"})

	require.Len(t, sub.Events(), 1)
	e := <-sub.Events()
	assert.Equal(t, EventInsert, e.Type)
}

func TestBroker_DropsWhenFull(t *testing.T) {
	b := NewBroker(logger.NewNop())
	sub := b.Subscribe("tenant-1", "products", 1)
	defer sub.Close()

	b.Publish(Event{Type: EventInsert, Table: "products", TenantID: "tenant-1"})
	b.Publish(Event{Type: EventUpdate, Table: "products", TenantID: "tenant-1"})

	assert.Len(t, sub.Events(), 1)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	b := NewBroker(logger.NewNop())
	sub := b.Subscribe("tenant-1", "products", 1)
	assert.Equal(t, 1, b.Subscribers())

	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.Subscribers())
	_, open := <-sub.Events()
	assert.False(t, open)

	b.Publish(Event{Type: EventInsert, Table: "products", TenantID: "tenant-1"})
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker(logger.NewNop())
	sub := b.Subscribe("tenant-1", "products", 1)

	b.Close()
	_, open := <-sub.Events()
	assert.False(t, open)
	sub.Close()

	late := b.Subscribe("tenant-1", "products", 1)
	_, open = <-late.Events()
	assert.False(t, open)
	late.Close()
}

func TestDecodeEvent(t *testing.T) {
	e, err := DecodeEvent([]byte(`{"eventType":"UPDATE","table":"products","tenantId":"t1","old":{"quantity":5},"new":{"quantity":0}}`))
	require.NoError(t, err)
	assert.Equal(t, EventUpdate, e.Type)
	assert.JSONEq(t, `{"quantity":0}`, string(e.New))

	_, err = DecodeEvent([]byte(`{"eventType":"TRUNCATE","table":"products","tenantId":"t1"}`))
	assert.Error(t, err)
	_, err = DecodeEvent([]byte(`{"eventType":"INSERT","table":"products"}`))
	assert.Error(t, err)
	_, err = DecodeEvent([]byte(`not json`))
	assert.Error(t, err)
}
