package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultChannel é o canal NOTIFY usado pelo gatilho de produtos
const DefaultChannel = "product_changes"

// Listener escuta um canal LISTEN/NOTIFY do PostgreSQL e publica os eventos no broker
type Listener struct {
	pool           *pgxpool.Pool
	channel        string
	broker         *Broker
	logger         logger.Logger
	reconnectDelay time.Duration
}

// NewListener cria um listener para o canal informado
func NewListener(pool *pgxpool.Pool, channel string, broker *Broker, log logger.Logger) *Listener {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Listener{
		pool:           pool,
		channel:        channel,
		broker:         broker,
		logger:         log,
		reconnectDelay: time.Second,
	}
}

// Run mantém a escuta até o contexto ser cancelado, reconectando após falhas
func (l *Listener) Run(ctx context.Context) {
	l.logger.Info("iniciando escuta de mudanças", "channel", l.channel)
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			l.logger.Info("escuta de mudanças encerrada", "channel", l.channel)
			return
		}
		l.logger.Error("falha na escuta de mudanças", "channel", l.channel, "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(l.reconnectDelay):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("falha ao obter conexão: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("falha ao executar LISTEN: %w", err)
	}

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		event, err := DecodeEvent([]byte(n.Payload))
		if err != nil {
			l.logger.Warn("notificação inválida descartada", "error", err)
			continue
		}
		l.broker.Publish(event)
	}
}

// DecodeEvent interpreta o payload JSON emitido pelo gatilho
func DecodeEvent(payload []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(payload, &e); err != nil {
		return e, fmt.Errorf("falha ao decodificar evento: %w", err)
	}
	if e.TenantID == "" || e.Table == "" {
		return e, errors.New("evento sem tenant ou tabela")
	}
	switch e.Type {
	case EventInsert, EventUpdate, EventDelete:
	default:
		return e, fmt.Errorf("tipo de evento desconhecido: %q", e.Type)
	}
	return e, nil
}
