package messaging

import (
	"fmt"
	"sync"
	"time"

	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/streadway/amqp"
)

// RabbitMQClient mantém a conexão e o canal com o RabbitMQ, reconectando quando a conexão cai
type RabbitMQClient struct {
	config     *RabbitMQConfig
	logger     logger.Logger
	connection *amqp.Connection
	channel    *amqp.Channel
	mu         sync.RWMutex
	isClosing  bool
}

// NewRabbitMQClient cria um cliente ainda desconectado
func NewRabbitMQClient(config *RabbitMQConfig, log logger.Logger) *RabbitMQClient {
	return &RabbitMQClient{
		config: config,
		logger: log,
	}
}

// Connect abre a conexão, o canal e declara a exchange topic, com novas tentativas
func (r *RabbitMQClient) Connect() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	attempts := r.config.RetryCount
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = r.open(); err == nil {
			r.logger.Info("conectado ao RabbitMQ", "host", r.config.Host, "exchange", r.config.Exchange)
			go r.handleReconnection(r.connection)
			return nil
		}

		r.logger.Warn("falha ao conectar ao RabbitMQ", "attempt", i+1, "max_attempts", attempts, "error", err)
		if i < attempts-1 {
			time.Sleep(r.config.RetryDelay)
		}
	}
	return fmt.Errorf("falha ao conectar ao RabbitMQ: %w", err)
}

func (r *RabbitMQClient) open() error {
	conn, err := amqp.Dial(r.config.ConnectionURL())
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("falha ao abrir canal: %w", err)
	}

	err = ch.ExchangeDeclare(
		r.config.Exchange, // name
		"topic",           // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("falha ao declarar exchange: %w", err)
	}

	r.connection = conn
	r.channel = ch
	return nil
}

func (r *RabbitMQClient) handleReconnection(conn *amqp.Connection) {
	notifyClose := conn.NotifyClose(make(chan *amqp.Error, 1))

	err, ok := <-notifyClose
	if !ok {
		return
	}

	r.mu.RLock()
	closing := r.isClosing
	r.mu.RUnlock()
	if closing {
		return
	}

	r.logger.Warn("conexão com o RabbitMQ perdida, reconectando", "error", err)
	time.Sleep(2 * time.Second)
	if reconnectErr := r.Connect(); reconnectErr != nil {
		r.logger.Error("falha ao reconectar ao RabbitMQ", "error", reconnectErr)
	}
}

// Exchange retorna o nome da exchange configurada
func (r *RabbitMQClient) Exchange() string {
	return r.config.Exchange
}

// Publish envia a mensagem pelo canal atual
func (r *RabbitMQClient) Publish(routingKey string, msg amqp.Publishing) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.channel == nil || r.connection == nil || r.connection.IsClosed() {
		return ErrNotConnected
	}
	return r.channel.Publish(r.config.Exchange, routingKey, false, false, msg)
}

// Close encerra canal e conexão
func (r *RabbitMQClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isClosing {
		return nil
	}
	r.isClosing = true

	var closeErr error
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			closeErr = fmt.Errorf("falha ao fechar canal: %w", err)
		}
	}
	if r.connection != nil {
		if err := r.connection.Close(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("falha ao fechar conexão: %w", err)
		}
	}
	return closeErr
}
