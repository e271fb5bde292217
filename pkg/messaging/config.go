// Package messaging publica eventos de domínio numa exchange topic do RabbitMQ.
package messaging

import (
	"fmt"
	"strings"
	"time"
)

// RabbitMQConfig contém as configurações de conexão com o RabbitMQ
type RabbitMQConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	VHost      string
	Exchange   string
	RetryCount int
	RetryDelay time.Duration
}

// ConnectionURL monta a URL amqp:// a partir da configuração
func (c *RabbitMQConfig) ConnectionURL() string {
	vhost := c.VHost
	if vhost != "/" && !strings.HasPrefix(vhost, "/") {
		vhost = "/" + vhost
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%d%s",
		c.Username, c.Password, c.Host, c.Port, vhost)
}
