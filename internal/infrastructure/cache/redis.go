// Package cache cria o cliente Redis usado pelo limitador de requisições e pelo cooldown de alertas.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient conecta ao Redis e verifica a conexão com PING
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("erro ao conectar ao Redis: %w", err)
	}
	return client, nil
}
