// Package middleware reúne os middlewares HTTP transversais: limite de requisições e bloqueio por plano.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRateLimitPeriod é a janela padrão do contador
	DefaultRateLimitPeriod = time.Minute
	// DefaultRateLimitCount é o número padrão de requisições permitidas por janela
	DefaultRateLimitCount = 5
)

// RateLimitConfig configura o limitador
type RateLimitConfig struct {
	Prefix string
	Limit  int64
	Period time.Duration
}

// RateLimiter conta as requisições por IP no Redis (INCR + EXPIRE na primeira da janela).
// Sem cliente Redis o middleware deixa tudo passar; falhas do Redis também não bloqueiam a requisição.
func RateLimiter(client redis.Cmdable, cfg RateLimitConfig, log logger.Logger) gin.HandlerFunc {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultRateLimitCount
	}
	if cfg.Period <= 0 {
		cfg.Period = DefaultRateLimitPeriod
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "rate_limit:"
	}

	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cfg.Prefix + c.ClientIP()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Warn("falha ao consultar limite de requisições", "key", key, "error", err)
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, cfg.Period).Err(); err != nil {
				log.Warn("falha ao definir expiração do limite", "key", key, "error", err)
			}
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(cfg.Limit, 10))
		remaining := cfg.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > cfg.Limit {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				http.StatusTooManyRequests,
				"Muitas requisições",
				"Aguarde alguns instantes e tente novamente",
			))
			return
		}

		c.Next()
	}
}
