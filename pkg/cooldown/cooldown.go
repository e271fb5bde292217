// Package cooldown limita a frequência de eventos por chave: depois de um evento
// permitido, a mesma chave fica bloqueada durante a janela configurada.
package cooldown

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultWindow é a janela padrão entre alertas do mesmo produto
const DefaultWindow = 5 * time.Second

// Limiter decide se um evento para a chave pode ser emitido agora
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter usa SET NX com expiração, compartilhando o estado entre instâncias
type RedisLimiter struct {
	client redis.Cmdable
	window time.Duration
	prefix string
}

// NewRedisLimiter cria um limitador apoiado no Redis
func NewRedisLimiter(client redis.Cmdable, window time.Duration) *RedisLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RedisLimiter{client: client, window: window, prefix: "cooldown:"}
}

// Allow grava a chave apenas se ela não existir; a expiração libera a próxima emissão
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+key, 1, l.window).Result()
	if err != nil {
		return false, fmt.Errorf("falha ao registrar cooldown: %w", err)
	}
	return ok, nil
}

// MemoryLimiter guarda o último evento de cada chave em memória
type MemoryLimiter struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time
	last   map[string]time.Time
}

// NewMemoryLimiter cria um limitador local ao processo
func NewMemoryLimiter(window time.Duration) *MemoryLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	return &MemoryLimiter{window: window, now: time.Now, last: make(map[string]time.Time)}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if last, ok := l.last[key]; ok && now.Sub(last) < l.window {
		return false, nil
	}

	for k, t := range l.last {
		if now.Sub(t) >= l.window {
			delete(l.last, k)
		}
	}
	l.last[key] = now
	return true, nil
}
