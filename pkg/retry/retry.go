// Package retry executa operações com novas tentativas e backoff exponencial limitado.
package retry

import (
	"context"
	"errors"
	"time"
)

// StatusCoder é implementado por erros que carregam um status HTTP
type StatusCoder interface {
	StatusCode() int
}

// Policy define quantas tentativas fazer e quanto esperar entre elas
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Retryable decide se o erro permite nova tentativa; nil usa IsRetryable
	Retryable func(error) bool
}

// ReadPolicy é a política das leituras: até 3 tentativas, espera min(1s·2^n, 30s)
var ReadPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
	MaxDelay:    30 * time.Second,
}

// WritePolicy é a política das escritas: no máximo uma nova tentativa após 1s
var WritePolicy = Policy{
	MaxAttempts: 2,
	BaseDelay:   time.Second,
	MaxDelay:    time.Second,
}

// Delay retorna a espera antes da tentativa seguinte à tentativa attempt (começando em 0)
func (p Policy) Delay(attempt int) time.Duration {
	d := p.BaseDelay
	for i := 0; i < attempt; i++ {
		d *= 2
		if p.MaxDelay > 0 && d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}
	return d
}

// IsRetryable rejeita novas tentativas para erros de cliente (4xx) e cancelamentos
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		code := sc.StatusCode()
		return code < 400 || code >= 500
	}
	return true
}

// Do executa fn até ter sucesso, esgotar as tentativas ou encontrar erro não recuperável.
// O último erro é devolvido.
func Do(ctx context.Context, p Policy, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryable := p.Retryable
	if retryable == nil {
		retryable = IsRetryable
	}

	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !retryable(err) || attempt == attempts-1 {
			return err
		}

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return err
}
