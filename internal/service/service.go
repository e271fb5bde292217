// Package service reúne as regras de negócio do estoque que combinam
// repositórios, plano de assinatura e publicação de eventos.
package service

import (
	"context"
	"errors"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// Actor identifica quem executa a operação
type Actor struct {
	TenantID string
	UserID   string
}

// EventPublisher publica eventos de domínio; falhas não interrompem a operação
type EventPublisher interface {
	Publish(ctx context.Context, routingKey, tenantID string, payload interface{}) error
}

// Clock devolve a hora atual
type Clock func() time.Time

// ErrEmptyImport indica que o arquivo não tinha nenhum registro válido
var ErrEmptyImport = errors.New("nenhum produto válido encontrado no arquivo")

// Message devolve a mensagem apresentável ao usuário para um erro de domínio,
// com a primeira letra maiúscula
func Message(err error) string {
	msg := err.Error()
	var vErr *product.ValidationError
	if errors.As(err, &vErr) {
		msg = vErr.Message
	}
	r, size := utf8.DecodeRuneInString(msg)
	if r == utf8.RuneError {
		return msg
	}
	return string(unicode.ToUpper(r)) + msg[size:]
}
