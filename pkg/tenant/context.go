// Package tenant propaga o tenant autenticado pelo contexto da requisição.
package tenant

import (
	"context"
	"errors"
)

type contextKey string

const (
	// tenantIDKey é a chave usada para armazenar o tenant ID no contexto
	tenantIDKey contextKey = "tenant_id"
)

// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
var ErrTenantNotSpecified = errors.New("tenant ID não especificado")

// SetTenantIDContext define o tenant ID no contexto
func SetTenantIDContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantIDFromContext obtém o tenant ID do contexto
func GetTenantIDFromContext(ctx context.Context) string {
	if tenantID, ok := ctx.Value(tenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// GetTenantID obtém o tenant ID de um contexto do Gin
func GetTenantID(c interface{ GetString(string) string }) string {
	return c.GetString("tenant_id")
}
