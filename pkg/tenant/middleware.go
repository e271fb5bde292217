package tenant

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
)

// Validator define a interface para validação de tenant
type Validator interface {
	ValidateTenant(ctx context.Context, tenantID string) (bool, error)
}

// ValidatorFunc adapta uma função a Validator
type ValidatorFunc func(ctx context.Context, tenantID string) (bool, error)

func (f ValidatorFunc) ValidateTenant(ctx context.Context, tenantID string) (bool, error) {
	return f(ctx, tenantID)
}

// TenantMiddleware garante que o tenant do token existe e está ativo.
// Deve rodar depois do middleware JWT, que grava tenant_id no contexto.
func TenantMiddleware(validator Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Tenant ID não fornecido",
				ErrTenantNotSpecified.Error(),
			))
			return
		}

		valid, err := validator.ValidateTenant(c.Request.Context(), tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao validar tenant",
				err.Error(),
			))
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Tenant inválido",
				"O tenant informado não existe ou está inativo",
			))
			return
		}

		c.Next()
	}
}
