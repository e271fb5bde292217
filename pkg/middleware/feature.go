package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// FeatureChecker informa se o plano do tenant inclui o recurso
type FeatureChecker interface {
	HasFeature(ctx context.Context, tenantID string, f subscription.Feature) (bool, error)
}

// RequireFeature bloqueia a rota com 402 quando o plano do tenant não inclui o recurso
func RequireFeature(checker FeatureChecker, f subscription.Feature) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := checker.HasFeature(c.Request.Context(), tenant.GetTenantID(c), f)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao verificar assinatura",
				err.Error(),
			))
			return
		}

		if !ok {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, dto.NewErrorResponse(
				http.StatusPaymentRequired,
				"Recurso não disponível no seu plano",
				"Faça upgrade do plano para usar "+string(f),
			))
			return
		}

		c.Next()
	}
}
