package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// BillingService são as operações de assinatura usadas pelo controller
type BillingService interface {
	Overview(ctx context.Context, tenantID string) (*service.Overview, error)
	ChangePlan(ctx context.Context, tenantID string, plan subscription.Plan) (*subscription.Subscription, error)
}

// AnalyticsService calcula os indicadores do catálogo
type AnalyticsService interface {
	Dashboard(ctx context.Context, tenantID string) (*service.DashboardStats, error)
	Advanced(ctx context.Context, tenantID string) (*service.AdvancedAnalytics, error)
}

// SubscriptionController gerencia a assinatura do tenant e os indicadores liberados por plano
type SubscriptionController struct {
	billing   BillingService
	analytics AnalyticsService
}

// NewSubscriptionController cria uma nova instância de SubscriptionController
func NewSubscriptionController(billing BillingService, analytics AnalyticsService) *SubscriptionController {
	return &SubscriptionController{billing: billing, analytics: analytics}
}

// Get devolve a assinatura atual, criando o período de teste na primeira consulta
// @Summary Assinatura atual
// @Tags subscription
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /subscription [get]
func (c *SubscriptionController) Get(ctx *gin.Context) {
	c.respondOverview(ctx, http.StatusOK)
}

// ChangePlan troca o plano do tenant
// @Summary Troca o plano
// @Tags subscription
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePlanRequest true "Novo plano"
// @Success 200 {object} dto.SubscriptionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /subscription [put]
func (c *SubscriptionController) ChangePlan(ctx *gin.Context) {
	var request dto.ChangePlanRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	if _, err := c.billing.ChangePlan(ctx.Request.Context(), tenant.GetTenantID(ctx), subscription.Plan(request.Plan)); err != nil {
		respondError(ctx, err, "Erro ao alterar plano")
		return
	}

	c.respondOverview(ctx, http.StatusOK)
}

func (c *SubscriptionController) respondOverview(ctx *gin.Context, status int) {
	o, err := c.billing.Overview(ctx.Request.Context(), tenant.GetTenantID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar assinatura")
		return
	}

	resp := dto.ToSubscriptionResponse(o.Subscription)
	resp.Usage = dto.UsageResponse{
		Products:             o.Usage.Products,
		TeamMembers:          o.Usage.TeamMembers,
		RemainingProducts:    int(o.Usage.RemainingProducts),
		RemainingTeamMembers: int(o.Usage.RemainingTeamMembers),
	}
	resp.TrialDaysRemaining = o.TrialDaysRemaining
	resp.IsTrialing = o.IsTrialing
	resp.IsTrialExpired = o.IsTrialExpired
	resp.IsActive = o.IsActive
	ctx.JSON(status, resp)
}

// Plans lista a tabela de planos
// @Summary Lista os planos
// @Tags subscription
// @Produce json
// @Success 200 {object} dto.PlanListResponse
// @Router /plans [get]
func (c *SubscriptionController) Plans(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToPlanListResponse(subscription.Plans()))
}

// Dashboard devolve os indicadores do painel
// @Summary Indicadores do painel
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 402 {object} dto.ErrorResponse
// @Router /analytics/dashboard [get]
func (c *SubscriptionController) Dashboard(ctx *gin.Context) {
	stats, err := c.analytics.Dashboard(ctx.Request.Context(), tenant.GetTenantID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao calcular indicadores")
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// Advanced devolve as distribuições e rankings da análise avançada
// @Summary Análise avançada
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AdvancedAnalytics
// @Failure 402 {object} dto.ErrorResponse
// @Router /analytics/advanced [get]
func (c *SubscriptionController) Advanced(ctx *gin.Context) {
	result, err := c.analytics.Advanced(ctx.Request.Context(), tenant.GetTenantID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao calcular análise")
		return
	}
	ctx.JSON(http.StatusOK, result)
}
