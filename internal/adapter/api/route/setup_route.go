package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/pkg/middleware"
)

// Controllers agrupa os controllers expostos pela API
type Controllers struct {
	Auth         *controller.AuthController
	User         *controller.UserController
	Product      *controller.ProductController
	CSV          *controller.CSVController
	Scan         *controller.ScanController
	Label        *controller.LabelController
	Subscription *controller.SubscriptionController
	Notification *controller.NotificationController
	Health       *controller.HealthController
}

// Guards agrupa os middlewares de acesso
type Guards struct {
	// Auth valida o token JWT
	Auth gin.HandlerFunc
	// Tenant confirma que o tenant do token está ativo
	Tenant gin.HandlerFunc
	// RateLimit protege as rotas públicas de autenticação
	RateLimit gin.HandlerFunc
	// Features informa os recursos liberados pelo plano do tenant
	Features middleware.FeatureChecker
}

// SetupRoutes registra todas as rotas da API no grupo base
func SetupRoutes(api *gin.RouterGroup, c Controllers, g Guards) {
	dto.RegisterValidators()

	api.GET("/health", c.Health.Health)
	api.GET("/plans", c.Subscription.Plans)

	SetupAuthRoutes(api, c.Auth, g.RateLimit)

	// Demais rotas exigem usuário autenticado de um tenant ativo
	protected := api.Group("")
	protected.Use(g.Auth, g.Tenant)

	SetupUserRoutes(protected, c.User)
	SetupProductRoutes(protected, c.Product, c.CSV, g.Features)
	SetupScanRoutes(protected, c.Scan, c.Label, g.Features)
	SetupSubscriptionRoutes(protected, c.Subscription, g.Features)
	SetupNotificationRoutes(protected, c.Notification)
}
