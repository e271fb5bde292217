package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/middleware"
)

// SetupSubscriptionRoutes configura as rotas de assinatura e de indicadores
func SetupSubscriptionRoutes(router *gin.RouterGroup, subscriptionController *controller.SubscriptionController, features middleware.FeatureChecker) {
	subscriptionRouter := router.Group("/subscription")
	{
		subscriptionRouter.GET("", subscriptionController.Get)
		subscriptionRouter.PUT("", auth.RoleAuthMiddleware(string(user.RoleAdmin)), subscriptionController.ChangePlan)
	}

	analyticsRouter := router.Group("/analytics")
	{
		analyticsRouter.GET("/dashboard",
			middleware.RequireFeature(features, subscription.FeatureBasicAnalytics),
			subscriptionController.Dashboard)
		analyticsRouter.GET("/advanced",
			middleware.RequireFeature(features, subscription.FeatureAdvancedAnalytics),
			subscriptionController.Advanced)
	}
}

// SetupNotificationRoutes configura as rotas de alertas
func SetupNotificationRoutes(router *gin.RouterGroup, notificationController *controller.NotificationController) {
	notificationRouter := router.Group("/notifications")
	{
		notificationRouter.GET("", notificationController.List)
		notificationRouter.GET("/stream", notificationController.Stream)
		notificationRouter.PATCH("/:id/read", notificationController.MarkAsRead)
		notificationRouter.POST("/read-all", notificationController.MarkAllAsRead)
		notificationRouter.DELETE("", notificationController.Clear)
	}
}
