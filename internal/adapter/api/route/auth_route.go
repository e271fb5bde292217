package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authController *controller.AuthController, rateLimit gin.HandlerFunc) {
	authRouter := router.Group("/auth")
	if rateLimit != nil {
		authRouter.Use(rateLimit)
	}
	{
		// Rotas públicas, limitadas por IP
		authRouter.POST("/signup", authController.Signup)
		authRouter.POST("/login", authController.Login)

		// Aceita token expirado dentro da janela de renovação
		authRouter.POST("/refresh", authController.RefreshToken)
	}
}
