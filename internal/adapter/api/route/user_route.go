package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/controller"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
)

// SetupUserRoutes configura as rotas de perfil, papéis e equipe
func SetupUserRoutes(router *gin.RouterGroup, userController *controller.UserController) {
	adminOnly := auth.RoleAuthMiddleware(string(user.RoleAdmin))

	profileRouter := router.Group("/profile")
	{
		profileRouter.GET("", userController.Profile)
		profileRouter.PUT("", userController.UpdateProfile)
		profileRouter.PUT("/password", userController.ChangePassword)
	}

	rolesRouter := router.Group("/roles")
	{
		rolesRouter.GET("/me", userController.MyRoles)

		// Apenas administradores gerenciam papéis
		rolesRouter.POST("", adminOnly, userController.AssignRole)
		rolesRouter.DELETE("", adminOnly, userController.RemoveRole)
	}

	staffRouter := router.Group("/staff")
	staffRouter.Use(adminOnly)
	{
		staffRouter.GET("", userController.ListStaff)
		staffRouter.POST("", userController.InviteStaff)
		staffRouter.DELETE("/:id", userController.DeleteStaff)
	}
}
