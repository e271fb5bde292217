package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// UserController gerencia perfil, papéis e equipe do usuário autenticado
type UserController struct {
	accounts AccountService
}

// NewUserController cria uma nova instância de UserController
func NewUserController(accounts AccountService) *UserController {
	return &UserController{
		accounts: accounts,
	}
}

// Profile devolve o perfil do usuário autenticado
// @Summary Perfil do usuário
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profile [get]
func (c *UserController) Profile(ctx *gin.Context) {
	u, err := c.accounts.Profile(ctx.Request.Context(), auth.GetCurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err, "Erro ao buscar perfil")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// UpdateProfile altera o nome completo do usuário autenticado
// @Summary Atualiza o perfil
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body dto.UpdateProfileRequest true "Dados do perfil"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	u, err := c.accounts.UpdateProfile(ctx.Request.Context(), auth.GetCurrentUser(ctx).ID, request.FullName)
	if err != nil {
		respondError(ctx, err, "Erro ao atualizar perfil")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(u))
}

// ChangePassword altera a senha do usuário autenticado
// @Summary Altera a senha
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param password body dto.ChangePasswordRequest true "Senha atual e nova senha"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /profile/password [put]
func (c *UserController) ChangePassword(ctx *gin.Context) {
	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	err := c.accounts.ChangePassword(ctx.Request.Context(), auth.GetCurrentUser(ctx).ID, request.CurrentPassword, request.NewPassword)
	if err != nil {
		respondError(ctx, err, "Erro ao alterar senha")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Senha alterada com sucesso"))
}

// MyRoles devolve os papéis do usuário autenticado
// @Summary Papéis do usuário
// @Tags roles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.MyRolesResponse
// @Router /roles/me [get]
func (c *UserController) MyRoles(ctx *gin.Context) {
	roles, err := c.accounts.Roles(ctx.Request.Context(), auth.GetCurrentUser(ctx).ID)
	if err != nil {
		respondError(ctx, err, "Erro ao buscar papéis")
		return
	}

	isAdmin := false
	for _, r := range roles {
		if r == user.RoleAdmin {
			isAdmin = true
		}
	}
	ctx.JSON(http.StatusOK, dto.MyRolesResponse{Roles: dto.RoleNames(roles), IsAdmin: isAdmin})
}

// AssignRole atribui um papel a um usuário do tenant
// @Summary Atribui um papel
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role body dto.RoleRequest true "Usuário e papel"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /roles [post]
func (c *UserController) AssignRole(ctx *gin.Context) {
	var request dto.RoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	if err := c.accounts.AssignRole(ctx.Request.Context(), tenant.GetTenantID(ctx), request.UserID, user.Role(request.Role)); err != nil {
		respondError(ctx, err, "Erro ao atribuir papel")
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Papel atribuído com sucesso"))
}

// RemoveRole remove um papel de um usuário do tenant
// @Summary Remove um papel
// @Tags roles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role body dto.RoleRequest true "Usuário e papel"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /roles [delete]
func (c *UserController) RemoveRole(ctx *gin.Context) {
	var request dto.RoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	if err := c.accounts.RemoveRole(ctx.Request.Context(), tenant.GetTenantID(ctx), request.UserID, user.Role(request.Role)); err != nil {
		respondError(ctx, err, "Erro ao remover papel")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Papel removido com sucesso"))
}

// ListStaff lista os funcionários convidados pelo administrador
// @Summary Lista a equipe
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Router /staff [get]
func (c *UserController) ListStaff(ctx *gin.Context) {
	users, err := c.accounts.ListStaff(ctx.Request.Context(), actorFrom(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao listar equipe")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(users))
}

// InviteStaff cadastra um funcionário no tenant do administrador
// @Summary Convida um funcionário
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param staff body dto.InviteStaffRequest true "Dados do funcionário"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Router /staff [post]
func (c *UserController) InviteStaff(ctx *gin.Context) {
	var request dto.InviteStaffRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	u, err := c.accounts.InviteStaff(ctx.Request.Context(), actorFrom(ctx), request.Email, request.Password, request.FullName)
	if err != nil {
		respondError(ctx, err, "Erro ao convidar funcionário")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(u))
}

// DeleteStaff remove um funcionário convidado pelo administrador
// @Summary Remove um funcionário
// @Tags staff
// @Security BearerAuth
// @Param id path string true "ID do funcionário"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /staff/{id} [delete]
func (c *UserController) DeleteStaff(ctx *gin.Context) {
	if err := c.accounts.DeleteStaff(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err, "Erro ao remover funcionário")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Funcionário removido com sucesso"))
}
