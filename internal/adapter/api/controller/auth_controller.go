package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/service"
)

// AccountService são as operações de conta, perfil, papéis e equipe
type AccountService interface {
	Signup(ctx context.Context, in service.SignupInput) (*service.Session, error)
	Login(ctx context.Context, email, password string) (*service.Session, error)
	Refresh(ctx context.Context, token string) (*service.Session, error)

	Profile(ctx context.Context, userID string) (*user.User, error)
	UpdateProfile(ctx context.Context, userID, fullName string) (*user.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error

	Roles(ctx context.Context, userID string) ([]user.Role, error)
	AssignRole(ctx context.Context, tenantID, userID string, role user.Role) error
	RemoveRole(ctx context.Context, tenantID, userID string, role user.Role) error

	InviteStaff(ctx context.Context, admin service.Actor, email, password, fullName string) (*user.User, error)
	DeleteStaff(ctx context.Context, admin service.Actor, staffID string) error
	ListStaff(ctx context.Context, admin service.Actor) ([]*user.User, error)
}

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	accounts AccountService
	now      clock
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(accounts AccountService) *AuthController {
	return &AuthController{
		accounts: accounts,
		now:      time.Now,
	}
}

// Signup cria uma conta: tenant, administrador e assinatura em teste
// @Summary Cria uma conta
// @Description Cria o tenant e o usuário administrador e devolve um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequest true "Dados da conta"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var request dto.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.accounts.Signup(ctx.Request.Context(), service.SignupInput{
		BusinessName: request.BusinessName,
		FullName:     request.FullName,
		Email:        request.Email,
		Password:     request.Password,
	})
	if err != nil {
		respondError(ctx, err, "Erro ao criar conta")
		return
	}

	ctx.JSON(http.StatusCreated, c.loginResponse(session))
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.accounts.Login(ctx.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondError(ctx, err, "Erro ao autenticar usuário")
		return
	}

	ctx.JSON(http.StatusOK, c.loginResponse(session))
}

// RefreshToken renova um token JWT
// @Summary Renova um token JWT
// @Description Emite um novo token a partir de um token válido ou expirado há pouco, recalculando o papel do usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token a ser renovado"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.accounts.Refresh(ctx.Request.Context(), request.Token)
	if err != nil {
		respondError(ctx, err, "Erro ao renovar token")
		return
	}

	ctx.JSON(http.StatusOK, c.loginResponse(session))
}

func (c *AuthController) loginResponse(s *service.Session) dto.LoginResponse {
	return dto.LoginResponse{
		User:        dto.ToUserResponse(s.User),
		AccessToken: s.Token,
		TokenType:   "Bearer",
		ExpiresIn:   s.ExpiresIn,
		ExpiresAt:   c.now().Add(time.Duration(s.ExpiresIn) * time.Second),
		Role:        string(s.Role),
	}
}
