package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/tenant"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
	"github.com/hugohenrick/erp-estoque/pkg/label"
)

// errorStatus relaciona os erros de domínio ao código HTTP devolvido
var errorStatus = []struct {
	err    error
	status int
}{
	{product.ErrProductNotFound, http.StatusNotFound},
	{movement.ErrMovementNotFound, http.StatusNotFound},
	{user.ErrUserNotFound, http.StatusNotFound},
	{user.ErrRoleNotFound, http.StatusNotFound},
	{notification.ErrNotificationNotFound, http.StatusNotFound},
	{subscription.ErrSubscriptionNotFound, http.StatusNotFound},
	{tenant.ErrTenantNotFound, http.StatusNotFound},

	{product.ErrDuplicateSKU, http.StatusConflict},
	{user.ErrDuplicateEmail, http.StatusConflict},
	{user.ErrDuplicateRole, http.StatusConflict},
	{service.ErrInvalidTransition, http.StatusConflict},

	{subscription.ErrProductLimitReached, http.StatusPaymentRequired},
	{subscription.ErrTeamLimitReached, http.StatusPaymentRequired},
	{subscription.ErrFeatureUnavailable, http.StatusPaymentRequired},

	{service.ErrNotInvitedByYou, http.StatusForbidden},
	{tenant.ErrTenantNotActive, http.StatusForbidden},

	{user.ErrInvalidCredentials, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrExpiredToken, http.StatusUnauthorized},
	{auth.ErrInvalidClaims, http.StatusUnauthorized},
	{auth.ErrRefreshExpired, http.StatusUnauthorized},

	{movement.ErrInsufficientStock, http.StatusBadRequest},
	{movement.ErrInvalidType, http.StatusBadRequest},
	{movement.ErrInvalidChange, http.StatusBadRequest},
	{subscription.ErrInvalidPlan, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
	{user.ErrWeakPassword, http.StatusBadRequest},
	{user.ErrInvalidEmail, http.StatusBadRequest},
	{tenant.ErrEmptyName, http.StatusBadRequest},
	{service.ErrMissingStaffFields, http.StatusBadRequest},
	{service.ErrStaffPasswordLength, http.StatusBadRequest},
	{service.ErrStaffEmailTaken, http.StatusBadRequest},
	{service.ErrMissingStaffID, http.StatusBadRequest},
	{service.ErrWrongPassword, http.StatusBadRequest},
	{service.ErrEmptyFullName, http.StatusBadRequest},
	{service.ErrEmptyImport, http.StatusBadRequest},
	{service.ErrEmptyBarcode, http.StatusBadRequest},
	{service.ErrInvalidQuantity, http.StatusBadRequest},
	{service.ErrInvalidScanMode, http.StatusBadRequest},
	{service.ErrNothingToUndo, http.StatusBadRequest},
	{label.ErrInvalidCodeType, http.StatusBadRequest},
	{label.ErrNoProducts, http.StatusBadRequest},
}

// statusFor devolve o código HTTP de um erro; erros desconhecidos são 500
func statusFor(err error) int {
	var vErr *product.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// respondError escreve a resposta de erro. Erros de domínio levam a própria
// mensagem; erros internos levam a mensagem genérica e o erro em details.
func respondError(ctx *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		ctx.JSON(status, dto.NewErrorResponse(status, fallback, err.Error()))
		return
	}

	details := ""
	var vErr *product.ValidationError
	if errors.As(err, &vErr) {
		details = vErr.Field
	}
	ctx.JSON(status, dto.NewErrorResponse(status, service.Message(err), details))
}

// badRequest responde 400 para corpo ou parâmetros inválidos
func badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
}

// actorFrom monta o ator a partir do usuário autenticado
func actorFrom(ctx *gin.Context) service.Actor {
	current := auth.GetCurrentUser(ctx)
	return service.Actor{TenantID: current.TenantID, UserID: current.ID}
}

// pagination lê page (a partir de 0 no frontend) e page_size da query
func pagination(ctx *gin.Context) dto.Pagination {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", strconv.Itoa(dto.DefaultPageSize)))
	return dto.PageFromClient(page, pageSize)
}

// clock é a fonte de hora dos controllers
type clock func() time.Time
