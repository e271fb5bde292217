package controller

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/auth"
)

// heartbeatInterval mantém a conexão SSE viva atrás de proxies
const heartbeatInterval = 30 * time.Second

// AlertService entrega e guarda os alertas de estoque do usuário
type AlertService interface {
	Watch(ctx context.Context, actor service.Actor) <-chan notification.Notification
	List(userID string) []notification.Notification
	UnreadCount(userID string) int
	MarkAsRead(userID, id string) error
	MarkAllAsRead(userID string)
	Clear(userID string)
}

// NotificationController gerencia os alertas em tempo real do usuário
type NotificationController struct {
	alerts    AlertService
	heartbeat time.Duration
}

// NewNotificationController cria uma nova instância de NotificationController
func NewNotificationController(alerts AlertService) *NotificationController {
	return &NotificationController{alerts: alerts, heartbeat: heartbeatInterval}
}

// List lista as notificações do usuário, mais recentes primeiro
// @Summary Lista as notificações
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	userID := auth.GetCurrentUser(ctx).ID
	ctx.JSON(http.StatusOK, dto.ToNotificationListResponse(c.alerts.List(userID), c.alerts.UnreadCount(userID)))
}

// MarkAsRead marca uma notificação como lida
// @Summary Marca como lida
// @Tags notifications
// @Security BearerAuth
// @Param id path string true "ID da notificação"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (c *NotificationController) MarkAsRead(ctx *gin.Context) {
	if err := c.alerts.MarkAsRead(auth.GetCurrentUser(ctx).ID, ctx.Param("id")); err != nil {
		respondError(ctx, err, "Erro ao marcar notificação")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// MarkAllAsRead marca todas as notificações como lidas
// @Summary Marca todas como lidas
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllAsRead(ctx *gin.Context) {
	c.alerts.MarkAllAsRead(auth.GetCurrentUser(ctx).ID)
	ctx.Status(http.StatusNoContent)
}

// Clear remove todas as notificações do usuário
// @Summary Limpa as notificações
// @Tags notifications
// @Security BearerAuth
// @Success 204
// @Router /notifications [delete]
func (c *NotificationController) Clear(ctx *gin.Context) {
	c.alerts.Clear(auth.GetCurrentUser(ctx).ID)
	ctx.Status(http.StatusNoContent)
}

// Stream envia os novos alertas por Server-Sent Events até o cliente desconectar
// @Summary Fluxo de alertas
// @Description Conexão SSE; o token pode ir no parâmetro access_token
// @Tags notifications
// @Produce text/event-stream
// @Security BearerAuth
// @Param access_token query string false "Token JWT"
// @Success 200 {object} dto.NotificationResponse
// @Router /notifications/stream [get]
func (c *NotificationController) Stream(ctx *gin.Context) {
	alerts := c.alerts.Watch(ctx.Request.Context(), actorFrom(ctx))

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")

	ticker := time.NewTicker(c.heartbeat)
	defer ticker.Stop()

	ctx.Stream(func(w io.Writer) bool {
		select {
		case n, ok := <-alerts:
			if !ok {
				return false
			}
			ctx.SSEvent("notification", dto.ToNotificationResponse(n))
			return true
		case <-ticker.C:
			ctx.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

// Pinger verifica a disponibilidade de uma dependência
type Pinger func(ctx context.Context) error

// HealthController informa o estado da API e das suas dependências
type HealthController struct {
	checks map[string]Pinger
}

// NewHealthController cria o controller com as verificações nomeadas
func NewHealthController(checks map[string]Pinger) *HealthController {
	return &HealthController{checks: checks}
}

// Health verifica as dependências da API
// @Summary Verifica a saúde da API
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Services: make(map[string]string, len(c.checks))}
	status := http.StatusOK
	for name, ping := range c.checks {
		if err := ping(checkCtx); err != nil {
			resp.Services[name] = "down: " + err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Services[name] = "up"
	}
	ctx.JSON(status, resp)
}
