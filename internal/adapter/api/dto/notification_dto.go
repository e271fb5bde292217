package dto

import (
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
)

// NotificationResponse representa um alerta entregue ao usuário
type NotificationResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ProductID string    `json:"product_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse lista os alertas do usuário, mais recentes primeiro
type NotificationListResponse struct {
	Data        []NotificationResponse `json:"data"`
	UnreadCount int                    `json:"unread_count"`
}

// ToNotificationResponse converte uma notificação do domínio
func ToNotificationResponse(n notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Kind:      string(n.Kind),
		Title:     n.Title,
		Message:   n.Message,
		ProductID: n.ProductID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// ToNotificationListResponse converte a lista de notificações
func ToNotificationListResponse(items []notification.Notification, unread int) NotificationListResponse {
	data := make([]NotificationResponse, len(items))
	for i, n := range items {
		data[i] = ToNotificationResponse(n)
	}
	return NotificationListResponse{Data: data, UnreadCount: unread}
}

// HealthResponse representa o estado das dependências da API
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}
