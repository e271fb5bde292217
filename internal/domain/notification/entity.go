package notification

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Kind representa o tipo de alerta
type Kind string

const (
	KindLowStock     Kind = "low_stock"
	KindOutOfStock   Kind = "out_of_stock"
	KindExpired      Kind = "expired"
	KindExpiringSoon Kind = "expiring_soon"
)

// MaxPerUser é a quantidade máxima de notificações guardadas por usuário
const MaxPerUser = 50

// ErrNotificationNotFound indica que a notificação não existe para o usuário
var ErrNotificationNotFound = errors.New("notificação não encontrada")

// Notification é um alerta gerado a partir das mudanças no catálogo
type Notification struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	ProductID string    `json:"product_id"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// New cria uma notificação não lida
func New(tenantID string, kind Kind, title, message, productID string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Kind:      kind,
		Title:     title,
		Message:   message,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
}
