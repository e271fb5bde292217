package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/notification"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/pkg/cooldown"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/hugohenrick/erp-estoque/pkg/realtime"
)

// ProductsTable é a tabela observada pelos alertas
const ProductsTable = "products"

// FeatureChecker consulta se o plano do tenant libera um recurso
type FeatureChecker interface {
	HasFeature(ctx context.Context, tenantID string, f subscription.Feature) (bool, error)
}

// productRow é a linha de produto emitida pelo gatilho de mudanças
type productRow struct {
	ID         string  `json:"id"`
	TenantID   string  `json:"tenant_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	MinStock   int     `json:"min_stock"`
	ExpiryDate *string `json:"expiry_date"`
}

func decodeRow(raw json.RawMessage) (*productRow, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var row productRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("falha ao decodificar produto: %w", err)
	}
	return &row, nil
}

// Evaluate aplica as regras de alerta a uma mudança de produto
func Evaluate(e realtime.Event, now time.Time) ([]*notification.Notification, error) {
	current, err := decodeRow(e.New)
	if err != nil || current == nil {
		return nil, err
	}
	previous, err := decodeRow(e.Old)
	if err != nil {
		return nil, err
	}

	var alerts []*notification.Notification
	add := func(kind notification.Kind, title, message string) {
		alerts = append(alerts, notification.New(e.TenantID, kind, title, message, current.ID))
	}

	if current.Quantity > 0 && current.Quantity <= current.MinStock {
		if previous == nil || previous.Quantity > previous.MinStock {
			add(notification.KindLowStock, "Estoque baixo",
				fmt.Sprintf("%s está acabando (%d restantes, mínimo: %d)", current.Name, current.Quantity, current.MinStock))
		}
	}

	if current.Quantity == 0 && (previous == nil || previous.Quantity > 0) {
		add(notification.KindOutOfStock, "Sem estoque", fmt.Sprintf("%s está sem estoque!", current.Name))
	}

	if e.Type == realtime.EventInsert && current.ExpiryDate != nil {
		expiry, err := product.ParseDate(firstDate(*current.ExpiryDate))
		if err == nil && expiry != nil {
			days, _ := product.DaysUntilExpiry(expiry, now)
			switch {
			case days <= 0:
				add(notification.KindExpired, "Produto vencido", fmt.Sprintf("%s já está vencido", current.Name))
			case days <= product.ExpiringSoonDays:
				unit := "dias"
				if days == 1 {
					unit = "dia"
				}
				add(notification.KindExpiringSoon, "Vencendo em breve", fmt.Sprintf("%s vence em %d %s", current.Name, days, unit))
			}
		}
	}

	return alerts, nil
}

// firstDate corta o horário de valores como 2024-05-01T00:00:00
func firstDate(value string) string {
	if len(value) > len(product.DateLayout) {
		return value[:len(product.DateLayout)]
	}
	return value
}

// AlertService transforma as mudanças do catálogo em notificações por usuário
type AlertService struct {
	broker   *realtime.Broker
	limiter  cooldown.Limiter
	store    notification.Store
	features FeatureChecker
	logger   logger.Logger
	buffer   int
	now      Clock
}

// NewAlertService cria um novo serviço de alertas
func NewAlertService(broker *realtime.Broker, limiter cooldown.Limiter, store notification.Store, features FeatureChecker, log logger.Logger, buffer int) *AlertService {
	return &AlertService{
		broker:   broker,
		limiter:  limiter,
		store:    store,
		features: features,
		logger:   log,
		buffer:   buffer,
		now:      time.Now,
	}
}

// Watch assina as mudanças de produtos do tenant em nome do usuário. Cada alerta
// é gravado no store e enviado no canal devolvido, que é fechado junto com a
// assinatura quando ctx termina.
func (s *AlertService) Watch(ctx context.Context, actor Actor) <-chan notification.Notification {
	sub := s.broker.Subscribe(actor.TenantID, ProductsTable, s.buffer)
	out := make(chan notification.Notification, s.buffer)

	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-sub.Events():
				if !ok {
					return
				}
				for _, n := range s.Handle(ctx, actor, e) {
					select {
					case out <- n:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

// Handle processa um evento para o usuário e devolve as notificações geradas
func (s *AlertService) Handle(ctx context.Context, actor Actor, e realtime.Event) []notification.Notification {
	row, err := decodeRow(e.New)
	if err != nil {
		s.logger.Warn("Evento de produto inválido", "tenant_id", e.TenantID, "error", err)
		return nil
	}
	if row == nil {
		return nil
	}

	key := fmt.Sprintf("%s:%s:%s", actor.TenantID, actor.UserID, row.ID)
	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		s.logger.Warn("Falha ao consultar cooldown de alerta", "key", key, "error", err)
		allowed = true
	}
	if !allowed {
		return nil
	}

	alerts, err := Evaluate(e, s.now())
	if err != nil {
		s.logger.Warn("Falha ao avaliar alertas", "product_id", row.ID, "error", err)
		return nil
	}
	if len(alerts) == 0 {
		return nil
	}

	enabled, err := s.features.HasFeature(ctx, actor.TenantID, subscription.FeatureStockAlerts)
	if err != nil {
		s.logger.Warn("Falha ao consultar plano para alertas", "tenant_id", actor.TenantID, "error", err)
		return nil
	}
	if !enabled {
		return nil
	}

	delivered := make([]notification.Notification, 0, len(alerts))
	for _, n := range alerts {
		s.store.Add(actor.UserID, n)
		delivered = append(delivered, *n)
	}
	return delivered
}

// List devolve as notificações do usuário
func (s *AlertService) List(userID string) []notification.Notification {
	return s.store.List(userID)
}

// UnreadCount conta as notificações não lidas do usuário
func (s *AlertService) UnreadCount(userID string) int {
	return s.store.UnreadCount(userID)
}

// MarkAsRead marca uma notificação como lida
func (s *AlertService) MarkAsRead(userID, id string) error {
	return s.store.MarkAsRead(userID, id)
}

// MarkAllAsRead marca todas as notificações do usuário como lidas
func (s *AlertService) MarkAllAsRead(userID string) {
	s.store.MarkAllAsRead(userID)
}

// Clear remove as notificações do usuário
func (s *AlertService) Clear(userID string) {
	s.store.Clear(userID)
}
