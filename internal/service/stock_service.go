package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
)

const notesStockTake = "Stock take adjustment"

// StockService aplica movimentações de estoque e a conferência de inventário
type StockService struct {
	products  product.Repository
	movements movement.Repository
	events    EventPublisher
	logger    logger.Logger
}

// NewStockService cria um novo serviço de movimentações
func NewStockService(products product.Repository, movements movement.Repository, events EventPublisher, log logger.Logger) *StockService {
	return &StockService{
		products:  products,
		movements: movements,
		events:    events,
		logger:    log,
	}
}

// Apply registra uma movimentação: lê a quantidade atual, calcula a nova,
// grava a quantidade e o histórico na mesma transação
func (s *StockService) Apply(ctx context.Context, actor Actor, productID string, t movement.Type, change int, notes string) (*movement.Movement, error) {
	if err := movement.CheckChange(t, change); err != nil {
		return nil, err
	}

	m, err := s.movements.Adjust(ctx, actor.TenantID, productID, func(before int) (*movement.Movement, error) {
		return movement.New(actor.TenantID, productID, t, before, change, strings.TrimSpace(notes), actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Movimentação registrada",
		"tenant_id", actor.TenantID,
		"product_id", productID,
		"movement_type", t,
		"quantity_change", change,
		"quantity_after", m.QuantityAfter,
	)
	publishMovement(ctx, s.events, s.logger, m)
	return m, nil
}

// StockIn soma quantity unidades ao produto
func (s *StockService) StockIn(ctx context.Context, actor Actor, productID string, quantity int, notes string) (*movement.Movement, error) {
	return s.Apply(ctx, actor, productID, movement.TypeStockIn, quantity, notes)
}

// StockOut retira quantity unidades do produto
func (s *StockService) StockOut(ctx context.Context, actor Actor, productID string, quantity int, notes string) (*movement.Movement, error) {
	return s.Apply(ctx, actor, productID, movement.TypeStockOut, -quantity, notes)
}

// Revert aplica a movimentação inversa de uma movimentação registrada
func (s *StockService) Revert(ctx context.Context, actor Actor, movementID string) (*movement.Movement, error) {
	original, err := s.movements.FindByID(ctx, actor.TenantID, movementID)
	if err != nil {
		return nil, err
	}
	t, change := original.Inverse()
	return s.Apply(ctx, actor, original.ProductID, t, change, "Undo "+original.ID)
}

// History lista as movimentações mais recentes, opcionalmente de um produto
func (s *StockService) History(ctx context.Context, tenantID, productID string, limit int) ([]*movement.Movement, error) {
	return s.movements.List(ctx, tenantID, movement.ListFilter{ProductID: productID, Limit: limit})
}

// StockTakeItem é a linha de uma conferência: a quantidade do sistema no início
// da sessão e a quantidade contada, quando informada
type StockTakeItem struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	Category        string `json:"category"`
	SystemQuantity  int    `json:"system_quantity"`
	CountedQuantity *int   `json:"counted_quantity"`
}

// Discrepancy devolve contado menos sistema; false quando não há contagem
func (i StockTakeItem) Discrepancy() (int, bool) {
	if i.CountedQuantity == nil {
		return 0, false
	}
	return *i.CountedQuantity - i.SystemQuantity, true
}

// ItemFailure descreve um item que não pôde ser conciliado
type ItemFailure struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
}

// ReconcileResult resume a conciliação de uma conferência
type ReconcileResult struct {
	Adjusted int           `json:"adjusted"`
	Skipped  int           `json:"skipped"`
	Failed   []ItemFailure `json:"failed"`
}

// StartStockTake devolve o retrato do estoque de todos os produtos do tenant
func (s *StockService) StartStockTake(ctx context.Context, tenantID string) ([]StockTakeItem, error) {
	products, err := s.products.List(ctx, tenantID, product.ListFilter{Limit: product.MaxListLimit})
	if err != nil {
		return nil, err
	}
	items := make([]StockTakeItem, 0, len(products))
	for _, p := range products {
		items = append(items, StockTakeItem{
			ProductID:      p.ID,
			Name:           p.Name,
			SKU:            p.SKU,
			Category:       p.Category,
			SystemQuantity: p.Quantity,
		})
	}
	return items, nil
}

// Reconcile grava a quantidade contada de cada item com divergência. Itens sem
// contagem ou sem divergência são ignorados; falhas não interrompem os demais.
// A quantidade contada prevalece sobre alterações feitas durante a contagem.
func (s *StockService) Reconcile(ctx context.Context, actor Actor, items []StockTakeItem, notes string) (*ReconcileResult, error) {
	text := notesStockTake
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		text = fmt.Sprintf("%s: %s", notesStockTake, trimmed)
	}

	result := &ReconcileResult{Failed: []ItemFailure{}}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		diff, counted := item.Discrepancy()
		if !counted || diff == 0 {
			result.Skipped++
			continue
		}
		if *item.CountedQuantity < 0 || *item.CountedQuantity > product.MaxQuantity {
			result.Failed = append(result.Failed, ItemFailure{
				ProductID: item.ProductID,
				Name:      item.Name,
				Message:   fmt.Sprintf("quantidade deve estar entre 0 e %d", product.MaxQuantity),
			})
			continue
		}

		target := *item.CountedQuantity
		m, err := s.movements.Adjust(ctx, actor.TenantID, item.ProductID, func(before int) (*movement.Movement, error) {
			if before == target {
				return nil, nil
			}
			return movement.New(actor.TenantID, item.ProductID, movement.TypeStockTake, before, target-before, text, actor.UserID)
		})
		if err != nil {
			s.logger.Warn("Falha ao conciliar item", "product_id", item.ProductID, "error", err)
			result.Failed = append(result.Failed, ItemFailure{ProductID: item.ProductID, Name: item.Name, Message: Message(err)})
			continue
		}
		if m == nil {
			result.Skipped++
			continue
		}
		result.Adjusted++
		publishMovement(ctx, s.events, s.logger, m)
	}

	s.logger.Info("Conferência de estoque concluída",
		"tenant_id", actor.TenantID,
		"adjusted", result.Adjusted,
		"skipped", result.Skipped,
		"failed", len(result.Failed),
	)
	return result, nil
}
