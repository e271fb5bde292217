package dto

import (
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
)

// MovementRequest representa uma movimentação de estoque a aplicar
type MovementRequest struct {
	MovementType   string `json:"movement_type" binding:"required,oneof=stock_in stock_out adjustment"`
	QuantityChange int    `json:"quantity_change" binding:"required"`
	Notes          string `json:"notes" binding:"max=500"`
}

// MovementResponse representa uma movimentação registrada
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Notes          *string   `json:"notes"`
	CreatedBy      *string   `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementListResponse representa o histórico de movimentações
type MovementListResponse struct {
	Data []MovementResponse `json:"data"`
}

// ToMovementResponse converte uma movimentação do domínio para DTO de resposta
func ToMovementResponse(m *movement.Movement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		MovementType:   string(m.Type),
		QuantityChange: m.QuantityChange,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Notes:          m.Notes,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// ToMovementListResponse converte uma lista de movimentações
func ToMovementListResponse(movements []*movement.Movement) MovementListResponse {
	data := make([]MovementResponse, len(movements))
	for i, m := range movements {
		data[i] = ToMovementResponse(m)
	}
	return MovementListResponse{Data: data}
}

// StockTakeItem é uma linha da conferência de estoque
type StockTakeItem struct {
	ProductID       string `json:"product_id" binding:"required"`
	Name            string `json:"name"`
	SKU             string `json:"sku"`
	Category        string `json:"category"`
	SystemQuantity  int    `json:"system_quantity" binding:"min=0"`
	CountedQuantity *int   `json:"counted_quantity" binding:"omitempty,min=0,max=999999"`
}

// StockTakeResponse é o retrato do estoque no início da conferência
type StockTakeResponse struct {
	Items     []StockTakeItem `json:"items"`
	StartedAt time.Time       `json:"started_at"`
}

// ReconcileRequest envia as contagens para conciliação
type ReconcileRequest struct {
	Items []StockTakeItem `json:"items" binding:"required,dive"`
	Notes string          `json:"notes" binding:"max=500"`
}

// ReconcileFailure descreve um item que não pôde ser conciliado
type ReconcileFailure struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Message   string `json:"message"`
}

// ReconcileResponse resume o resultado da conciliação
type ReconcileResponse struct {
	Adjusted int                `json:"adjusted"`
	Skipped  int                `json:"skipped"`
	Failed   []ReconcileFailure `json:"failed"`
}
