package movement

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type representa o tipo de movimentação de estoque
type Type string

const (
	TypeStockIn    Type = "stock_in"
	TypeStockOut   Type = "stock_out"
	TypeAdjustment Type = "adjustment"
	TypeStockTake  Type = "stock_take"
	TypeInitial    Type = "initial"
)

// Erros de regra de negócio das movimentações
var (
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrInvalidType       = errors.New("tipo de movimentação inválido")
	ErrInvalidChange     = errors.New("variação de quantidade incompatível com o tipo de movimentação")
)

// Movement é o registro imutável de uma alteração de quantidade
type Movement struct {
	ID             string    `json:"id"`
	TenantID       string    `json:"tenant_id"`
	ProductID      string    `json:"product_id"`
	Type           Type      `json:"movement_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Notes          *string   `json:"notes"`
	CreatedBy      *string   `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// Valid informa se o tipo é conhecido
func (t Type) Valid() bool {
	switch t {
	case TypeStockIn, TypeStockOut, TypeAdjustment, TypeStockTake, TypeInitial:
		return true
	}
	return false
}

// CheckChange valida o sinal da variação para o tipo informado
func CheckChange(t Type, change int) error {
	if !t.Valid() {
		return ErrInvalidType
	}
	switch t {
	case TypeStockIn:
		if change <= 0 {
			return ErrInvalidChange
		}
	case TypeStockOut:
		if change >= 0 {
			return ErrInvalidChange
		}
	case TypeInitial:
		if change < 0 {
			return ErrInvalidChange
		}
	default:
		if change == 0 {
			return ErrInvalidChange
		}
	}
	return nil
}

// Apply calcula a quantidade resultante e rejeita resultados negativos
func Apply(before, change int) (int, error) {
	after := before + change
	if after < 0 {
		return before, ErrInsufficientStock
	}
	return after, nil
}

// New monta uma movimentação a partir da quantidade atual, garantindo
// QuantityAfter = QuantityBefore + QuantityChange
func New(tenantID, productID string, t Type, before, change int, notes, createdBy string) (*Movement, error) {
	if err := CheckChange(t, change); err != nil {
		return nil, err
	}
	after, err := Apply(before, change)
	if err != nil {
		return nil, err
	}

	m := &Movement{
		ID:             uuid.New().String(),
		TenantID:       tenantID,
		ProductID:      productID,
		Type:           t,
		QuantityChange: change,
		QuantityBefore: before,
		QuantityAfter:  after,
		CreatedAt:      time.Now(),
	}
	if notes != "" {
		m.Notes = &notes
	}
	if createdBy != "" {
		m.CreatedBy = &createdBy
	}
	return m, nil
}

// Inverse devolve o tipo e a variação que desfazem esta movimentação
func (m *Movement) Inverse() (Type, int) {
	change := -m.QuantityChange
	switch {
	case m.Type == TypeStockIn:
		return TypeStockOut, change
	case m.Type == TypeStockOut:
		return TypeStockIn, change
	default:
		return TypeAdjustment, change
	}
}
