package movement

import (
	"context"
	"errors"
)

// ErrMovementNotFound indica que a movimentação não existe no tenant
var ErrMovementNotFound = errors.New("movimentação não encontrada")

// DefaultListLimit é o número máximo de movimentações retornadas por listagem
const DefaultListLimit = 100

// BuildFunc monta a movimentação a partir da quantidade atual do produto.
// Devolver (nil, nil) deixa o produto inalterado.
type BuildFunc func(quantityBefore int) (*Movement, error)

// ListFilter define os filtros de listagem de movimentações
type ListFilter struct {
	ProductID string
	Limit     int
}

// Repository define a interface de persistência das movimentações
type Repository interface {
	// Adjust bloqueia o produto, monta a movimentação com build, grava a nova
	// quantidade e a movimentação numa única transação
	Adjust(ctx context.Context, tenantID, productID string, build BuildFunc) (*Movement, error)

	// FindByID busca uma movimentação do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Movement, error)
	// List lista as movimentações mais recentes do tenant
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Movement, error)
}
