package product

import (
	"context"
	"errors"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
)

// Erros do domínio de produtos
var (
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrDuplicateSKU    = errors.New("já existe um produto com este SKU")
)

// MaxListLimit é o maior número de produtos devolvido numa consulta (exportação)
const MaxListLimit = 500

// ListFilter define os filtros de listagem de produtos
type ListFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// Repository define a interface de persistência de produtos
type Repository interface {
	// Create grava um novo produto e, quando informada, a movimentação inicial na mesma transação
	Create(ctx context.Context, p *Product, initial *movement.Movement) error

	// FindByID busca um produto do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Product, error)

	// FindByBarcode busca um produto do tenant pelo código de barras exato
	FindByBarcode(ctx context.Context, tenantID, barcode string) (*Product, error)

	// List lista os produtos do tenant mais recentes primeiro
	List(ctx context.Context, tenantID string, filter ListFilter) ([]*Product, error)

	// Count conta os produtos do tenant que atendem ao filtro
	Count(ctx context.Context, tenantID string, filter ListFilter) (int, error)

	// Update atualiza os dados cadastrais (a quantidade não é alterada)
	Update(ctx context.Context, p *Product) error

	// Delete remove um produto do tenant
	Delete(ctx context.Context, tenantID, id string) error
}
