package tenant

import (
	"context"

	"github.com/hugohenrick/erp-estoque/internal/domain/user"
)

// Repository define a interface para operações de repositório de tenants
type Repository interface {
	// CreateWithOwner cria o tenant e o seu administrador numa única transação
	CreateWithOwner(ctx context.Context, t *Tenant, owner *user.User) error

	// FindByID busca um tenant pelo ID
	FindByID(ctx context.Context, id string) (*Tenant, error)
}
