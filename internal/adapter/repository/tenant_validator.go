package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/erp-estoque/internal/domain/tenant"
	pkgtenant "github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// TenantValidator implementa pkgtenant.Validator sobre o repositório de tenants
type TenantValidator struct {
	repository tenant.Repository
}

// NewTenantValidator cria uma nova instância de TenantValidator
func NewTenantValidator(repository tenant.Repository) pkgtenant.Validator {
	return &TenantValidator{
		repository: repository,
	}
}

// ValidateTenant verifica se um tenant existe e está ativo
func (v *TenantValidator) ValidateTenant(ctx context.Context, tenantID string) (bool, error) {
	t, err := v.repository.FindByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return false, nil
		}
		return false, err
	}

	return t.IsActive(), nil
}
