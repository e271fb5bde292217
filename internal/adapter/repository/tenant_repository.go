package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-estoque/internal/domain/tenant"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// TenantRepository implementa a interface tenant.Repository
type TenantRepository struct {
	db database.DB
}

// NewTenantRepository cria uma nova instância de TenantRepository
func NewTenantRepository(db database.DB) tenant.Repository {
	return &TenantRepository{db: db}
}

// CreateWithOwner implementa tenant.Repository.CreateWithOwner
func (r *TenantRepository) CreateWithOwner(ctx context.Context, t *tenant.Tenant, owner *user.User) error {
	return database.Transaction(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			"INSERT INTO tenants (id, name, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
			t.ID, t.Name, string(t.Status), t.CreatedAt, t.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("falha ao inserir tenant: %w", err)
		}
		return insertUser(ctx, tx, owner)
	})
}

// FindByID implementa tenant.Repository.FindByID
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t := &tenant.Tenant{}
	var status string
	err := r.db.QueryRow(ctx,
		"SELECT id, name, status, created_at, updated_at FROM tenants WHERE id = $1", id,
	).Scan(&t.ID, &t.Name, &status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("falha ao buscar tenant: %w", err)
	}
	t.Status = tenant.Status(status)
	return t, nil
}
