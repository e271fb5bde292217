package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
)

// SubscriptionRepository implementa a interface subscription.Repository usando PostgreSQL
type SubscriptionRepository struct {
	db database.DB
}

// NewSubscriptionRepository cria uma nova instância de SubscriptionRepository
func NewSubscriptionRepository(db database.DB) subscription.Repository {
	return &SubscriptionRepository{db: db}
}

const subscriptionColumns = `id, tenant_id, plan, status, trial_ends_at,
	current_period_start, current_period_end, created_at, updated_at`

func scanSubscription(row rowScanner) (*subscription.Subscription, error) {
	s := &subscription.Subscription{}
	var plan, status string
	err := row.Scan(&s.ID, &s.TenantID, &plan, &status, &s.TrialEndsAt,
		&s.CurrentPeriodStart, &s.CurrentPeriodEnd, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.Plan = subscription.Plan(plan)
	s.Status = subscription.Status(status)
	return s, nil
}

// FindByTenant implementa subscription.Repository.FindByTenant
func (r *SubscriptionRepository) FindByTenant(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRow(ctx,
		"SELECT "+subscriptionColumns+" FROM subscriptions WHERE tenant_id = $1", tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, subscription.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("falha ao buscar assinatura: %w", err)
	}
	return s, nil
}

// Create implementa subscription.Repository.Create.
// Quando outra requisição criou a assinatura antes, a existente é devolvida.
func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error) {
	created, err := scanSubscription(r.db.QueryRow(ctx, `
		INSERT INTO subscriptions (`+subscriptionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id) DO NOTHING
		RETURNING `+subscriptionColumns,
		s.ID, s.TenantID, string(s.Plan), string(s.Status), s.TrialEndsAt,
		s.CurrentPeriodStart, s.CurrentPeriodEnd, s.CreatedAt, s.UpdatedAt,
	))
	if err == nil {
		return created, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return r.FindByTenant(ctx, s.TenantID)
	}
	return nil, fmt.Errorf("falha ao criar assinatura: %w", err)
}

// Update implementa subscription.Repository.Update
func (r *SubscriptionRepository) Update(ctx context.Context, s *subscription.Subscription) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE subscriptions
		SET plan = $1, status = $2, trial_ends_at = $3, current_period_start = $4,
		    current_period_end = $5, updated_at = $6
		WHERE tenant_id = $7`,
		string(s.Plan), string(s.Status), s.TrialEndsAt, s.CurrentPeriodStart,
		s.CurrentPeriodEnd, s.UpdatedAt, s.TenantID,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar assinatura: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscription.ErrSubscriptionNotFound
	}
	return nil
}
