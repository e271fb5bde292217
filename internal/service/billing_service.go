package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
	"github.com/hugohenrick/erp-estoque/internal/domain/user"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
)

// Usage é o consumo atual do tenant frente aos limites do plano
type Usage struct {
	Products             int                `json:"products"`
	TeamMembers          int                `json:"team_members"`
	RemainingProducts    subscription.Limit `json:"remaining_products"`
	RemainingTeamMembers subscription.Limit `json:"remaining_team_members"`
}

// Overview é a visão completa da assinatura do tenant
type Overview struct {
	Subscription       *subscription.Subscription
	Info               subscription.Info
	Usage              Usage
	TrialDaysRemaining int
	IsTrialing         bool
	IsTrialExpired     bool
	IsActive           bool
}

// BillingService aplica os limites e recursos do plano de cada tenant
type BillingService struct {
	subscriptions subscription.Repository
	products      product.Repository
	users         user.Repository
	logger        logger.Logger
	now           Clock
}

// NewBillingService cria um novo serviço de assinaturas
func NewBillingService(subs subscription.Repository, products product.Repository, users user.Repository, log logger.Logger) *BillingService {
	return &BillingService{
		subscriptions: subs,
		products:      products,
		users:         users,
		logger:        log,
		now:           time.Now,
	}
}

// Current devolve a assinatura do tenant, criando o teste Starter na primeira consulta
func (s *BillingService) Current(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	sub, err := s.subscriptions.FindByTenant(ctx, tenantID)
	if err == nil {
		return sub, nil
	}
	if !errors.Is(err, subscription.ErrSubscriptionNotFound) {
		return nil, err
	}

	sub, err = s.subscriptions.Create(ctx, subscription.NewTrial(tenantID, s.now()))
	if err != nil {
		return nil, fmt.Errorf("falha ao criar assinatura de teste: %w", err)
	}
	s.logger.Info("Assinatura de teste criada", "tenant_id", tenantID, "plan", sub.Plan)
	return sub, nil
}

// Plan devolve o plano vigente do tenant
func (s *BillingService) Plan(ctx context.Context, tenantID string) (subscription.Plan, error) {
	sub, err := s.Current(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return sub.Plan, nil
}

// HasFeature informa se o plano do tenant libera o recurso
func (s *BillingService) HasFeature(ctx context.Context, tenantID string, f subscription.Feature) (bool, error) {
	plan, err := s.Plan(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return plan.HasFeature(f), nil
}

// CheckProductLimit devolve ErrProductLimitReached quando o plano não comporta mais um produto
func (s *BillingService) CheckProductLimit(ctx context.Context, tenantID string) error {
	plan, err := s.Plan(ctx, tenantID)
	if err != nil {
		return err
	}
	count, err := s.products.Count(ctx, tenantID, product.ListFilter{})
	if err != nil {
		return err
	}
	if !plan.CanAddProduct(count) {
		return subscription.ErrProductLimitReached
	}
	return nil
}

// CheckTeamLimit devolve ErrTeamLimitReached quando o plano não comporta mais um membro.
// A contagem inclui o administrador.
func (s *BillingService) CheckTeamLimit(ctx context.Context, tenantID string) error {
	plan, err := s.Plan(ctx, tenantID)
	if err != nil {
		return err
	}
	count, err := s.users.CountByTenant(ctx, tenantID)
	if err != nil {
		return err
	}
	if !plan.CanAddTeamMember(count) {
		return subscription.ErrTeamLimitReached
	}
	return nil
}

// Overview monta a visão da assinatura com uso e saldos
func (s *BillingService) Overview(ctx context.Context, tenantID string) (*Overview, error) {
	sub, err := s.Current(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Count(ctx, tenantID, product.ListFilter{})
	if err != nil {
		return nil, err
	}
	members, err := s.users.CountByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &Overview{
		Subscription: sub,
		Info:         subscription.InfoFor(sub.Plan),
		Usage: Usage{
			Products:             products,
			TeamMembers:          members,
			RemainingProducts:    sub.Plan.RemainingProducts(products),
			RemainingTeamMembers: sub.Plan.RemainingTeamMembers(members),
		},
		TrialDaysRemaining: sub.TrialDaysRemaining(now),
		IsTrialing:         sub.IsTrialing(),
		IsTrialExpired:     sub.IsTrialExpired(now),
		IsActive:           sub.IsActive(now),
	}, nil
}

// ChangePlan ativa o plano informado para o tenant
func (s *BillingService) ChangePlan(ctx context.Context, tenantID string, plan subscription.Plan) (*subscription.Subscription, error) {
	sub, err := s.Current(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if err := sub.ChangePlan(plan, s.now()); err != nil {
		return nil, err
	}
	if err := s.subscriptions.Update(ctx, sub); err != nil {
		return nil, err
	}
	s.logger.Info("Plano alterado", "tenant_id", tenantID, "plan", plan)
	return sub, nil
}
