package subscription

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status representa a situação de uma assinatura
type Status string

const (
	StatusActive   Status = "active"
	StatusTrialing Status = "trialing"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
)

// Durações do ciclo de vida da assinatura
const (
	TrialDays  = 14
	PeriodDays = 30
)

// Erros do domínio de assinaturas
var (
	ErrSubscriptionNotFound = errors.New("assinatura não encontrada")
	ErrInvalidPlan          = errors.New("plano inválido")
	ErrProductLimitReached  = errors.New("limite de produtos do plano atingido")
	ErrTeamLimitReached     = errors.New("limite de membros da equipe do plano atingido")
	ErrFeatureUnavailable   = errors.New("recurso não disponível no plano atual")
)

// Subscription é a assinatura de um tenant (uma por tenant)
type Subscription struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenant_id"`
	Plan               Plan       `json:"plan"`
	Status             Status     `json:"status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	CurrentPeriodStart *time.Time `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time `json:"current_period_end"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewTrial cria a assinatura padrão: Starter em período de teste de 14 dias
func NewTrial(tenantID string, now time.Time) *Subscription {
	trialEnds := now.AddDate(0, 0, TrialDays)
	return &Subscription{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Plan:        PlanStarter,
		Status:      StatusTrialing,
		TrialEndsAt: &trialEnds,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ChangePlan ativa o plano informado e inicia um novo período de 30 dias
func (s *Subscription) ChangePlan(plan Plan, now time.Time) error {
	if !plan.Valid() {
		return ErrInvalidPlan
	}
	end := now.AddDate(0, 0, PeriodDays)
	start := now
	s.Plan = plan
	s.Status = StatusActive
	s.CurrentPeriodStart = &start
	s.CurrentPeriodEnd = &end
	s.UpdatedAt = now
	return nil
}

// IsTrialing informa se a assinatura está em período de teste
func (s *Subscription) IsTrialing() bool {
	return s.Status == StatusTrialing
}

// TrialDaysRemaining retorna os dias inteiros restantes do teste, nunca negativo
func (s *Subscription) TrialDaysRemaining(now time.Time) int {
	if s.TrialEndsAt == nil {
		return 0
	}
	days := int(s.TrialEndsAt.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// IsTrialExpired informa se o teste terminou
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	return s.IsTrialing() && s.TrialDaysRemaining(now) <= 0
}

// IsActive informa se a assinatura libera o uso do plano
func (s *Subscription) IsActive(now time.Time) bool {
	return s.Status == StatusActive || (s.IsTrialing() && !s.IsTrialExpired(now))
}
