package dto

import (
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/subscription"
)

// ChangePlanRequest representa a troca de plano
type ChangePlanRequest struct {
	Plan string `json:"plan" binding:"required,oneof=starter professional enterprise"`
}

// LimitsResponse representa os limites de um plano; -1 significa ilimitado
type LimitsResponse struct {
	MaxProducts    int             `json:"max_products"`
	MaxTeamMembers int             `json:"max_team_members"`
	Features       map[string]bool `json:"features"`
}

// PlanResponse representa um plano da tabela de preços
type PlanResponse struct {
	Plan        string         `json:"plan"`
	DisplayName string         `json:"display_name"`
	Price       string         `json:"price"`
	Currency    string         `json:"currency"`
	PriceLabel  string         `json:"price_label"`
	Limits      LimitsResponse `json:"limits"`
}

// UsageResponse representa o consumo do tenant frente aos limites
type UsageResponse struct {
	Products             int `json:"products"`
	TeamMembers          int `json:"team_members"`
	RemainingProducts    int `json:"remaining_products"`
	RemainingTeamMembers int `json:"remaining_team_members"`
}

// SubscriptionResponse representa a assinatura do tenant com plano e uso
type SubscriptionResponse struct {
	ID                 string        `json:"id"`
	Plan               PlanResponse  `json:"plan"`
	Status             string        `json:"status"`
	TrialEndsAt        *time.Time    `json:"trial_ends_at"`
	CurrentPeriodStart *time.Time    `json:"current_period_start"`
	CurrentPeriodEnd   *time.Time    `json:"current_period_end"`
	Usage              UsageResponse `json:"usage"`
	TrialDaysRemaining int           `json:"trial_days_remaining"`
	IsTrialing         bool          `json:"is_trialing"`
	IsTrialExpired     bool          `json:"is_trial_expired"`
	IsActive           bool          `json:"is_active"`
}

// PlanListResponse lista os planos disponíveis
type PlanListResponse struct {
	Data []PlanResponse `json:"data"`
}

// ToPlanResponse converte a descrição de um plano para DTO de resposta
func ToPlanResponse(info subscription.Info) PlanResponse {
	features := make(map[string]bool, len(info.Limits.Features))
	for f, enabled := range info.Limits.Features {
		features[string(f)] = enabled
	}
	return PlanResponse{
		Plan:        string(info.Plan),
		DisplayName: info.DisplayName,
		Price:       info.Price.StringFixed(2),
		Currency:    info.Currency,
		PriceLabel:  info.PriceLabel,
		Limits: LimitsResponse{
			MaxProducts:    int(info.Limits.MaxProducts),
			MaxTeamMembers: int(info.Limits.MaxTeamMembers),
			Features:       features,
		},
	}
}

// ToPlanListResponse converte a tabela de planos
func ToPlanListResponse(infos []subscription.Info) PlanListResponse {
	data := make([]PlanResponse, len(infos))
	for i, info := range infos {
		data[i] = ToPlanResponse(info)
	}
	return PlanListResponse{Data: data}
}

// ToSubscriptionResponse converte a assinatura e seu plano; uso e estado do período
// são preenchidos por quem chama
func ToSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:                 s.ID,
		Plan:               ToPlanResponse(subscription.InfoFor(s.Plan)),
		Status:             string(s.Status),
		TrialEndsAt:        s.TrialEndsAt,
		CurrentPeriodStart: s.CurrentPeriodStart,
		CurrentPeriodEnd:   s.CurrentPeriodEnd,
		IsTrialing:         s.IsTrialing(),
	}
}
