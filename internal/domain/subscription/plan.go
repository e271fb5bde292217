package subscription

import (
	"github.com/shopspring/decimal"
)

// Plan identifica um nível de assinatura
type Plan string

const (
	PlanStarter      Plan = "starter"
	PlanProfessional Plan = "professional"
	PlanEnterprise   Plan = "enterprise"
)

// Feature identifica um recurso liberado por plano
type Feature string

const (
	FeatureBarcodeScanning    Feature = "barcodeScanning"
	FeatureBasicAnalytics     Feature = "basicAnalytics"
	FeatureAdvancedAnalytics  Feature = "advancedAnalytics"
	FeatureStockAlerts        Feature = "stockAlerts"
	FeatureCSVImportExport    Feature = "csvImportExport"
	FeatureAPIAccess          Feature = "apiAccess"
	FeatureCustomIntegrations Feature = "customIntegrations"
	FeaturePrioritySupport    Feature = "prioritySupport"
	FeatureDedicatedSupport   Feature = "dedicatedSupport"
	FeatureSLAGuarantee       Feature = "slaGuarantee"
)

// AllFeatures lista os recursos na ordem de exibição
var AllFeatures = []Feature{
	FeatureBarcodeScanning,
	FeatureBasicAnalytics,
	FeatureAdvancedAnalytics,
	FeatureStockAlerts,
	FeatureCSVImportExport,
	FeatureAPIAccess,
	FeatureCustomIntegrations,
	FeaturePrioritySupport,
	FeatureDedicatedSupport,
	FeatureSLAGuarantee,
}

// Limit é um limite numérico; Unlimited representa ausência de limite
type Limit int

// Unlimited indica que não há limite
const Unlimited Limit = -1

// IsUnlimited informa se o limite é ilimitado
func (l Limit) IsUnlimited() bool {
	return l < 0
}

// Limits reúne os limites e recursos de um plano
type Limits struct {
	MaxProducts    Limit
	MaxTeamMembers Limit
	Features       map[Feature]bool
}

// Info descreve um plano para exibição
type Info struct {
	Plan        Plan
	DisplayName string
	Price       decimal.Decimal
	Currency    string
	PriceLabel  string
	Limits      Limits
}

func features(enabled ...Feature) map[Feature]bool {
	m := make(map[Feature]bool, len(AllFeatures))
	for _, f := range AllFeatures {
		m[f] = false
	}
	for _, f := range enabled {
		m[f] = true
	}
	return m
}

var plans = map[Plan]Info{
	PlanStarter: {
		Plan:        PlanStarter,
		DisplayName: "Starter",
		Price:       decimal.Zero,
		Currency:    "INR",
		PriceLabel:  "Free",
		Limits: Limits{
			MaxProducts:    100,
			MaxTeamMembers: 1,
			Features:       features(FeatureBarcodeScanning, FeatureBasicAnalytics),
		},
	},
	PlanProfessional: {
		Plan:        PlanProfessional,
		DisplayName: "Professional",
		Price:       decimal.NewFromInt(1599),
		Currency:    "INR",
		PriceLabel:  "₹1,599/mo",
		Limits: Limits{
			MaxProducts:    Unlimited,
			MaxTeamMembers: 5,
			Features: features(
				FeatureBarcodeScanning,
				FeatureBasicAnalytics,
				FeatureAdvancedAnalytics,
				FeatureStockAlerts,
				FeatureCSVImportExport,
				FeaturePrioritySupport,
			),
		},
	},
	PlanEnterprise: {
		Plan:        PlanEnterprise,
		DisplayName: "Enterprise",
		Price:       decimal.Zero,
		Currency:    "INR",
		PriceLabel:  "Custom",
		Limits: Limits{
			MaxProducts:    Unlimited,
			MaxTeamMembers: Unlimited,
			Features:       features(AllFeatures...),
		},
	},
}

// Valid informa se o plano é conhecido
func (p Plan) Valid() bool {
	_, ok := plans[p]
	return ok
}

// Plans retorna a tabela de planos em ordem crescente
func Plans() []Info {
	return []Info{plans[PlanStarter], plans[PlanProfessional], plans[PlanEnterprise]}
}

// InfoFor retorna a descrição do plano; planos desconhecidos caem no Starter
func InfoFor(p Plan) Info {
	if info, ok := plans[p]; ok {
		return info
	}
	return plans[PlanStarter]
}

// LimitsFor retorna os limites do plano
func LimitsFor(p Plan) Limits {
	return InfoFor(p).Limits
}

// CanAddProduct informa se ainda cabe um produto com count produtos cadastrados
func (p Plan) CanAddProduct(count int) bool {
	return within(count, LimitsFor(p).MaxProducts)
}

// CanAddTeamMember informa se ainda cabe um membro com count membros na equipe
func (p Plan) CanAddTeamMember(count int) bool {
	return within(count, LimitsFor(p).MaxTeamMembers)
}

// HasFeature informa se o plano libera o recurso
func (p Plan) HasFeature(f Feature) bool {
	return LimitsFor(p).Features[f]
}

// RemainingProducts retorna quantos produtos ainda podem ser cadastrados
func (p Plan) RemainingProducts(count int) Limit {
	return Remaining(count, LimitsFor(p).MaxProducts)
}

// RemainingTeamMembers retorna quantos membros ainda podem ser adicionados
func (p Plan) RemainingTeamMembers(count int) Limit {
	return Remaining(count, LimitsFor(p).MaxTeamMembers)
}

// Remaining calcula o saldo de um limite, nunca negativo
func Remaining(count int, max Limit) Limit {
	if max.IsUnlimited() {
		return Unlimited
	}
	left := int(max) - count
	if left < 0 {
		left = 0
	}
	return Limit(left)
}

func within(count int, max Limit) bool {
	return max.IsUnlimited() || count < int(max)
}
