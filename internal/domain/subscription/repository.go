package subscription

import "context"

// Repository define a interface de persistência das assinaturas
type Repository interface {
	// FindByTenant busca a assinatura do tenant
	FindByTenant(ctx context.Context, tenantID string) (*Subscription, error)

	// Create grava uma nova assinatura; em caso de corrida devolve a já existente
	Create(ctx context.Context, s *Subscription) (*Subscription, error)

	// Update atualiza plano, status e período
	Update(ctx context.Context, s *Subscription) error
}
