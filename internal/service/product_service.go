package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/hugohenrick/erp-estoque/pkg/messaging"
	"github.com/hugohenrick/erp-estoque/pkg/sku"
)

// Notas gravadas nas movimentações geradas pelo cadastro
const (
	notesInitial    = "Initial stock"
	notesAdjustment = "Manual adjustment"
)

// ProductEvent é o corpo publicado nos eventos de catálogo
type ProductEvent struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// ProductService concentra as regras do catálogo de produtos
type ProductService struct {
	products  product.Repository
	movements movement.Repository
	billing   *BillingService
	skus      *sku.Generator
	events    EventPublisher
	logger    logger.Logger
}

// NewProductService cria um novo serviço de produtos
func NewProductService(products product.Repository, movements movement.Repository, billing *BillingService, events EventPublisher, log logger.Logger) *ProductService {
	return &ProductService{
		products:  products,
		movements: movements,
		billing:   billing,
		skus:      sku.NewGenerator(),
		events:    events,
		logger:    log,
	}
}

// Create cadastra um produto respeitando o limite do plano. Quantidades iniciais
// positivas geram uma movimentação do tipo initial.
func (s *ProductService) Create(ctx context.Context, actor Actor, attrs product.Attributes) (*product.Product, error) {
	attrs.Category = product.CanonicalCategory(attrs.Category)
	p, err := product.NewProduct(actor.TenantID, attrs)
	if err != nil {
		return nil, err
	}

	if err := s.billing.CheckProductLimit(ctx, actor.TenantID); err != nil {
		return nil, err
	}

	var initial *movement.Movement
	if p.Quantity > 0 {
		initial, err = movement.New(actor.TenantID, p.ID, movement.TypeInitial, 0, p.Quantity, notesInitial, actor.UserID)
		if err != nil {
			return nil, err
		}
	}

	if err := s.products.Create(ctx, p, initial); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.RoutingProductCreated, p)
	if initial != nil {
		s.publishMovement(ctx, initial)
	}
	return p, nil
}

// Get busca um produto do tenant
func (s *ProductService) Get(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return s.products.FindByID(ctx, tenantID, id)
}

// FindByBarcode busca um produto pelo código de barras exato
func (s *ProductService) FindByBarcode(ctx context.Context, tenantID, barcode string) (*product.Product, error) {
	return s.products.FindByBarcode(ctx, tenantID, strings.TrimSpace(barcode))
}

// List devolve uma página de produtos e o total que atende ao filtro
func (s *ProductService) List(ctx context.Context, tenantID string, filter product.ListFilter) ([]*product.Product, int, error) {
	products, err := s.products.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.products.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// All devolve todos os produtos do tenant até o limite de listagem
func (s *ProductService) All(ctx context.Context, tenantID string) ([]*product.Product, error) {
	return s.products.List(ctx, tenantID, product.ListFilter{Limit: product.MaxListLimit})
}

// Update altera os dados cadastrais; attrs.Quantity é ignorado. Uma quantidade
// informada e diferente da atual é registrada como movimentação de ajuste com a
// diferença; sem quantidade o estoque não é alterado.
func (s *ProductService) Update(ctx context.Context, actor Actor, id string, attrs product.Attributes, quantity *int) (*product.Product, error) {
	p, err := s.products.FindByID(ctx, actor.TenantID, id)
	if err != nil {
		return nil, err
	}

	if quantity != nil && (*quantity < 0 || *quantity > product.MaxQuantity) {
		return nil, &product.ValidationError{Field: "quantity", Message: fmt.Sprintf("quantidade deve estar entre 0 e %d", product.MaxQuantity)}
	}
	attrs.Category = product.CanonicalCategory(attrs.Category)
	if err := p.Update(attrs); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	if quantity == nil {
		return p, nil
	}
	target := *quantity
	m, err := s.movements.Adjust(ctx, actor.TenantID, p.ID, func(before int) (*movement.Movement, error) {
		if target == before {
			return nil, nil
		}
		return movement.New(actor.TenantID, p.ID, movement.TypeAdjustment, before, target-before, notesAdjustment, actor.UserID)
	})
	if err != nil {
		return nil, err
	}
	if m != nil {
		p.Quantity = m.QuantityAfter
		s.publishMovement(ctx, m)
	}
	return p, nil
}

// Delete remove um produto; o histórico de movimentações é mantido
func (s *ProductService) Delete(ctx context.Context, tenantID, id string) error {
	p, err := s.products.FindByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, tenantID, id); err != nil {
		return err
	}
	s.publish(ctx, messaging.RoutingProductDeleted, p)
	return nil
}

// SuggestSKU gera um SKU para a categoria
func (s *ProductService) SuggestSKU(category string) string {
	return s.skus.Generate(product.CanonicalCategory(category))
}

func (s *ProductService) publish(ctx context.Context, routingKey string, p *product.Product) {
	event := ProductEvent{ProductID: p.ID, SKU: p.SKU, Name: p.Name, Quantity: p.Quantity}
	if err := s.events.Publish(ctx, routingKey, p.TenantID, event); err != nil {
		s.logger.Warn("Falha ao publicar evento de produto", "routing_key", routingKey, "product_id", p.ID, "error", err)
	}
}

func (s *ProductService) publishMovement(ctx context.Context, m *movement.Movement) {
	publishMovement(ctx, s.events, s.logger, m)
}

func publishMovement(ctx context.Context, events EventPublisher, log logger.Logger, m *movement.Movement) {
	if err := events.Publish(ctx, messaging.RoutingStockMoved, m.TenantID, m); err != nil {
		log.Warn("Falha ao publicar movimentação", "movement_id", m.ID, "product_id", m.ProductID, "error", err)
	}
}
