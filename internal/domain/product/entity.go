package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout é o formato usado para datas de validade (somente a data)
const DateLayout = "2006-01-02"

// Valores padrão aplicados na criação de produtos
const (
	DefaultCategory = "General"
	DefaultMinStock = 10
)

// Categories lista as categorias conhecidas, na ordem exibida ao usuário
var Categories = []string{
	"General",
	"Electronics",
	"Food & Beverage",
	"Clothing",
	"Health & Beauty",
	"Home & Garden",
	"Office Supplies",
	"Sports & Outdoors",
	"Toys & Games",
	"Other",
}

// Product representa um item do catálogo de um tenant
type Product struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	Name       string     `json:"name"`
	SKU        string     `json:"sku"`
	Barcode    *string    `json:"barcode"`
	Quantity   int        `json:"quantity"`
	MinStock   int        `json:"min_stock"`
	ExpiryDate *time.Time `json:"expiry_date"`
	Category   string     `json:"category"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Attributes agrupa os campos editáveis de um produto
type Attributes struct {
	Name       string
	SKU        string
	Barcode    *string
	Quantity   int
	MinStock   *int
	ExpiryDate *time.Time
	Category   string
}

// NewProduct cria um novo produto normalizado e validado
func NewProduct(tenantID string, attrs Attributes) (*Product, error) {
	now := time.Now()
	p := &Product{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		MinStock:  DefaultMinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.apply(attrs)
	p.Quantity = attrs.Quantity

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Update altera os dados cadastrais do produto. A quantidade não é alterada aqui:
// ela só muda através de movimentações de estoque. Sem MinStock o valor atual é mantido.
func (p *Product) Update(attrs Attributes) error {
	previous := *p
	p.apply(attrs)
	if err := p.Validate(); err != nil {
		*p = previous
		return err
	}
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Product) apply(attrs Attributes) {
	p.Name = SanitizeName(attrs.Name)
	p.SKU = strings.TrimSpace(attrs.SKU)
	p.Barcode = NormalizeBarcode(attrs.Barcode)
	p.ExpiryDate = TruncateDate(attrs.ExpiryDate)

	if attrs.MinStock != nil {
		p.MinStock = *attrs.MinStock
	}

	p.Category = strings.TrimSpace(attrs.Category)
	if p.Category == "" {
		p.Category = DefaultCategory
	}
}

// StockStatus retorna a classificação de estoque atual do produto
func (p *Product) StockStatus() StockStatus {
	return ClassifyStock(p.Quantity, p.MinStock)
}

// ExpiryStatus retorna a classificação de validade do produto na data informada
func (p *Product) ExpiryStatus(now time.Time) ExpiryStatus {
	return ClassifyExpiry(p.ExpiryDate, now)
}

// LabelValue retorna o valor impresso em etiquetas: o código de barras ou, na falta dele, o SKU
func (p *Product) LabelValue() string {
	if p.Barcode != nil && *p.Barcode != "" {
		return *p.Barcode
	}
	return p.SKU
}

// NormalizeBarcode remove espaços e converte valores vazios em nil
func NormalizeBarcode(barcode *string) *string {
	if barcode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*barcode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// TruncateDate descarta o horário, mantendo apenas a data do calendário em UTC
func TruncateDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ParseDate interpreta uma data no formato YYYY-MM-DD; valores vazios retornam nil
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, &ValidationError{Field: "expiry_date", Message: "data de validade inválida"}
	}
	return &t, nil
}

// FormatDate formata uma data opcional como YYYY-MM-DD
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// IsKnownCategory informa se o valor corresponde a uma das categorias conhecidas
func IsKnownCategory(category string) bool {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return true
		}
	}
	return false
}

// CanonicalCategory devolve o nome canônico de uma categoria conhecida, ignorando
// maiúsculas e espaços; categorias livres são retornadas sem alteração.
func CanonicalCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return trimmed
}
