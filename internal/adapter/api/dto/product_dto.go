package dto

import (
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// ProductRequest representa os dados de um produto para criação ou atualização.
// Na atualização, quantity e min_stock omitidos mantêm os valores atuais.
type ProductRequest struct {
	Name       string  `json:"name" binding:"required"`
	SKU        string  `json:"sku" binding:"required,sku"`
	Barcode    *string `json:"barcode" binding:"omitempty,barcode"`
	Quantity   *int    `json:"quantity" binding:"omitempty,min=0,max=999999"`
	MinStock   *int    `json:"min_stock" binding:"omitempty,min=0,max=999999"`
	ExpiryDate *string `json:"expiry_date"`
	Category   string  `json:"category" binding:"max=50"`
}

// ProductResponse representa a resposta com dados de um produto
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	SKU             string    `json:"sku"`
	Barcode         *string   `json:"barcode"`
	Quantity        int       `json:"quantity"`
	MinStock        int       `json:"min_stock"`
	ExpiryDate      *string   `json:"expiry_date"`
	Category        string    `json:"category"`
	StockStatus     string    `json:"stock_status"`
	ExpiryStatus    string    `json:"expiry_status"`
	DaysUntilExpiry *int      `json:"days_until_expiry,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductListResponse representa a resposta com a lista de produtos paginada
type ProductListResponse struct {
	Data       []ProductResponse `json:"data"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// SKUSuggestionResponse representa um SKU sugerido para a categoria
type SKUSuggestionResponse struct {
	SKU      string `json:"sku"`
	Category string `json:"category"`
}

// CategoryListResponse lista as categorias conhecidas
type CategoryListResponse struct {
	Categories []string `json:"categories"`
}

// ToAttributes converte a requisição nos atributos de domínio
func (r ProductRequest) ToAttributes() (product.Attributes, error) {
	attrs := product.Attributes{
		Name:     r.Name,
		SKU:      r.SKU,
		Barcode:  r.Barcode,
		MinStock: r.MinStock,
		Category: r.Category,
	}
	if r.Quantity != nil {
		attrs.Quantity = *r.Quantity
	}
	if r.ExpiryDate != nil {
		expiry, err := product.ParseDate(*r.ExpiryDate)
		if err != nil {
			return attrs, err
		}
		attrs.ExpiryDate = expiry
	}
	return attrs, nil
}

// ToProductResponse converte um produto do domínio para DTO de resposta
func ToProductResponse(p *product.Product, now time.Time) ProductResponse {
	resp := ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		SKU:          p.SKU,
		Barcode:      p.Barcode,
		Quantity:     p.Quantity,
		MinStock:     p.MinStock,
		Category:     p.Category,
		StockStatus:  string(p.StockStatus()),
		ExpiryStatus: string(p.ExpiryStatus(now)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.ExpiryDate != nil {
		date := product.FormatDate(p.ExpiryDate)
		resp.ExpiryDate = &date
	}
	if days, ok := product.DaysUntilExpiry(p.ExpiryDate, now); ok {
		resp.DaysUntilExpiry = &days
	}
	return resp
}

// ToProductListResponse converte uma lista de produtos do domínio para DTO de resposta paginada
func ToProductListResponse(products []*product.Product, totalCount, page, pageSize int, now time.Time) ProductListResponse {
	data := make([]ProductResponse, len(products))
	for i, p := range products {
		data[i] = ToProductResponse(p, now)
	}

	return ProductListResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(totalCount, pageSize),
	}
}
