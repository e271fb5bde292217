package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Product é a representação de produto devolvida pela API
type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Barcode      *string   `json:"barcode"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"min_stock"`
	ExpiryDate   *string   `json:"expiry_date"`
	Category     string    `json:"category"`
	StockStatus  string    `json:"stock_status"`
	ExpiryStatus string    `json:"expiry_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductInput são os campos aceitos na criação e atualização
type ProductInput struct {
	Name       string  `json:"name"`
	SKU        string  `json:"sku"`
	Barcode    *string `json:"barcode,omitempty"`
	Quantity   int     `json:"quantity"`
	MinStock   *int    `json:"min_stock,omitempty"`
	ExpiryDate *string `json:"expiry_date,omitempty"`
	Category   string  `json:"category,omitempty"`
}

// ProductPage é uma página da listagem
type ProductPage struct {
	Data       []Product `json:"data"`
	TotalCount int       `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

// Movement é uma movimentação de estoque registrada
type Movement struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int       `json:"quantity_change"`
	QuantityBefore int       `json:"quantity_before"`
	QuantityAfter  int       `json:"quantity_after"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// MovementInput descreve uma movimentação a aplicar
type MovementInput struct {
	MovementType   string `json:"movement_type"`
	QuantityChange int    `json:"quantity_change"`
	Notes          string `json:"notes,omitempty"`
}

// ListProducts busca uma página de produtos, com busca e filtro de categoria opcionais
func (c *Client) ListProducts(ctx context.Context, search, category string, page, pageSize int) (*ProductPage, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if category != "" {
		q.Set("category", category)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var out ProductPage
	if err := c.get(ctx, "/products?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProduct busca um produto pelo ID
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct cria um produto
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	var out Product
	if err := c.send(ctx, http.MethodPost, "/products", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct atualiza um produto
func (c *Client) UpdateProduct(ctx context.Context, id string, in ProductInput) (*Product, error) {
	var out Product
	if err := c.send(ctx, http.MethodPut, "/products/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct remove um produto
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, nil)
}

// ApplyMovement aplica uma movimentação ao produto
func (c *Client) ApplyMovement(ctx context.Context, productID string, in MovementInput) (*Movement, error) {
	var out Movement
	path := "/products/" + url.PathEscape(productID) + "/movements"
	if err := c.send(ctx, http.MethodPost, path, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
