package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// Tamanhos dos rankings da análise avançada
const (
	topCategories = 8
	topProducts   = 5
)

// DashboardStats são os indicadores do painel
type DashboardStats struct {
	TotalProducts   int `json:"total_products"`
	TotalStock      int `json:"total_stock"`
	LowStockCount   int `json:"low_stock_count"`
	OutOfStockCount int `json:"out_of_stock_count"`
	ExpiringCount   int `json:"expiring_count"`
	Categories      int `json:"categories"`
	AvgStock        int `json:"avg_stock"`
	HealthRate      int `json:"health_rate"`
}

// CategoryStat agrega os produtos de uma categoria
type CategoryStat struct {
	Name     string `json:"name"`
	Products int    `json:"products"`
	Stock    int    `json:"stock"`
}

// ProductStat é um produto num ranking
type ProductStat struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
	MinStock int    `json:"min_stock"`
	Deficit  int    `json:"deficit,omitempty"`
}

// AdvancedAnalytics são as distribuições e rankings da análise avançada
type AdvancedAnalytics struct {
	Stats        DashboardStats               `json:"stats"`
	StockStatus  map[product.StockStatus]int  `json:"stock_status"`
	ExpiryStatus map[product.ExpiryStatus]int `json:"expiry_status"`
	Categories   []CategoryStat               `json:"categories"`
	TopProducts  []ProductStat                `json:"top_products"`
	LowStock     []ProductStat                `json:"low_stock"`
	Attention    []ProductStat                `json:"attention"`
}

// ComputeDashboard calcula os indicadores do painel. Estoque baixo inclui os
// críticos; itens zerados contam apenas como sem estoque.
func ComputeDashboard(products []*product.Product, now time.Time) DashboardStats {
	stats := DashboardStats{TotalProducts: len(products)}
	categories := make(map[string]struct{})
	for _, p := range products {
		stats.TotalStock += p.Quantity
		categories[p.Category] = struct{}{}
		switch p.StockStatus() {
		case product.StockLow, product.StockCritical:
			stats.LowStockCount++
		case product.StockOut:
			stats.OutOfStockCount++
		}
		if p.ExpiryStatus(now) == product.ExpiryExpiringSoon {
			stats.ExpiringCount++
		}
	}
	stats.Categories = len(categories)

	stats.HealthRate = 100
	if stats.TotalProducts > 0 {
		total := float64(stats.TotalProducts)
		stats.AvgStock = int(math.Round(float64(stats.TotalStock) / total))
		healthy := float64(stats.TotalProducts - stats.LowStockCount - stats.OutOfStockCount)
		stats.HealthRate = int(math.Round(healthy / total * 100))
	}
	return stats
}

// ComputeAdvanced calcula as distribuições por status e os rankings
func ComputeAdvanced(products []*product.Product, now time.Time) AdvancedAnalytics {
	result := AdvancedAnalytics{
		Stats: ComputeDashboard(products, now),
		StockStatus: map[product.StockStatus]int{
			product.StockHealthy: 0, product.StockLow: 0, product.StockCritical: 0, product.StockOut: 0,
		},
		ExpiryStatus: map[product.ExpiryStatus]int{
			product.ExpiryFresh: 0, product.ExpiryExpiringSoon: 0, product.ExpiryExpired: 0, product.ExpiryNone: 0,
		},
		Categories:  []CategoryStat{},
		TopProducts: []ProductStat{},
		LowStock:    []ProductStat{},
		Attention:   []ProductStat{},
	}

	byCategory := make(map[string]*CategoryStat)
	for _, p := range products {
		stock := p.StockStatus()
		expiry := p.ExpiryStatus(now)
		result.StockStatus[stock]++
		result.ExpiryStatus[expiry]++

		c, ok := byCategory[p.Category]
		if !ok {
			c = &CategoryStat{Name: p.Category}
			byCategory[p.Category] = c
		}
		c.Products++
		c.Stock += p.Quantity

		if stock != product.StockHealthy {
			result.LowStock = append(result.LowStock, statOf(p))
		}
		if stock != product.StockHealthy || expiry == product.ExpiryExpiringSoon || expiry == product.ExpiryExpired {
			result.Attention = append(result.Attention, statOf(p))
		}
	}

	for _, c := range byCategory {
		result.Categories = append(result.Categories, *c)
	}
	sort.SliceStable(result.Categories, func(i, j int) bool {
		if result.Categories[i].Stock != result.Categories[j].Stock {
			return result.Categories[i].Stock > result.Categories[j].Stock
		}
		return result.Categories[i].Name < result.Categories[j].Name
	})
	result.Categories = truncate(result.Categories, topCategories)

	for _, p := range products {
		result.TopProducts = append(result.TopProducts, statOf(p))
	}
	sort.SliceStable(result.TopProducts, func(i, j int) bool {
		return result.TopProducts[i].Quantity > result.TopProducts[j].Quantity
	})
	result.TopProducts = truncate(result.TopProducts, topProducts)

	sort.SliceStable(result.LowStock, func(i, j int) bool {
		return result.LowStock[i].Quantity < result.LowStock[j].Quantity
	})
	result.LowStock = truncate(result.LowStock, topProducts)
	result.Attention = truncate(result.Attention, topProducts)

	return result
}

func statOf(p *product.Product) ProductStat {
	deficit := p.MinStock - p.Quantity
	if deficit < 0 {
		deficit = 0
	}
	return ProductStat{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Quantity: p.Quantity,
		MinStock: p.MinStock,
		Deficit:  deficit,
	}
}

func truncate[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// AnalyticsService carrega o catálogo e calcula os indicadores
type AnalyticsService struct {
	products *ProductService
	now      Clock
}

// NewAnalyticsService cria um novo serviço de análises
func NewAnalyticsService(products *ProductService) *AnalyticsService {
	return &AnalyticsService{products: products, now: time.Now}
}

// Dashboard devolve os indicadores do painel do tenant
func (s *AnalyticsService) Dashboard(ctx context.Context, tenantID string) (*DashboardStats, error) {
	products, err := s.products.All(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stats := ComputeDashboard(products, s.now())
	return &stats, nil
}

// Advanced devolve a análise avançada do tenant
func (s *AnalyticsService) Advanced(ctx context.Context, tenantID string) (*AdvancedAnalytics, error) {
	products, err := s.products.All(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := ComputeAdvanced(products, s.now())
	return &result, nil
}
