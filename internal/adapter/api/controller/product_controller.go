package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// ProductService são as operações de catálogo usadas pelo controller
type ProductService interface {
	Create(ctx context.Context, actor service.Actor, attrs product.Attributes) (*product.Product, error)
	Get(ctx context.Context, tenantID, id string) (*product.Product, error)
	FindByBarcode(ctx context.Context, tenantID, barcode string) (*product.Product, error)
	List(ctx context.Context, tenantID string, filter product.ListFilter) ([]*product.Product, int, error)
	Update(ctx context.Context, actor service.Actor, id string, attrs product.Attributes, quantity *int) (*product.Product, error)
	Delete(ctx context.Context, tenantID, id string) error
	SuggestSKU(category string) string
}

// StockService são as operações de movimentação de estoque usadas pelos controllers
type StockService interface {
	Apply(ctx context.Context, actor service.Actor, productID string, t movement.Type, change int, notes string) (*movement.Movement, error)
	History(ctx context.Context, tenantID, productID string, limit int) ([]*movement.Movement, error)
	StartStockTake(ctx context.Context, tenantID string) ([]service.StockTakeItem, error)
	Reconcile(ctx context.Context, actor service.Actor, items []service.StockTakeItem, notes string) (*service.ReconcileResult, error)
}

// ProductController gerencia as requisições relacionadas a produtos e movimentações
type ProductController struct {
	products ProductService
	stock    StockService
	now      clock
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(products ProductService, stock StockService) *ProductController {
	return &ProductController{
		products: products,
		stock:    stock,
		now:      time.Now,
	}
}

// Create cria um novo produto
// @Summary Cria um novo produto
// @Description Cria um produto no catálogo do tenant, registrando a movimentação inicial quando há quantidade
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	attrs, err := request.ToAttributes()
	if err != nil {
		respondError(ctx, err, "Erro ao criar produto")
		return
	}

	p, err := c.products.Create(ctx.Request.Context(), actorFrom(ctx), attrs)
	if err != nil {
		respondError(ctx, err, "Erro ao criar produto")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p, c.now()))
}

// GetByID busca um produto pelo ID
// @Summary Busca um produto pelo ID
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) GetByID(ctx *gin.Context) {
	p, err := c.products.Get(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p, c.now()))
}

// GetByBarcode busca um produto pelo código de barras exato
// @Summary Busca um produto pelo código de barras
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param barcode path string true "Código de barras"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/barcode/{barcode} [get]
func (c *ProductController) GetByBarcode(ctx *gin.Context) {
	p, err := c.products.FindByBarcode(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("barcode"))
	if err != nil {
		respondError(ctx, err, "Erro ao buscar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p, c.now()))
}

// List lista os produtos com paginação
// @Summary Lista os produtos
// @Description Lista os produtos do tenant, mais recentes primeiro, com busca por nome, SKU ou código de barras
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param search query string false "Busca"
// @Param category query string false "Categoria"
// @Param page query int false "Página"
// @Param page_size query int false "Itens por página"
// @Success 200 {object} dto.ProductListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	p := pagination(ctx)

	filter := product.ListFilter{
		Search:   strings.TrimSpace(ctx.Query("search")),
		Category: strings.TrimSpace(ctx.Query("category")),
		Limit:    p.PageSize,
		Offset:   p.Offset(),
	}

	products, total, err := c.products.List(ctx.Request.Context(), tenant.GetTenantID(ctx), filter)
	if err != nil {
		respondError(ctx, err, "Erro ao listar produtos")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(products, total, p.ClientPage(), p.PageSize, c.now()))
}

// Update atualiza um produto
// @Summary Atualiza um produto
// @Description Atualiza os dados do produto; uma quantidade diferente gera uma movimentação de ajuste
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	attrs, err := request.ToAttributes()
	if err != nil {
		respondError(ctx, err, "Erro ao atualizar produto")
		return
	}

	p, err := c.products.Update(ctx.Request.Context(), actorFrom(ctx), ctx.Param("id"), attrs, request.Quantity)
	if err != nil {
		respondError(ctx, err, "Erro ao atualizar produto")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p, c.now()))
}

// Delete remove um produto
// @Summary Remove um produto
// @Tags products
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	if err := c.products.Delete(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, err, "Erro ao remover produto")
		return
	}

	ctx.Status(http.StatusNoContent)
}

// SuggestSKU sugere um SKU para a categoria
// @Summary Sugere um SKU
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param category query string false "Categoria"
// @Success 200 {object} dto.SKUSuggestionResponse
// @Router /products/sku-suggestion [get]
func (c *ProductController) SuggestSKU(ctx *gin.Context) {
	category := product.CanonicalCategory(ctx.Query("category"))
	ctx.JSON(http.StatusOK, dto.SKUSuggestionResponse{
		SKU:      c.products.SuggestSKU(category),
		Category: category,
	})
}

// Categories lista as categorias conhecidas
// @Summary Lista as categorias
// @Tags products
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CategoryListResponse
// @Router /products/categories [get]
func (c *ProductController) Categories(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CategoryListResponse{Categories: product.Categories})
}

// ApplyMovement aplica uma movimentação de estoque ao produto
// @Summary Aplica uma movimentação
// @Description Entrada (variação positiva), saída (variação negativa) ou ajuste; saídas maiores que o estoque são rejeitadas
// @Tags movements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param movement body dto.MovementRequest true "Movimentação"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id}/movements [post]
func (c *ProductController) ApplyMovement(ctx *gin.Context) {
	var request dto.MovementRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	m, err := c.stock.Apply(
		ctx.Request.Context(),
		actorFrom(ctx),
		ctx.Param("id"),
		movement.Type(request.MovementType),
		request.QuantityChange,
		strings.TrimSpace(request.Notes),
	)
	if err != nil {
		respondError(ctx, err, "Erro ao aplicar movimentação")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMovementResponse(m))
}

// ProductMovements lista o histórico de movimentações do produto
// @Summary Histórico do produto
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param limit query int false "Máximo de registros (até 100)"
// @Success 200 {object} dto.MovementListResponse
// @Router /products/{id}/movements [get]
func (c *ProductController) ProductMovements(ctx *gin.Context) {
	c.listMovements(ctx, ctx.Param("id"))
}

// Movements lista as movimentações mais recentes do tenant
// @Summary Lista as movimentações
// @Tags movements
// @Produce json
// @Security BearerAuth
// @Param product_id query string false "Filtrar por produto"
// @Param limit query int false "Máximo de registros (até 100)"
// @Success 200 {object} dto.MovementListResponse
// @Router /movements [get]
func (c *ProductController) Movements(ctx *gin.Context) {
	c.listMovements(ctx, ctx.Query("product_id"))
}

func (c *ProductController) listMovements(ctx *gin.Context, productID string) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(movement.DefaultListLimit)))
	if limit <= 0 || limit > movement.DefaultListLimit {
		limit = movement.DefaultListLimit
	}

	movements, err := c.stock.History(ctx.Request.Context(), tenant.GetTenantID(ctx), productID, limit)
	if err != nil {
		respondError(ctx, err, "Erro ao listar movimentações")
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementListResponse(movements))
}

// StartStockTake devolve o retrato do estoque para a conferência
// @Summary Inicia uma conferência de estoque
// @Tags stock-take
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.StockTakeResponse
// @Router /stock-take [get]
func (c *ProductController) StartStockTake(ctx *gin.Context) {
	items, err := c.stock.StartStockTake(ctx.Request.Context(), tenant.GetTenantID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao iniciar conferência")
		return
	}

	resp := dto.StockTakeResponse{Items: make([]dto.StockTakeItem, len(items)), StartedAt: c.now()}
	for i, item := range items {
		resp.Items[i] = dto.StockTakeItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			SKU:             item.SKU,
			Category:        item.Category,
			SystemQuantity:  item.SystemQuantity,
			CountedQuantity: item.CountedQuantity,
		}
	}
	ctx.JSON(http.StatusOK, resp)
}

// Reconcile aplica as diferenças contadas na conferência
// @Summary Concilia uma conferência de estoque
// @Description Itens contados com diferença geram uma movimentação stock_take; os demais são ignorados
// @Tags stock-take
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReconcileRequest true "Contagens"
// @Success 200 {object} dto.ReconcileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /stock-take/reconcile [post]
func (c *ProductController) Reconcile(ctx *gin.Context) {
	var request dto.ReconcileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	items := make([]service.StockTakeItem, len(request.Items))
	for i, item := range request.Items {
		items[i] = service.StockTakeItem{
			ProductID:       item.ProductID,
			Name:            item.Name,
			SKU:             item.SKU,
			Category:        item.Category,
			SystemQuantity:  item.SystemQuantity,
			CountedQuantity: item.CountedQuantity,
		}
	}

	result, err := c.stock.Reconcile(ctx.Request.Context(), actorFrom(ctx), items, strings.TrimSpace(request.Notes))
	if err != nil {
		respondError(ctx, err, "Erro ao conciliar conferência")
		return
	}

	resp := dto.ReconcileResponse{
		Adjusted: result.Adjusted,
		Skipped:  result.Skipped,
		Failed:   make([]dto.ReconcileFailure, len(result.Failed)),
	}
	for i, f := range result.Failed {
		resp.Failed[i] = dto.ReconcileFailure{ProductID: f.ProductID, Name: f.Name, Message: f.Message}
	}
	ctx.JSON(http.StatusOK, resp)
}
