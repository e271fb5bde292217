package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/domain/movement"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/label"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// ScanService são as etapas da leitura rápida expostas pela API
type ScanService interface {
	Lookup(ctx context.Context, tenantID, barcode string) (*service.ScanLookup, error)
	Confirm(ctx context.Context, actor service.Actor, productID string, mode service.ScanMode, quantity int) (*movement.Movement, error)
	QuickAdd(ctx context.Context, actor service.Actor, in service.QuickAddInput) (*product.Product, error)
	Undo(ctx context.Context, actor service.Actor, movementID string) (*movement.Movement, error)
}

// ScanController gerencia a leitura rápida por código de barras
type ScanController struct {
	scan ScanService
	now  clock
}

// NewScanController cria uma nova instância de ScanController
func NewScanController(scan ScanService) *ScanController {
	return &ScanController{scan: scan, now: time.Now}
}

// Lookup busca o produto do código lido
// @Summary Busca o código lido
// @Description Devolve state found com o produto ou not_found, quando o código pode ser cadastrado
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScanLookupRequest true "Código lido"
// @Success 200 {object} dto.ScanLookupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /scan/lookup [post]
func (c *ScanController) Lookup(ctx *gin.Context) {
	var request dto.ScanLookupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	result, err := c.scan.Lookup(ctx.Request.Context(), tenant.GetTenantID(ctx), request.Barcode)
	if err != nil {
		respondError(ctx, err, "Erro ao buscar código")
		return
	}

	resp := dto.ScanLookupResponse{Barcode: result.Barcode, State: string(result.State)}
	if result.Product != nil {
		p := dto.ToProductResponse(result.Product, c.now())
		resp.Product = &p
	}
	ctx.JSON(http.StatusOK, resp)
}

// Confirm aplica a entrada ou saída lida
// @Summary Confirma a leitura
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScanConfirmRequest true "Produto, modo e quantidade"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /scan/confirm [post]
func (c *ScanController) Confirm(ctx *gin.Context) {
	var request dto.ScanConfirmRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	m, err := c.scan.Confirm(ctx.Request.Context(), actorFrom(ctx), request.ProductID, service.ScanMode(request.Mode), request.Quantity)
	if err != nil {
		respondError(ctx, err, "Erro ao confirmar leitura")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMovementResponse(m))
}

// QuickAdd cadastra um produto a partir de um código desconhecido
// @Summary Cadastro rápido
// @Description Cria o produto com o código lido e um SKU gerado para a categoria
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.QuickAddRequest true "Dados mínimos do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Router /scan/quick-add [post]
func (c *ScanController) QuickAdd(ctx *gin.Context) {
	var request dto.QuickAddRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	p, err := c.scan.QuickAdd(ctx.Request.Context(), actorFrom(ctx), service.QuickAddInput{
		Barcode:  request.Barcode,
		Name:     request.Name,
		Category: request.Category,
		Quantity: request.Quantity,
	})
	if err != nil {
		respondError(ctx, err, "Erro ao cadastrar produto")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p, c.now()))
}

// Undo desfaz a movimentação de uma leitura confirmada
// @Summary Desfaz a última leitura
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScanUndoRequest true "Movimentação a desfazer"
// @Success 201 {object} dto.MovementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /scan/undo [post]
func (c *ScanController) Undo(ctx *gin.Context) {
	var request dto.ScanUndoRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	m, err := c.scan.Undo(ctx.Request.Context(), actorFrom(ctx), request.MovementID)
	if err != nil {
		respondError(ctx, err, "Erro ao desfazer leitura")
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMovementResponse(m))
}

// LabelController gera folhas de etiquetas
type LabelController struct {
	products ProductService
}

// NewLabelController cria uma nova instância de LabelController
func NewLabelController(products ProductService) *LabelController {
	return &LabelController{products: products}
}

// Print gera a folha de etiquetas dos produtos selecionados
// @Summary Gera etiquetas
// @Description Devolve um documento HTML autocontido, pronto para impressão, com código de barras CODE128 ou QR code
// @Tags labels
// @Accept json
// @Produce html
// @Security BearerAuth
// @Param request body dto.LabelRequest true "Produtos e formato"
// @Success 200 {string} string "documento HTML"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /labels [post]
func (c *LabelController) Print(ctx *gin.Context) {
	var request dto.LabelRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	tenantID := tenant.GetTenantID(ctx)
	products := make([]*product.Product, 0, len(request.ProductIDs))
	for _, id := range request.ProductIDs {
		p, err := c.products.Get(ctx.Request.Context(), tenantID, id)
		if err != nil {
			respondError(ctx, err, "Erro ao buscar produto")
			return
		}
		products = append(products, p)
	}

	html, err := label.Render(products, label.Options{
		CodeType: label.CodeType(request.CodeType),
		PerRow:   request.LabelsPerRow,
	})
	if err != nil {
		respondError(ctx, err, "Erro ao gerar etiquetas")
		return
	}

	ctx.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
