package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-estoque/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-estoque/internal/service"
	"github.com/hugohenrick/erp-estoque/pkg/tenant"
)

// MaxImportSize é o maior arquivo CSV aceito na importação
const MaxImportSize = 5 << 20

var errImportTooLarge = errors.New("arquivo CSV maior que 5 MB")

// ImportService são as operações de importação e exportação de CSV
type ImportService interface {
	Import(ctx context.Context, actor service.Actor, data string) (*service.ImportResult, error)
	Export(ctx context.Context, tenantID string) (*service.ExportFile, error)
	Template() *service.ExportFile
}

// CSVController gerencia a importação e exportação do catálogo em CSV
type CSVController struct {
	imports ImportService
}

// NewCSVController cria uma nova instância de CSVController
func NewCSVController(imports ImportService) *CSVController {
	return &CSVController{imports: imports}
}

// Import importa produtos de um arquivo CSV
// @Summary Importa produtos de um CSV
// @Description Aceita upload multipart (campo file) ou corpo text/csv. A importação é sequencial e parcial: cada linha com erro é reportada
// @Tags csv
// @Accept multipart/form-data
// @Accept text/csv
// @Produce json
// @Security BearerAuth
// @Param file formData file false "Arquivo .csv"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Router /products/import [post]
func (c *CSVController) Import(ctx *gin.Context) {
	data, err := readCSV(ctx)
	if err != nil {
		badRequest(ctx, err)
		return
	}

	result, err := c.imports.Import(ctx.Request.Context(), actorFrom(ctx), data)
	if err != nil {
		respondError(ctx, err, "Erro ao importar produtos")
		return
	}

	errs := result.Errors
	if errs == nil {
		errs = []string{}
	}
	ctx.JSON(http.StatusOK, dto.ImportResponse{Imported: result.Imported, Errors: errs})
}

func readCSV(ctx *gin.Context) (string, error) {
	var r io.Reader
	if strings.HasPrefix(ctx.ContentType(), "multipart/") {
		header, err := ctx.FormFile("file")
		if err != nil {
			return "", fmt.Errorf("campo file não enviado: %w", err)
		}
		if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
			return "", errors.New("o arquivo deve ter extensão .csv")
		}
		f, err := header.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	} else {
		r = ctx.Request.Body
	}

	raw, err := io.ReadAll(io.LimitReader(r, MaxImportSize+1))
	if err != nil {
		return "", err
	}
	if len(raw) > MaxImportSize {
		return "", errImportTooLarge
	}
	return string(raw), nil
}

// Export exporta o catálogo do tenant em CSV
// @Summary Exporta o catálogo
// @Tags csv
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "arquivo CSV"
// @Failure 402 {object} dto.ErrorResponse
// @Router /products/export [get]
func (c *CSVController) Export(ctx *gin.Context) {
	file, err := c.imports.Export(ctx.Request.Context(), tenant.GetTenantID(ctx))
	if err != nil {
		respondError(ctx, err, "Erro ao exportar produtos")
		return
	}
	sendFile(ctx, file)
}

// Template devolve o arquivo modelo de importação
// @Summary Modelo de importação
// @Tags csv
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string "arquivo CSV"
// @Router /products/import/template [get]
func (c *CSVController) Template(ctx *gin.Context) {
	sendFile(ctx, c.imports.Template())
}

func sendFile(ctx *gin.Context, file *service.ExportFile) {
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(file.Content))
}
