package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hugohenrick/erp-estoque/pkg/csvcodec"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
)

// ImportResult resume uma importação CSV
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

// ExportFile é um arquivo CSV pronto para download
type ExportFile struct {
	Filename string
	Content  string
}

// ImportService importa e exporta o catálogo em CSV
type ImportService struct {
	products *ProductService
	logger   logger.Logger
	now      Clock
}

// NewImportService cria um novo serviço de importação
func NewImportService(products *ProductService, log logger.Logger) *ImportService {
	return &ImportService{products: products, logger: log, now: time.Now}
}

// Import cadastra os registros do CSV um a um. Cada falha é registrada como
// "<nome ou sku>: <mensagem>" e não interrompe os registros seguintes.
func (s *ImportService) Import(ctx context.Context, actor Actor, data string) (*ImportResult, error) {
	records := csvcodec.Parse(data)
	if len(records) == 0 {
		return nil, ErrEmptyImport
	}

	result := &ImportResult{Errors: []string{}}
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		label := recordLabel(rec)

		attrs, err := rec.ToAttributes()
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", label, Message(err)))
			continue
		}
		if _, err := s.products.Create(ctx, actor, attrs); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", label, Message(err)))
			continue
		}
		result.Imported++
	}

	s.logger.Info("Importação CSV concluída",
		"tenant_id", actor.TenantID,
		"records", len(records),
		"imported", result.Imported,
		"errors", len(result.Errors),
	)
	return result, nil
}

// Export gera o CSV com todos os produtos do tenant
func (s *ImportService) Export(ctx context.Context, tenantID string) (*ExportFile, error) {
	products, err := s.products.All(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		Filename: csvcodec.ExportFilename(s.now()),
		Content:  csvcodec.Export(products),
	}, nil
}

// Template devolve o modelo de importação
func (s *ImportService) Template() *ExportFile {
	return &ExportFile{Filename: csvcodec.TemplateFilename, Content: csvcodec.Template}
}

func recordLabel(rec csvcodec.Record) string {
	if rec.Name != "" {
		return rec.Name
	}
	return rec.SKU
}
