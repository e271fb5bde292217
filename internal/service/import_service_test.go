package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/hugohenrick/erp-estoque/pkg/csvcodec"
	"github.com/hugohenrick/erp-estoque/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportService(f *fixture) *ImportService {
	s := NewImportService(f.products, logger.NewNop())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestImportService_BestEffort(t *testing.T) {
	f := newFixture(t)
	s := newImportService(f)

	data := strings.Join([]string{
		"Name,SKU,Quantity,Expiry Date,Category",
		"Maçã,MAC-1,5,2030-01-01,food & beverage",
		"Pera,MAC-1,3,,",
		"Kiwi,KIW-1,2,amanha,",
		"linha,quebrada",
		"Uva,UVA 1,1,,",
	}, "\n")

	result, err := s.Import(context.Background(), f.actor, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, []string{
		"Pera: Já existe um produto com este SKU",
		"Kiwi: Data de validade inválida: amanha",
		"Uva: SKU deve conter apenas letras, números, hífens e sublinhados (até 50 caracteres)",
	}, result.Errors)

	list, err := f.products.All(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Food & Beverage", list[0].Category)
	assert.Equal(t, "2030-01-01", product.FormatDate(list[0].ExpiryDate))
	assert.Len(t, f.db.movementList(), 1)
}

func TestImportService_Empty(t *testing.T) {
	f := newFixture(t)
	s := newImportService(f)

	_, err := s.Import(context.Background(), f.actor, "Name,SKU\n")
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestImportService_ExportRoundTrip(t *testing.T) {
	f := newFixture(t)
	s := newImportService(f)
	f.addProduct(t, "Café, torrado", "CAF-1", 4)

	file, err := s.Export(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Equal(t, "inventory-export-2026-03-10.csv", file.Filename)

	records := csvcodec.Parse(file.Content)
	require.Len(t, records, 1)
	assert.Equal(t, "Café, torrado", records[0].Name)
	assert.Equal(t, 4, records[0].Quantity)

	tpl := s.Template()
	assert.Equal(t, csvcodec.TemplateFilename, tpl.Filename)
	assert.NotEmpty(t, csvcodec.Parse(tpl.Content))
}
