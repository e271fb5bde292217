package product

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestNewProduct_Defaults(t *testing.T) {
	barcode := "  "
	p, err := NewProduct("tenant-1", Attributes{
		Name:    "  <Widget>  ",
		SKU:     "W-1",
		Barcode: &barcode,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, DefaultMinStock, p.MinStock)
	assert.Equal(t, DefaultCategory, p.Category)
	assert.Nil(t, p.Barcode)
	assert.Equal(t, "W-1", p.LabelValue())
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name  string
		attrs Attributes
		field string
	}{
		{"nome vazio", Attributes{Name: "<>", SKU: "A"}, "name"},
		{"nome longo", Attributes{Name: strings.Repeat("a", 101), SKU: "A"}, "name"},
		{"sku vazio", Attributes{Name: "A"}, "sku"},
		{"sku inválido", Attributes{Name: "A", SKU: "A B"}, "sku"},
		{"sku longo", Attributes{Name: "A", SKU: strings.Repeat("a", 51)}, "sku"},
		{"quantidade negativa", Attributes{Name: "A", SKU: "A", Quantity: -1}, "quantity"},
		{"quantidade alta", Attributes{Name: "A", SKU: "A", Quantity: 1000000}, "quantity"},
		{"mínimo negativo", Attributes{Name: "A", SKU: "A", MinStock: intPtr(-1)}, "min_stock"},
		{"categoria longa", Attributes{Name: "A", SKU: "A", Category: strings.Repeat("c", 51)}, "category"},
		{"barcode inválido", Attributes{Name: "A", SKU: "A", Barcode: func() *string { s := "12 34"; return &s }()}, "barcode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct("tenant-1", tt.attrs)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "erro esperado, obtido %v", err)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestProduct_UpdateKeepsQuantity(t *testing.T) {
	p, err := NewProduct("tenant-1", Attributes{Name: "A", SKU: "A-1", Quantity: 7})
	require.NoError(t, err)

	err = p.Update(Attributes{Name: "B", SKU: "B-1", Quantity: 100, MinStock: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, "B", p.Name)
	assert.Equal(t, 3, p.MinStock)
}

func TestProduct_UpdateWithoutMinStockKeepsCurrent(t *testing.T) {
	p, err := NewProduct("tenant-1", Attributes{Name: "A", SKU: "A-1", MinStock: intPtr(25)})
	require.NoError(t, err)

	require.NoError(t, p.Update(Attributes{Name: "A", SKU: "A-1"}))
	assert.Equal(t, 25, p.MinStock)
}

func TestProduct_UpdateRollsBackOnError(t *testing.T) {
	p, err := NewProduct("tenant-1", Attributes{Name: "A", SKU: "A-1"})
	require.NoError(t, err)

	err = p.Update(Attributes{Name: "B", SKU: "bad sku"})
	require.Error(t, err)
	assert.Equal(t, "A", p.Name)
	assert.Equal(t, "A-1", p.SKU)
}

func TestTruncateDateAndParse(t *testing.T) {
	in := time.Date(2030, 7, 1, 22, 15, 0, 0, time.FixedZone("x", -3*3600))
	out := TruncateDate(&in)
	assert.Equal(t, "2030-07-01", FormatDate(out))

	parsed, err := ParseDate("2030-07-01")
	require.NoError(t, err)
	assert.Equal(t, *out, *parsed)

	empty, err := ParseDate(" ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = ParseDate("01/07/2030")
	assert.Error(t, err)
}

func TestCanonicalCategory(t *testing.T) {
	assert.Equal(t, "Toys & Games", CanonicalCategory(" toys & games "))
	assert.Equal(t, "Garage", CanonicalCategory("Garage"))
	assert.True(t, IsKnownCategory(" food & BEVERAGE"))
	assert.False(t, IsKnownCategory("Food  Beverage"))
}
