package label

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func sampleProducts() []*product.Product {
	return []*product.Product{
		{Name: "Parafuso <M6>", SKU: "HAR-ABC123", Barcode: strPtr("7891234567890")},
		{Name: "Arroz", SKU: "FOO-XYZ789"},
	}
}

func TestRender_Barcode(t *testing.T) {
	html, err := Render(sampleProducts(), Options{CodeType: CodeBarcode})
	require.NoError(t, err)

	doc := string(html)
	assert.Contains(t, doc, "repeat(3, 1fr)")
	assert.Contains(t, doc, "window.onload")
	assert.Equal(t, 2, strings.Count(doc, `class="label"`))
	assert.Equal(t, 2, strings.Count(doc, "data:image/png;base64,"))
	assert.Contains(t, doc, "7891234567890")
	// sem código de barras a etiqueta usa o SKU
	assert.Contains(t, doc, "FOO-XYZ789")
	assert.Contains(t, doc, "Parafuso &lt;M6&gt;")
}

func TestRender_QRCodeAndPerRow(t *testing.T) {
	html, err := Render(sampleProducts(), Options{CodeType: CodeQR, PerRow: 4})
	require.NoError(t, err)
	assert.Contains(t, string(html), "repeat(4, 1fr)")

	html, err = Render(sampleProducts(), Options{CodeType: CodeQR, PerRow: 50})
	require.NoError(t, err)
	assert.Contains(t, string(html), "repeat(6, 1fr)")
}

func TestRender_Errors(t *testing.T) {
	_, err := Render(nil, Options{})
	assert.ErrorIs(t, err, ErrNoProducts)

	_, err = Render(sampleProducts(), Options{CodeType: "ean"})
	assert.ErrorIs(t, err, ErrInvalidCodeType)
}

func TestEncodePNG(t *testing.T) {
	for _, ct := range []CodeType{CodeBarcode, CodeQR} {
		data, err := EncodePNG(ct, "HAR-ABC123")
		require.NoError(t, err, ct)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, ct)
		assert.Greater(t, img.Bounds().Dx(), 0)
		if ct == CodeQR {
			assert.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
		} else {
			assert.Equal(t, barcodeHeight, img.Bounds().Dy())
		}
	}
}
