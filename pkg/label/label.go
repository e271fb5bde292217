// Package label gera a folha de etiquetas imprimível (HTML autocontido) com código de barras ou QR code.
package label

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// CodeType é o tipo de código impresso na etiqueta
type CodeType string

const (
	CodeBarcode CodeType = "barcode"
	CodeQR      CodeType = "qrcode"
)

const (
	// DefaultPerRow é a quantidade padrão de etiquetas por linha
	DefaultPerRow = 3
	// MaxPerRow limita a largura da grade
	MaxPerRow = 6

	barcodeHeight = 80
	qrSize        = 160
)

var (
	ErrInvalidCodeType = errors.New("tipo de código inválido")
	ErrNoProducts      = errors.New("nenhum produto selecionado")
)

// ValidCodeType verifica se o tipo de código é suportado
func ValidCodeType(t CodeType) bool {
	return t == CodeBarcode || t == CodeQR
}

// Options controla a montagem da folha
type Options struct {
	CodeType CodeType
	PerRow   int
}

type labelView struct {
	Name  string
	Value string
	Image template.URL
}

type sheetView struct {
	Title  string
	PerRow int
	Labels []labelView
}

var sheetTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 0; padding: 16px; }
  .grid { display: grid; grid-template-columns: repeat({{.PerRow}}, 1fr); gap: 12px; }
  .label { border: 1px dashed #999; padding: 8px; text-align: center; page-break-inside: avoid; }
  .label img { max-width: 100%; }
  .name { font-size: 12px; font-weight: bold; margin-top: 4px; }
  .value { font-size: 10px; color: #555; font-family: monospace; }
  @media print { body { padding: 0; } .label { border: none; } }
</style>
</head>
<body>
<div class="grid">
{{- range .Labels}}
  <div class="label">
    <img src="{{.Image}}" alt="{{.Value}}">
    <div class="name">{{.Name}}</div>
    <div class="value">{{.Value}}</div>
  </div>
{{- end}}
</div>
<script>window.onload = function () { window.print(); };</script>
</body>
</html>
`))

// Render gera o documento HTML com uma etiqueta por produto, na ordem recebida
func Render(products []*product.Product, opts Options) ([]byte, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}
	if opts.CodeType == "" {
		opts.CodeType = CodeBarcode
	}
	if !ValidCodeType(opts.CodeType) {
		return nil, ErrInvalidCodeType
	}

	view := sheetView{Title: "Etiquetas", PerRow: clampPerRow(opts.PerRow)}
	for _, p := range products {
		value := p.LabelValue()
		img, err := EncodePNG(opts.CodeType, value)
		if err != nil {
			return nil, fmt.Errorf("falha ao gerar código do produto %s: %w", p.SKU, err)
		}
		view.Labels = append(view.Labels, labelView{
			Name:  p.Name,
			Value: value,
			Image: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(img)),
		})
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("falha ao montar folha de etiquetas: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNG rende o valor como CODE128 ou QR (nível M) em PNG
func EncodePNG(t CodeType, value string) ([]byte, error) {
	var (
		code          barcode.Barcode
		width, height int
		err           error
	)

	switch t {
	case CodeBarcode:
		code, err = code128.Encode(value)
		if err != nil {
			return nil, err
		}
		width, height = code.Bounds().Dx()*2, barcodeHeight
	case CodeQR:
		code, err = qr.Encode(value, qr.M, qr.Auto)
		if err != nil {
			return nil, err
		}
		width = qrSize
		if dx := code.Bounds().Dx(); dx > width {
			width = dx
		}
		height = width
	default:
		return nil, ErrInvalidCodeType
	}

	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func clampPerRow(n int) int {
	if n <= 0 {
		return DefaultPerRow
	}
	if n > MaxPerRow {
		return MaxPerRow
	}
	return n
}
