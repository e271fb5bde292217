package product

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limites de validação dos campos de produto
const (
	MaxNameLength     = 100
	MaxSKULength      = 50
	MaxCategoryLength = 50
	MaxBarcodeLength  = 100
	MaxQuantity       = 999999
)

var (
	skuPattern     = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
	barcodePattern = regexp.MustCompile(`^[A-Za-z0-9\-]*$`)
)

// ValidationError indica uma violação de regra de um campo específico
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SanitizeName remove os caracteres < e > e espaços nas extremidades
func SanitizeName(name string) string {
	name = strings.NewReplacer("<", "", ">", "").Replace(name)
	return strings.TrimSpace(name)
}

// ValidSKU informa se o SKU respeita o padrão aceito
func ValidSKU(sku string) bool {
	return sku != "" && utf8.RuneCountInString(sku) <= MaxSKULength && skuPattern.MatchString(sku)
}

// ValidBarcode informa se o código de barras respeita o padrão aceito
func ValidBarcode(barcode string) bool {
	return utf8.RuneCountInString(barcode) <= MaxBarcodeLength && barcodePattern.MatchString(barcode)
}

// Validate verifica todas as regras de cadastro do produto
func (p *Product) Validate() error {
	if p.Name == "" {
		return &ValidationError{Field: "name", Message: "nome é obrigatório"}
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("nome deve ter no máximo %d caracteres", MaxNameLength)}
	}
	if p.SKU == "" {
		return &ValidationError{Field: "sku", Message: "SKU é obrigatório"}
	}
	if !ValidSKU(p.SKU) {
		return &ValidationError{Field: "sku", Message: "SKU deve conter apenas letras, números, hífens e sublinhados (até 50 caracteres)"}
	}
	if p.Quantity < 0 || p.Quantity > MaxQuantity {
		return &ValidationError{Field: "quantity", Message: fmt.Sprintf("quantidade deve estar entre 0 e %d", MaxQuantity)}
	}
	if p.MinStock < 0 || p.MinStock > MaxQuantity {
		return &ValidationError{Field: "min_stock", Message: fmt.Sprintf("estoque mínimo deve estar entre 0 e %d", MaxQuantity)}
	}
	if utf8.RuneCountInString(p.Category) > MaxCategoryLength {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("categoria deve ter no máximo %d caracteres", MaxCategoryLength)}
	}
	if p.Barcode != nil && !ValidBarcode(*p.Barcode) {
		return &ValidationError{Field: "barcode", Message: "código de barras deve conter apenas letras, números e hífens (até 100 caracteres)"}
	}
	return nil
}
