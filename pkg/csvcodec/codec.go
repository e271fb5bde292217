// Package csvcodec converte produtos de e para o formato CSV usado na
// importação e exportação do catálogo.
package csvcodec

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

// Nomes de arquivo oferecidos para download
const (
	TemplateFilename = "inventory-template.csv"
	exportPrefix     = "inventory-export-"
)

// Template é o conteúdo do arquivo modelo de importação
const Template = "Name,SKU,Barcode,Quantity,MinStock,ExpiryDate,Category\n" +
	"Example Product,SKU001,123456789,100,10,2025-12-31,Electronics"

var exportHeaders = []string{
	"Name",
	"SKU",
	"Barcode",
	"Quantity",
	"Min Stock",
	"Expiry Date",
	"Category",
	"Created At",
	"Updated At",
}

// Record é um produto parcial lido de uma linha do CSV
type Record struct {
	Name       string
	SKU        string
	Barcode    *string
	Quantity   int
	MinStock   *int
	ExpiryDate *string
	Category   string
}

type column int

const (
	colUnknown column = iota
	colName
	colSKU
	colBarcode
	colQuantity
	colMinStock
	colExpiryDate
	colCategory
)

var headerSynonyms = map[string]column{
	"name":          colName,
	"sku":           colSKU,
	"barcode":       colBarcode,
	"quantity":      colQuantity,
	"minstock":      colMinStock,
	"min_stock":     colMinStock,
	"min stock":     colMinStock,
	"minimum stock": colMinStock,
	"expirydate":    colExpiryDate,
	"expiry_date":   colExpiryDate,
	"expiry date":   colExpiryDate,
	"expiry":        colExpiryDate,
	"category":      colCategory,
}

// ExportFilename retorna o nome do arquivo de exportação para a data informada
func ExportFilename(now time.Time) string {
	return exportPrefix + now.Format(product.DateLayout) + ".csv"
}

// Parse lê o conteúdo CSV e devolve os registros válidos na ordem do arquivo.
// Linhas em branco são descartadas, a primeira linha é o cabeçalho e linhas com
// número de colunas diferente do cabeçalho são ignoradas.
func Parse(data string) []Record {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return []Record{}
	}

	headerFields := splitLine(lines[0])
	columns := make([]column, len(headerFields))
	for i, h := range headerFields {
		columns[i] = headerSynonyms[strings.ToLower(strings.TrimSpace(h))]
	}

	records := make([]Record, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		if len(values) != len(columns) {
			continue
		}

		rec := Record{Category: product.DefaultCategory}
		for i, col := range columns {
			value := Sanitize(values[i])
			switch col {
			case colName:
				rec.Name = value
			case colSKU:
				rec.SKU = value
			case colBarcode:
				if value != "" {
					v := value
					rec.Barcode = &v
				}
			case colQuantity:
				rec.Quantity = parseInt(value)
			case colMinStock:
				minStock := parseInt(value)
				rec.MinStock = &minStock
			case colExpiryDate:
				if value != "" {
					v := value
					rec.ExpiryDate = &v
				}
			case colCategory:
				if category := parseCategory(values[i]); category != "" {
					rec.Category = category
				}
			}
		}

		if rec.Name != "" && rec.SKU != "" {
			records = append(records, rec)
		}
	}
	return records
}

// Export serializa os produtos com cabeçalho fixo, uma linha por produto
func Export(products []*product.Product) string {
	lines := make([]string, 0, len(products)+1)
	lines = append(lines, strings.Join(exportHeaders, ","))

	for _, p := range products {
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		fields := []string{
			p.Name,
			p.SKU,
			barcode,
			strconv.Itoa(p.Quantity),
			strconv.Itoa(p.MinStock),
			product.FormatDate(p.ExpiryDate),
			p.Category,
			p.CreatedAt.UTC().Format(time.RFC3339),
			p.UpdatedAt.UTC().Format(time.RFC3339),
		}
		for i, f := range fields {
			fields[i] = Escape(f)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// Escape envolve o valor em aspas quando ele contém vírgula, aspas ou quebra de
// linha, duplicando as aspas internas
func Escape(value string) string {
	if strings.ContainsAny(value, ",\"\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// Sanitize remove os caracteres < > ' & e espaços nas extremidades. Aspas só
// chegam aqui quando vieram escapadas ("") dentro de um campo entre aspas.
func Sanitize(value string) string {
	value = strings.NewReplacer("<", "", ">", "", "'", "", "&", "").Replace(value)
	return strings.TrimSpace(value)
}

// parseCategory reconhece as categorias conhecidas pelo valor bruto, já que
// algumas contêm &. Categorias livres passam pela sanitização comum.
func parseCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if product.IsKnownCategory(trimmed) {
		return product.CanonicalCategory(trimmed)
	}
	return product.CanonicalCategory(Sanitize(trimmed))
}

// splitLine separa os campos de uma linha. Aspas alternam o estado "dentro de
// aspas" e não fazem parte do valor; um par "" dentro de aspas vira uma aspa literal.
func splitLine(line string) []string {
	var (
		fields   []string
		current  strings.Builder
		inQuotes bool
	)
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"' && inQuotes && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	return append(fields, current.String())
}

// parseInt lê o inteiro no início do valor, como parseInt; sem dígitos retorna 0
func parseInt(value string) int {
	end := 0
	if end < len(value) && (value[end] == '-' || value[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0
	}
	return n
}

// ToAttributes converte um registro em atributos de produto, validando a data
func (r Record) ToAttributes() (product.Attributes, error) {
	attrs := product.Attributes{
		Name:     r.Name,
		SKU:      r.SKU,
		Barcode:  r.Barcode,
		Quantity: r.Quantity,
		MinStock: r.MinStock,
		Category: r.Category,
	}
	if r.ExpiryDate != nil {
		expiry, err := product.ParseDate(*r.ExpiryDate)
		if err != nil {
			return attrs, fmt.Errorf("data de validade inválida: %s", *r.ExpiryDate)
		}
		attrs.ExpiryDate = expiry
	}
	return attrs, nil
}
