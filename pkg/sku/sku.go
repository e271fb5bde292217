// Package sku gera códigos curtos de produto no formato PREFIXO-XXXXXX.
package sku

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	codeLength     = 6
	timestampChars = 3
	alphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	fallbackPrefix = "GEN"
)

var prefixes = map[string]string{
	"General":           "GEN",
	"Electronics":       "ELE",
	"Food & Beverage":   "FNB",
	"Clothing":          "CLO",
	"Health & Beauty":   "HNB",
	"Home & Garden":     "HNG",
	"Office Supplies":   "OFF",
	"Sports & Outdoors": "SPO",
	"Toys & Games":      "TOY",
	"Other":             "OTH",
}

// Generator gera SKUs a partir de um relógio e de uma fonte aleatória
type Generator struct {
	now    func() time.Time
	random func(n int) int
}

// NewGenerator cria um gerador com relógio do sistema e crypto/rand
func NewGenerator() *Generator {
	return &Generator{now: time.Now, random: cryptoIntn}
}

var defaultGenerator = NewGenerator()

// Generate gera um SKU para a categoria usando o gerador padrão
func Generate(category string) string {
	return defaultGenerator.Generate(category)
}

// Prefix retorna o prefixo de três letras da categoria, GEN para categorias desconhecidas
func Prefix(category string) string {
	if p, ok := prefixes[strings.TrimSpace(category)]; ok {
		return p
	}
	return fallbackPrefix
}

// Generate gera um SKU: prefixo da categoria, hífen e seis caracteres formados
// pelo final do timestamp em base 36 completado com caracteres aleatórios
func (g *Generator) Generate(category string) string {
	stamp := strings.ToUpper(strconv.FormatInt(g.now().UnixMilli(), 36))
	if len(stamp) > timestampChars {
		stamp = stamp[len(stamp)-timestampChars:]
	}

	var b strings.Builder
	b.WriteString(stamp)
	for b.Len() < codeLength {
		b.WriteByte(alphabet[g.random(len(alphabet))])
	}

	return Prefix(category) + "-" + b.String()[:codeLength]
}

func cryptoIntn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return int(time.Now().UnixNano() % int64(n))
	}
	return int(v.Int64())
}
