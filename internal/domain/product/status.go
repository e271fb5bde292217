package product

import (
	"math"
	"time"
)

// StockStatus representa a situação do estoque de um produto
type StockStatus string

// ExpiryStatus representa a situação da validade de um produto
type ExpiryStatus string

const (
	StockOut      StockStatus = "out"
	StockCritical StockStatus = "critical"
	StockLow      StockStatus = "low"
	StockHealthy  StockStatus = "healthy"
)

const (
	ExpiryNone         ExpiryStatus = "none"
	ExpiryExpired      ExpiryStatus = "expired"
	ExpiryExpiringSoon ExpiryStatus = "expiring-soon"
	ExpiryFresh        ExpiryStatus = "fresh"
)

// ExpiringSoonDays é a janela, em dias, em que um produto é considerado perto do vencimento
const ExpiringSoonDays = 7

// Severity ordena os status do mais grave (3) ao saudável (0)
func (s StockStatus) Severity() int {
	switch s {
	case StockOut:
		return 3
	case StockCritical:
		return 2
	case StockLow:
		return 1
	default:
		return 0
	}
}

// ClassifyStock classifica a quantidade em relação ao estoque mínimo.
// A primeira regra satisfeita vence: zerado, até 25% do mínimo, até o mínimo, saudável.
func ClassifyStock(quantity, minStock int) StockStatus {
	switch {
	case quantity == 0:
		return StockOut
	case quantity*4 <= minStock:
		return StockCritical
	case quantity <= minStock:
		return StockLow
	default:
		return StockHealthy
	}
}

// DaysUntilExpiry retorna a diferença em dias de calendário entre hoje e a validade.
// O segundo retorno é false quando não há data de validade.
func DaysUntilExpiry(expiry *time.Time, now time.Time) (int, bool) {
	if expiry == nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	target := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	days := math.Ceil(target.Sub(today).Hours() / 24)
	return int(days), true
}

// ClassifyExpiry classifica a data de validade em relação à data atual
func ClassifyExpiry(expiry *time.Time, now time.Time) ExpiryStatus {
	days, ok := DaysUntilExpiry(expiry, now)
	switch {
	case !ok:
		return ExpiryNone
	case days < 0:
		return ExpiryExpired
	case days <= ExpiringSoonDays:
		return ExpiryExpiringSoon
	default:
		return ExpiryFresh
	}
}
