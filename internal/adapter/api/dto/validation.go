package dto

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/hugohenrick/erp-estoque/internal/domain/product"
)

var registerOnce sync.Once

// RegisterValidators registra no binding do gin as tags "sku" e "barcode"
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("sku", func(fl validator.FieldLevel) bool {
			return product.ValidSKU(strings.TrimSpace(fl.Field().String()))
		})
		_ = v.RegisterValidation("barcode", func(fl validator.FieldLevel) bool {
			return product.ValidBarcode(strings.TrimSpace(fl.Field().String()))
		})
	})
}
