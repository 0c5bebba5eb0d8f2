package service

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that no longer fits the NUMERIC(12,2) price column.
var maxPrice = decimal.New(1, 10)

// NewValidator returns a validator that knows the "price" tag used by ProductDetails.
func NewValidator() *validator.Validate {
	v := validator.New()
	// registration only fails for an empty tag or a nil function
	_ = v.RegisterValidation("price", validatePrice)
	return v
}

// validatePrice accepts any decimal, negatives included, whose magnitude fits the price column.
func validatePrice(fl validator.FieldLevel) bool {
	switch p := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return p.Abs().Round(2).LessThan(maxPrice)
	case *decimal.Decimal:
		return p == nil || p.Abs().Round(2).LessThan(maxPrice)
	default:
		return false
	}
}
