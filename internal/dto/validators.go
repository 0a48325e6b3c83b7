package dto

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidators wires decimal-aware rules into gin's binding
// engine. Safe to call more than once.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterCustomTypeFunc(decimalAsString, decimal.Decimal{})
	v.RegisterValidation("dgt0", decimalGreaterThanZero)
}

// decimalAsString exposes decimal fields to the validator as their string form.
func decimalAsString(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

// decimalGreaterThanZero implements the "dgt0" tag.
func decimalGreaterThanZero(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(s)
	return err == nil && d.GreaterThan(decimal.Zero)
}
