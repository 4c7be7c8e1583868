// Package validation adapts go-playground/validator to echo's Validator
// interface so handlers can call c.Validate on bound DTOs.
package validation

import (
	"github.com/go-playground/validator/v10"
)

type StructValidator struct {
	v *validator.Validate
}

func New() *StructValidator {
	return &StructValidator{v: validator.New()}
}

func (sv *StructValidator) Validate(i interface{}) error {
	return sv.v.Struct(i)
}
