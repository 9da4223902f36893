package model

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Call once at startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("rut", validateRut)
	}
}

// validateRut checks a Chilean RUT in 12345678-5 form (dots optional)
// against its mod-11 check digit.
func validateRut(fl validator.FieldLevel) bool {
	return ValidRut(fl.Field().String())
}

func ValidRut(rut string) bool {
	rut = strings.ToUpper(strings.ReplaceAll(rut, ".", ""))
	parts := strings.Split(rut, "-")
	if len(parts) != 2 || len(parts[0]) < 1 || len(parts[1]) != 1 {
		return false
	}
	body, check := parts[0], parts[1][0]

	sum := 0
	factor := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return false
		}
		sum += int(c-'0') * factor
		factor++
		if factor > 7 {
			factor = 2
		}
	}

	expected := 11 - sum%11
	switch expected {
	case 11:
		return check == '0'
	case 10:
		return check == 'K'
	default:
		return check == byte('0'+expected)
	}
}
