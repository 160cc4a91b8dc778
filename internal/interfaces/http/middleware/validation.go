package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// pkPhonePattern matches Pakistani mobile numbers: the local 03XXXXXXXXX
// form or the international +923XXXXXXXXX form.
var pkPhonePattern = regexp.MustCompile(`^(03\d{9}|\+923\d{9})$`)

// IsPakistaniPhone reports whether the value is a well-formed Pakistani
// mobile number
func IsPakistaniPhone(phone string) bool {
	return pkPhonePattern.MatchString(phone)
}

// RegisterValidators installs custom binding validators on gin's validator
// engine. Must run before any request is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("pk_phone", func(fl validator.FieldLevel) bool {
		return IsPakistaniPhone(fl.Field().String())
	})
}
