package http

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate instancia compartida del validador de structs (tags `validate`).
var validate = validator.New()

// validationMessage arma un mensaje legible a partir de los errores de validación.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "entrada inválida"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+": falla la regla '"+fe.Tag()+"'")
	}
	return strings.Join(parts, "; ")
}
