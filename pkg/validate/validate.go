package validate

import (
	"github.com/go-playground/validator/v10"
)

// instancia única; validator cachea la metadata de structs y es seguro para uso concurrente.
var v = validator.New(validator.WithRequiredStructEnabled())

// Struct valida un struct según sus tags `validate`.
func Struct(s interface{}) error {
	return v.Struct(s)
}
