package serverutils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"reflecto-be/internal/pkg/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field names by their json tag so error messages match the
	// wire format callers actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateRequest checks required fields in struct declaration order and
// fails fast on the first violation, so the reported field is
// deterministic for a given request shape.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		return apperror.Validation(verrs[0].Field())
	}
	return apperror.Validation("request")
}
