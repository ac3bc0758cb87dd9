package validators

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by all area validators.
var Validate = validator.New()

// Errors turns validator failures into the field->message map the
// response envelope carries.
func Errors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out["body"] = "Invalid request body!"
		return out
	}

	for _, fe := range fieldErrs {
		out[fieldName(fe.Field())] = message(fe)
	}
	return out
}

func fieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required!"
	case "email":
		return "Invalid email!"
	case "min":
		return "Must be at least " + fe.Param() + " characters long!"
	case "max":
		return "Must be at most " + fe.Param() + " characters long!"
	case "eqfield":
		return "Passwords do not match!"
	case "gte":
		return "Must be at least " + fe.Param() + "!"
	case "lte":
		return "Must be at most " + fe.Param() + "!"
	}
	return "Invalid value!"
}
