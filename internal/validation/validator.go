// Package validation wraps go-playground/validator with readable errors.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Struct validates v against its `validate` tags and returns the first
// failure as "Field: reason"
func Struct(v any) error {
	if v == nil {
		return errors.New("value cannot be nil")
	}
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// Var validates a single value against a tag expression
func Var(field string, v any, tag string) error {
	if err := validate.Var(v, tag); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			return describe(field, validationErrs[0])
		}
		return err
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	// Report the first failure only
	e := validationErrs[0]
	return describe(e.Namespace(), e)
}

func describe(field string, e validator.FieldError) error {
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "min":
		return fmt.Errorf("%s: must be at least %s", field, e.Param())
	case "max":
		return fmt.Errorf("%s: must not exceed %s", field, e.Param())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s]", field, e.Param())
	case "url", "http_url":
		return fmt.Errorf("%s: must be a valid URL", field)
	case "hostname_port":
		return fmt.Errorf("%s: must be host:port", field)
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
