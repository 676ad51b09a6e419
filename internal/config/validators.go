package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/gogen/pkg/validator"
)

// registerExclusive adds custom validators for the key sources: "exclusive" ensuring two
// fields are not both set, and "keysource" ensuring at least one of them is.
// It registers both the validation logic and a human-readable error message,
// and reports fields by their "label" tag so messages name the flag.
func registerExclusive(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"exclusive",
		validateExclusive,
		"{0} is mutually exclusive with other key sources",
	); err != nil {
		return fmt.Errorf("registering exclusive validation: %w", err)
	}

	if err := validator.RegisterValidationAndTranslation(
		"keysource",
		validateKeySource,
		"a key is required: use {0}, --key-file or --prompt",
	); err != nil {
		return fmt.Errorf("registering keysource validation: %w", err)
	}

	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	return nil
}

// validateExclusive checks that the field and the named sibling are not both set.
func validateExclusive(fl validator.FieldLevel) bool {
	field := fl.Field()
	other := fl.Parent().FieldByName(fl.Param())

	if !field.IsValid() || !other.IsValid() {
		return true
	}

	return field.IsZero() || other.IsZero()
}

// validateKeySource checks that the field or one of the space-separated siblings is set.
func validateKeySource(fl validator.FieldLevel) bool {
	if !fl.Field().IsZero() {
		return true
	}

	for _, name := range strings.Fields(fl.Param()) {
		if other := fl.Parent().FieldByName(name); other.IsValid() && !other.IsZero() {
			return true
		}
	}

	return false
}
