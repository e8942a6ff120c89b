// Package validation wraps go-playground/validator and reports failures as a
// field-keyed message map using JSON field names.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"notes-api/internal/dto"
	"notes-api/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Messages overrides the default message for a "field.tag" pair,
// e.g. "tag_id.required".
type Messages map[string]string

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// OptionalText validates as its inner string; absent or null is empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if opt, ok := field.Interface().(dto.OptionalText); ok && opt.Value != nil {
			return *opt.Value
		}
		return nil
	}, dto.OptionalText{})

	return &Validator{v: v}
}

// Check returns the failing fields, or nil when s is valid.
func (v *Validator) Check(s any, overrides Messages) apperror.FieldErrors {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return apperror.FieldErrors{"body": {"The request body is invalid."}}
	}

	fields := apperror.FieldErrors{}
	for _, e := range validationErrs {
		key := e.Field() + "." + e.Tag()
		if msg, ok := overrides[key]; ok {
			fields.Add(e.Field(), msg)
			continue
		}
		fields.Add(e.Field(), friendlyMessage(e))
	}
	return fields
}

// Validate is Check wrapped into a 422 domain error.
func (v *Validator) Validate(s any, overrides Messages) error {
	if fields := v.Check(s, overrides); len(fields) > 0 {
		return apperror.Validation(fields)
	}
	return nil
}

// Attribute turns a JSON field name into the wording used in messages.
func Attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func friendlyMessage(e validator.FieldError) string {
	attr := Attribute(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, e.Param())
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, e.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}
