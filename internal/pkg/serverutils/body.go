package serverutils

import (
	"encoding/json"
	"errors"

	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ParseBody decodes a JSON body into out. An empty body leaves out untouched
// so validation reports the missing fields; a value of the wrong type is
// reported against its field.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) == 0 {
		return nil
	}

	err := ctx.BodyParser(out)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperror.ValidationField(field, "The "+validation.Attribute(field)+" field is invalid.")
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return fiber.NewError(fiber.StatusBadRequest, "Malformed JSON body.")
	}

	return err
}
