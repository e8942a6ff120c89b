package serverutils

import (
	"errors"

	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

const serverErrorMessage = "Server Error."

// ErrorHandler renders every error a handler returns. Domain errors carry
// their own status; anything unexpected is logged and hidden behind a 500.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Code != apperror.CodeInternal {
			return ctx.Status(appErr.HTTPStatus()).JSON(ErrorResponse{
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{Message: fiberErr.Message})
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method":     ctx.Method(),
			"path":       ctx.Path(),
			"request_id": ctx.Locals("requestid"),
			"error":      err,
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: serverErrorMessage})
	}
}
