package serverutils

import (
	"errors"

	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation, apperror.KindUnsupportedFormat, apperror.KindInsufficientText:
		return fiber.StatusBadRequest
	case apperror.KindConflict:
		return fiber.StatusConflict
	case apperror.KindExternalService, apperror.KindMalformedAnalysis:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandlerMiddleware renders any error returned down the chain as an ErrorBody.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return WriteError(ctx, log, err)
	}
}

func WriteError(ctx *fiber.Ctx, log logger.ILogger, err error) error {
	var (
		validationErrs ValidationErrors
		fiberErr       *fiber.Error
		appErr         *apperror.Error
	)

	switch {
	case errors.As(err, &validationErrs):
		body := ErrorResponse(fiber.StatusBadRequest, "Validation failed")
		body.Kind = string(apperror.KindValidation)
		body.Errors = validationErrs
		return ctx.Status(fiber.StatusBadRequest).JSON(body)

	case errors.As(err, &appErr):
		status := StatusFor(appErr.Kind)
		body := ErrorResponse(status, appErr.Message)
		body.Kind = string(appErr.Kind)
		if status >= fiber.StatusInternalServerError || status == fiber.StatusBadGateway {
			log.Error("HTTP", appErr.Message, map[string]interface{}{
				"path":  ctx.Path(),
				"kind":  string(appErr.Kind),
				"error": err.Error(),
			})
		}
		return ctx.Status(status).JSON(body)

	case errors.As(err, &fiberErr):
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))

	default:
		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
