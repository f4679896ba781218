package serverutils

import (
	"errors"

	"gymkaana-be/internal/pkg/apperror"
	"gymkaana-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned further down the chain as
// the standard response envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		return writeError(ctx, err, log)
	}
}

// ErrorHandler is installed as the fiber ErrorHandler for errors raised
// outside the middleware chain, such as unknown routes.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		return writeError(ctx, err, log)
	}
}

func writeError(ctx *fiber.Ctx, err error, log logger.ILogger) error {
	if appErr, ok := apperror.As(err); ok {
		res := ErrorResponse(appErr.Status(), appErr.Message)
		res.MissingFields = appErr.Fields
		res.RequiresChat = appErr.RequiresChat

		if appErr.Kind == apperror.KindInternal {
			if log != nil {
				log.Error("HTTP", appErr.Error(), map[string]interface{}{
					"method": ctx.Method(),
					"path":   ctx.Path(),
				})
			}
			res.Message = "Internal server error"
		}
		return ctx.Status(res.Code).JSON(res)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
	}

	if log != nil {
		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"method": ctx.Method(),
			"path":   ctx.Path(),
			"error":  err.Error(),
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).
		JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
}
