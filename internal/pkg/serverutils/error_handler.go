package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"reflecto-be/internal/pkg/apperror"
	"reflecto-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware maps taxonomy errors to transport responses.
// Unknown errors are treated as store failures: logged with their cause,
// returned to the caller as a generic 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if appErr, ok := apperror.As(err); ok {
			status := statusFor(appErr.Kind)
			if appErr.Kind == apperror.KindStoreUnavailable {
				log.Error("http", "store failure", map[string]interface{}{
					"path":  ctx.Path(),
					"error": appErr.Error(),
				})
			}
			body := fiber.Map{
				"success": false,
				"code":    status,
				"message": appErr.SafeMessage(),
			}
			if appErr.Field != "" {
				body["field"] = appErr.Field
			}
			return ctx.Status(status).JSON(body)
		}

		// Fiber routing errors (404 on unknown path etc.) keep their code.
		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		log.Error("http", "unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    fiber.StatusInternalServerError,
			"message": "internal server error",
		})
	}
}

func statusFor(kind apperror.Kind) int {
	switch kind {
	case apperror.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case apperror.KindNotFound:
		return fiber.StatusNotFound
	case apperror.KindValidation:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
