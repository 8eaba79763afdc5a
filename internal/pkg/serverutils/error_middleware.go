// FILE: internal/pkg/serverutils/error_middleware.go
package serverutils

import (
	"errors"

	"github.com/Prajankrish/Lex-AI/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses. Handlers
// return domain errors as-is; everything crossing this layer leaves as the
// uniform error envelope.
//
// Pipeline errors that produce a reply (generation timeouts, unparseable
// model output) never reach this middleware; the chat service converts them
// to transient or degraded responses first.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var (
			validationErr *ValidationError
			embeddingErr  *dto.EmbeddingError
			notFoundErr   *dto.NotFoundError
			limitErr      *dto.LimitExceededError
			notReadyErr   *dto.IndexNotReadyError
			budgetErr     *dto.BudgetExceededError
			fiberErr      *fiber.Error
		)

		switch {
		case errors.As(err, &validationErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponseWithDetails(400, "Validation failed", validationErr.Fields))
		case errors.As(err, &embeddingErr):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, embeddingErr.Error()))
		case errors.As(err, &notFoundErr):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, notFoundErr.Error()))
		case errors.As(err, &limitErr):
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponseWithDetails(429, "Daily chat limit reached", limitErr))
		case errors.As(err, &notReadyErr):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(503, notReadyErr.Error()))
		case errors.As(err, &budgetErr):
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, budgetErr.Error()))
		case errors.As(err, &fiberErr):
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
	}
}
