package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/sanjay123-Ad/AI-Backend/internal/service"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"
)

// ErrorHandlerMiddleware maps service errors onto HTTP statuses in one place
// so controllers can return them unwrapped.
//
// The ownership sentinel deliberately maps to 403 with the same message for
// both "no such session" and "someone else's session"; the status must not
// reveal which one happened.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if errors.Is(err, service.ErrSessionNotFound) {
			return ctx.Status(fiber.StatusForbidden).JSON(ErrorResponse(fiber.StatusForbidden, err.Error()))
		}

		if errors.Is(err, service.ErrEmptyHistory) {
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse(fiber.StatusUnprocessableEntity, err.Error()))
		}

		var provErr *llm.ProviderError
		if errors.As(err, &provErr) {
			return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse(fiber.StatusBadGateway, "completion request failed"))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
