package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"cafepos/internal/checkout"
	"cafepos/internal/domain"
	applog "cafepos/internal/log"
)

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	var te *checkout.TransitionError
	switch {
	case domain.IsValidationError(err),
		domain.IsInsufficientPaymentError(err),
		errors.Is(err, domain.ErrEmptyCart):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrBadCredentials),
		errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case domain.IsProductNotFoundError(err),
		domain.IsLineNotFoundError(err):
		return fiber.StatusNotFound
	case domain.IsDuplicateProductError(err),
		errors.Is(err, domain.ErrCheckoutInProgress),
		errors.As(err, &te):
		return fiber.StatusConflict
	case domain.IsStorageError(err):
		return fiber.StatusServiceUnavailable
	}
	return fiber.StatusInternalServerError
}

// fail logs err under action and writes it as a JSON error body. Storage
// and unexpected errors are not echoed to the client.
func fail(c *fiber.Ctx, action string, err error) error {
	code := statusFor(err)
	c.Status(code)
	msg := err.Error()
	switch {
	case code == fiber.StatusServiceUnavailable:
		applog.Error(c, action+".fail", err, nil)
		msg = "storage unavailable, try again"
	case code >= fiber.StatusInternalServerError:
		applog.Error(c, action+".fail", err, nil)
		msg = "something went wrong"
	case code == fiber.StatusUnauthorized || code == fiber.StatusForbidden:
		applog.Security(c, action+".denied", map[string]any{"reason": msg})
	default:
		applog.Info(c, action+".rejected", map[string]any{"reason": msg})
	}
	return c.JSON(fiber.Map{"error": msg})
}
