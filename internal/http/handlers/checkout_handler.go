package handlers

import (
	"github.com/gofiber/fiber/v2"

	"cafepos/internal/checkout"
	"cafepos/internal/domain"
	applog "cafepos/internal/log"
	"cafepos/internal/services"
	"cafepos/internal/validate"
)

type CheckoutHandler struct {
	Checkout *services.CheckoutService
}

type checkoutReq struct {
	Tendered string `json:"tendered" form:"tendered"`
}

func resultJSON(r checkout.Result) fiber.Map {
	failed := r.Failed
	if failed == nil {
		failed = []string{}
	}
	return fiber.Map{
		"total":    money(r.Total),
		"tendered": money(r.Tendered),
		"change":   money(r.Change),
		"recorded": len(r.Recorded),
		"failed":   failed,
	}
}

// POST /api/v1/checkout/quote
func (h *CheckoutHandler) Quote(c *fiber.Ctx) error {
	total, err := h.Checkout.Quote(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "checkout.quote", err)
	}
	return c.JSON(fiber.Map{"total": money(total), "state": checkout.StateAwaiting})
}

// POST /api/v1/checkout/cancel
func (h *CheckoutHandler) Cancel(c *fiber.Ctx) error {
	v, err := h.Checkout.Cancel(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "checkout.cancel", err)
	}
	applog.Audit(c, "checkout.cancel", map[string]any{"total": money(v.Total)})
	return c.JSON(cartJSON(v))
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	var req checkoutReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	tendered, ok := validate.Tendered(req.Tendered)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "tendered"})
		return fail(c, "checkout", domain.NewValidationError("tendered", "must be a non-negative amount with at most 2 decimals", req.Tendered))
	}

	res, err := h.Checkout.Checkout(c.UserContext(), currentSession(c), tendered)
	if err != nil {
		if domain.IsPartialPersistError(err) {
			applog.Error(c, "checkout.partial", err, map[string]any{
				"recorded": len(res.Recorded),
				"failed":   res.Failed,
			})
			body := resultJSON(res)
			body["error"] = "some lines could not be recorded; they remain in the cart"
			return c.JSON(body)
		}
		return fail(c, "checkout", err)
	}

	applog.Audit(c, "checkout.paid", map[string]any{
		"total":    money(res.Total),
		"tendered": money(res.Tendered),
		"change":   money(res.Change),
		"lines":    len(res.Recorded),
	})
	return c.JSON(resultJSON(res))
}
