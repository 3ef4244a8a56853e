package handlers

import (
	"net/url"

	"cafepos/internal/domain"
	"cafepos/internal/log"
	"cafepos/internal/services"
	"cafepos/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

type lineReq struct {
	Name string `json:"name" form:"name"`
	Qty  *int   `json:"qty" form:"qty"`
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	v, err := h.Cart.View(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "cart.view", err)
	}
	return c.JSON(cartJSON(v))
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req lineReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	// absent qty means one unit; an explicit 0 is rejected
	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}
	if !validate.QtyInRange(qty) {
		log.Security(c, "validation.fail", map[string]any{"field": "qty", "value": qty})
		return fail(c, "cart.add", domain.NewValidationError("qty", "must be between 1 and 999", qty))
	}
	v, err := h.Cart.Add(c.UserContext(), currentSession(c), req.Name, qty)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	return c.JSON(cartJSON(v))
}

// POST /api/v1/cart/decrement
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	var req lineReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	v, err := h.Cart.Decrement(c.UserContext(), currentSession(c), req.Name)
	if err != nil {
		return fail(c, "cart.decrement", err)
	}
	return c.JSON(cartJSON(v))
}

// DELETE /api/v1/cart/lines/:name
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product name"})
	}
	v, err := h.Cart.RemoveLine(c.UserContext(), currentSession(c), name)
	if err != nil {
		return fail(c, "cart.remove", err)
	}
	return c.JSON(cartJSON(v))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	v, err := h.Cart.Clear(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "cart.clear", err)
	}
	return c.JSON(cartJSON(v))
}
