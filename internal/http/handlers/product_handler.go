package handlers

import (
	"net/url"

	"cafepos/internal/log"
	"cafepos/internal/services"
	"cafepos/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productReq struct {
	Name  string `json:"name" form:"name"`
	Price string `json:"price" form:"price"`
}

// GET /api/v1/products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	ps, err := h.Catalog.ListProducts(c.UserContext())
	if err != nil {
		return fail(c, "products.list", err)
	}
	out := make([]fiber.Map, 0, len(ps))
	for _, p := range ps {
		out = append(out, productJSON(p))
	}
	return c.JSON(fiber.Map{"products": out})
}

// GET /api/v1/products/:name
func (h *ProductHandler) Find(c *fiber.Ctx) error {
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		log.Security(c, "validation.fail", map[string]any{"field": "name"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product name"})
	}
	p, err := h.Catalog.FindByName(c.UserContext(), name)
	if err != nil {
		return fail(c, "products.find", err)
	}
	return c.JSON(productJSON(p))
}

// POST /api/v1/admin/products
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := h.Catalog.AddProduct(c.UserContext(), currentSession(c), req.Name, req.Price)
	if err != nil {
		return fail(c, "admin.products.add", err)
	}
	log.Audit(c, "admin.products.add", map[string]any{"product_id": p.ID, "name": p.Name, "price": money(p.Price)})
	return c.Status(fiber.StatusCreated).JSON(productJSON(p))
}

// PUT /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	var req productReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	p, err := h.Catalog.UpdateProduct(c.UserContext(), currentSession(c), id, req.Name, req.Price)
	if err != nil {
		return fail(c, "admin.products.update", err)
	}
	log.Audit(c, "admin.products.update", map[string]any{"product_id": p.ID, "name": p.Name, "price": money(p.Price)})
	return c.JSON(productJSON(p))
}

// DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}
	if err := h.Catalog.DeleteProduct(c.UserContext(), currentSession(c), id); err != nil {
		return fail(c, "admin.products.delete", err)
	}
	log.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
