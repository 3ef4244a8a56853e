package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"cafepos/internal/domain"
	"cafepos/internal/services"
)

// Money goes over the wire as a fixed two-decimal string.
func money(d decimal.Decimal) string { return d.StringFixed(2) }

func productJSON(p domain.Product) fiber.Map {
	return fiber.Map{"id": p.ID, "name": p.Name, "price": money(p.Price)}
}

func cartJSON(v services.CartView) fiber.Map {
	lines := make([]fiber.Map, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, fiber.Map{
			"product_name": l.ProductName,
			"qty":          l.Qty,
			"unit_price":   money(l.UnitPrice),
			"subtotal":     money(l.Subtotal),
		})
	}
	return fiber.Map{"lines": lines, "total": money(v.Total), "state": v.State}
}

func saleJSON(r domain.SaleRecord) fiber.Map {
	return fiber.Map{
		"id":           r.ID,
		"product_name": r.ProductName,
		"qty":          r.Qty,
		"unit_price":   money(r.UnitPrice),
		"subtotal":     money(r.Subtotal()),
		"sold_at":      r.SoldAt.Format(time.RFC3339),
	}
}
