package handlers

import (
	"time"

	applog "cafepos/internal/log"
	"cafepos/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Sales *services.SalesService
}

// GET /api/v1/admin/sales
func (h *ReportHandler) ListSales(c *fiber.Ctx) error {
	rep, err := h.Sales.Report(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "admin.sales", err)
	}
	out := make([]fiber.Map, 0, len(rep.Sales))
	for _, r := range rep.Sales {
		out = append(out, saleJSON(r))
	}
	return c.JSON(fiber.Map{"sales": out, "total": money(rep.Total)})
}

// GET /api/v1/admin/closeout
func (h *ReportHandler) CloseOut(c *fiber.Ctx) error {
	cc, err := h.Sales.CloseOut(c.UserContext(), currentSession(c))
	if err != nil {
		return fail(c, "admin.closeout", err)
	}
	applog.Audit(c, "admin.closeout", map[string]any{"lines": cc.Lines, "revenue": money(cc.Revenue)})
	body := fiber.Map{
		"lines":       cc.Lines,
		"items":       cc.Items,
		"revenue":     money(cc.Revenue),
		"top_product": cc.TopProduct,
		"closed_at":   cc.ClosedAt.Format(time.RFC3339),
	}
	if !cc.FirstSaleAt.IsZero() {
		body["first_sale_at"] = cc.FirstSaleAt.Format(time.RFC3339)
	}
	return c.JSON(body)
}

// GET /admin/report
func (h *ReportHandler) ReportPage(c *fiber.Ctx) error {
	rep, err := h.Sales.Report(c.UserContext(), currentSession(c))
	if err != nil {
		applog.Error(c, "admin.report.fail", err, nil)
		return c.Status(statusFor(err)).Render("notfound", fiber.Map{"Message": "Sales report unavailable"})
	}
	return render(c, "report", fiber.Map{"Sales": rep.Sales, "Total": rep.Total})
}

// GET /admin/closeout
func (h *ReportHandler) CloseOutPage(c *fiber.Ctx) error {
	cc, err := h.Sales.CloseOut(c.UserContext(), currentSession(c))
	if err != nil {
		applog.Error(c, "admin.closeout.fail", err, nil)
		return c.Status(statusFor(err)).Render("notfound", fiber.Map{"Message": "Close-out unavailable"})
	}
	return render(c, "closeout", fiber.Map{"C": cc})
}
