package handlers

import (
	"errors"

	applog "cafepos/internal/log"
	"cafepos/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler logs unhandled errors and shows a friendly message without
// internal details.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		code = fe.Code
	}
	applog.Error(c, "server.error", err, map[string]any{"status": code})
	msg := "Something went wrong. Please try again."
	if code == fiber.StatusNotFound {
		msg = "Page not found"
	}
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}

// Register mounts every route. loginLimit, when non-nil, guards POST /login.
func Register(app *fiber.App, d *Deps, loginLimit fiber.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	login := []fiber.Handler{d.AuthHandler.Login}
	if loginLimit != nil {
		login = append([]fiber.Handler{loginLimit}, login...)
	}
	app.Post("/login", login...)
	app.Post("/logout", d.AuthHandler.Logout)

	sell := RequireAction(services.ActionSell)
	manage := RequireAction(services.ActionManageCatalog)
	reports := RequireAction(services.ActionViewReports)

	api := app.Group("/api/v1", RequireSession(d.Auth, d.Tickets))
	api.Get("/me", d.AuthHandler.Me)
	api.Get("/products", d.ProductHandler.List)
	api.Get("/products/:name", d.ProductHandler.Find)

	api.Get("/cart", sell, d.CartHandler.View)
	api.Post("/cart", sell, d.CartHandler.Add)
	api.Post("/cart/decrement", sell, d.CartHandler.Decrement)
	api.Delete("/cart/lines/:name", sell, d.CartHandler.RemoveLine)
	api.Delete("/cart", sell, d.CartHandler.Clear)

	api.Post("/checkout/quote", sell, d.CheckoutHandler.Quote)
	api.Post("/checkout/cancel", sell, d.CheckoutHandler.Cancel)
	api.Post("/checkout", sell, d.CheckoutHandler.Place)

	api.Post("/admin/products", manage, d.ProductHandler.Add)
	api.Put("/admin/products/:id", manage, d.ProductHandler.Update)
	api.Delete("/admin/products/:id", manage, d.ProductHandler.Delete)
	api.Get("/admin/sales", reports, d.ReportHandler.ListSales)
	api.Get("/admin/closeout", reports, d.ReportHandler.CloseOut)

	pages := app.Group("/admin", RequireSession(d.Auth, d.Tickets), reports)
	pages.Get("/report", d.ReportHandler.ReportPage)
	pages.Get("/closeout", d.ReportHandler.CloseOutPage)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})
}
