package handlers

import (
	"time"

	"cafepos/internal/domain"
	"cafepos/internal/log"
	"cafepos/internal/services"
	"cafepos/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AuthHandler struct {
	Auth    *services.AuthService
	Tickets *services.TicketBook
}

type loginReq struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func setSID(c *fiber.Ctx, sid string) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
	})
}

func userJSON(u *domain.User) fiber.Map {
	return fiber.Map{"id": u.ID, "username": u.Username, "name": u.Name, "role": u.Role}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_body"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}
	if !validate.Password(req.Password) {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	// fresh sid per login; the previous one is retired below
	sid := uuid.NewString()
	sess, err := h.Auth.Login(c.UserContext(), sid, username, req.Password)
	if err != nil {
		if domain.IsStorageError(err) {
			return fail(c, "auth.login", err)
		}
		log.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid username or password"})
	}

	if old := c.Cookies("sid"); old != "" {
		h.Tickets.Drop(old)
		if err := h.Auth.Logout(c.UserContext(), old); err != nil {
			log.Error(c, "auth.login.unbind_old", err, nil)
		}
	}
	setSID(c, sid)

	log.Audit(c, "auth.login.success", map[string]any{"username": username, "role": string(sess.Role())})
	return c.JSON(fiber.Map{"user": userJSON(sess.User)})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := c.Cookies("sid")
	if sid != "" {
		if err := h.Auth.Logout(c.UserContext(), sid); err != nil {
			return fail(c, "auth.logout", err)
		}
		h.Tickets.Drop(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.JSON(fiber.Map{"ok": true})
}

// GET /api/v1/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	sess := currentSession(c)
	can := fiber.Map{
		"sell":           services.Can(sess, services.ActionSell),
		"manage_catalog": services.Can(sess, services.ActionManageCatalog),
		"view_reports":   services.Can(sess, services.ActionViewReports),
	}
	return c.JSON(fiber.Map{"user": userJSON(sess.User), "can": can})
}
