package handlers

import (
	"strings"

	"cafepos/internal/domain"
	applog "cafepos/internal/log"
	"cafepos/internal/services"

	"github.com/gofiber/fiber/v2"
)

const sessionKey = "session"

func currentSession(c *fiber.Ctx) *domain.Session {
	s, _ := c.Locals(sessionKey).(*domain.Session)
	return s
}

// deny answers API routes with JSON and pages with the notfound template.
func deny(c *fiber.Ctx, code int, msg string) error {
	if strings.HasPrefix(c.Path(), "/api/") {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
	return c.Status(code).Render("notfound", fiber.Map{"Message": msg})
}

// RequireSession resolves the sid cookie to a logged-in session. A sid that no
// longer resolves loses its ticket.
func RequireSession(auth *services.AuthService, tickets *services.TicketBook) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return deny(c, fiber.StatusUnauthorized, "login required")
		}
		sess, err := auth.CurrentSession(c.UserContext(), sid)
		if err != nil {
			if domain.IsStorageError(err) {
				applog.Error(c, "session.lookup.fail", err, nil)
				return deny(c, fiber.StatusServiceUnavailable, "storage unavailable, try again")
			}
			tickets.Drop(sid)
			applog.Security(c, "access.denied.session", map[string]any{"sid": sid})
			return deny(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// RequireAction lets the request through only if the session's role grants a.
func RequireAction(a services.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := currentSession(c)
		if err := services.Authorize(sess, a); err != nil {
			applog.Security(c, "access.denied", map[string]any{"action": string(a), "role": string(sess.Role())})
			return deny(c, statusFor(err), "access denied")
		}
		return c.Next()
	}
}
