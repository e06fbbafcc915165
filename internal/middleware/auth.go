package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"ranklens/internal/models"
)

// UserGetter resolves a session subject to a user record.
type UserGetter interface {
	GetUserBySub(ctx context.Context, sub string) (*models.User, error)
}

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db UserGetter
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(db UserGetter) *AuthMiddleware {
	return &AuthMiddleware{db: db}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user := m.sessionUser(c)
	if user == nil {
		return c.Redirect().To("/auth/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAuthAPI ensures the user is authenticated, returning 401 JSON
// instead of redirecting. Used on the /api routes.
func (m *AuthMiddleware) RequireAuthAPI(c fiber.Ctx) error {
	user := m.sessionUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the authenticated user has the admin role. Must
// run after RequireAuth or RequireAuthAPI.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user := UserFromCtx(c)
	if user == nil || !user.IsAdmin() {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "admin access required",
		})
	}
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if user := m.sessionUser(c); user != nil {
		c.Locals("user", user)
	}
	return c.Next()
}

// sessionUser resolves the session to a user, destroying stale sessions
// whose subject no longer exists.
func (m *AuthMiddleware) sessionUser(c fiber.Ctx) *models.User {
	sess := session.FromContext(c)
	if sess == nil {
		return nil
	}

	sub, ok := sess.Get("user_sub").(string)
	if !ok || sub == "" {
		return nil
	}

	user, err := m.db.GetUserBySub(c.Context(), sub)
	if err != nil {
		sess.Destroy()
		return nil
	}
	return user
}

// UserFromCtx returns the authenticated user placed in locals by the
// auth middleware, or nil.
func UserFromCtx(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
