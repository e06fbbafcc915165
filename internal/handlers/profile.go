package handlers

import (
	"github.com/gofiber/fiber/v3"

	"ranklens/internal/db"
	"ranklens/internal/middleware"
)

// ProfileHandler handles user profile pages.
type ProfileHandler struct {
	db *db.DB
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(database *db.DB) *ProfileHandler {
	return &ProfileHandler{db: database}
}

// Show renders the user's profile page with their sites.
func (h *ProfileHandler) Show(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)
	if user == nil {
		return c.Redirect().To("/auth/login")
	}

	sites, err := h.db.GetSitesByOwner(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Render("profile", fiber.Map{
		"User":  user,
		"Sites": sites,
	})
}
