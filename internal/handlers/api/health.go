package api

import (
	"github.com/gofiber/fiber/v3"

	"ranklens/internal/db"
)

// HealthHandler reports service health via JSON API.
type HealthHandler struct {
	db *db.DB
}

// NewHealthHandler creates a new API health handler.
func NewHealthHandler(database *db.DB) *HealthHandler {
	return &HealthHandler{db: database}
}

// Status returns overall service health including database reachability.
func (h *HealthHandler) Status(c fiber.Ctx) error {
	if err := h.db.Ping(c.Context()); err != nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "database unavailable")
	}
	return jsonSuccess(c, fiber.Map{"healthy": true})
}
