package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/db"
	"ranklens/internal/metrics"
	"ranklens/internal/middleware"
	"ranklens/internal/models"
)

// SiteScanner runs a metrics scan for one site and reports the outcome.
type SiteScanner interface {
	ScanSite(ctx context.Context, site *models.Site) string
}

// ScanHandler triggers on-demand rescans outside the scheduled cycle.
type ScanHandler struct {
	db      *db.DB
	scanner SiteScanner
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(database *db.DB, scanner SiteScanner) *ScanHandler {
	return &ScanHandler{db: database, scanner: scanner}
}

// Rescan runs a scan for the site right now and sends the browser back
// to the refreshed dashboard.
func (h *ScanHandler) Rescan(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid site id")
	}

	site, err := h.db.GetSiteByID(c.Context(), siteID)
	if err != nil {
		if errors.Is(err, db.ErrSiteNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "site not found")
		}
		return err
	}
	if !user.CanManageSite(site) {
		return fiber.NewError(fiber.StatusForbidden, "not your site")
	}

	outcome := h.scanner.ScanSite(c.Context(), site)
	metrics.RecordScanEvent(site.ID, outcome)

	c.Set("HX-Redirect", "/sites/"+site.ID.String())
	return c.SendString("ok")
}
