package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/middleware"
)

// DashboardHandler renders the site list and per-site keyword dashboard.
type DashboardHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(database *db.DB, cfg *config.Config) *DashboardHandler {
	return &DashboardHandler{db: database, cfg: cfg}
}

// Index renders the home page: the user's sites with quick stats.
func (h *DashboardHandler) Index(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	sites, err := h.db.GetSitesByOwner(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"User":  user,
		"Sites": sites,
	}, h.cfg))
}

// Site renders one site's keyword intelligence table: every tracked
// keyword with its metrics, effective intent, alert flags and value.
func (h *DashboardHandler) Site(c fiber.Ctx) error {
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

	keywords, err := h.db.GetKeywordsBySite(c.Context(), site.ID)
	if err != nil {
		return err
	}

	views, counts, err := BuildKeywordViews(c.Context(), h.db, site, keywords)
	if err != nil {
		return err
	}

	// Optional alert filter from the filter bar
	if flag := c.Query("alert"); flag != "" {
		filtered := views[:0]
		for _, v := range views {
			for _, raised := range v.Alerts {
				if raised == flag {
					filtered = append(filtered, v)
					break
				}
			}
		}
		views = filtered
	}

	data := MergeBranding(fiber.Map{
		"User":     user,
		"Site":     site,
		"Keywords": views,
		"Counts":   counts,
	}, h.cfg)

	// If HTMX request, return just the table
	if c.Get("HX-Request") == "true" {
		return c.Render("partials/keyword_table", data, "")
	}

	return c.Render("site", data)
}
