package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/middleware"
	"ranklens/internal/models"
	"ranklens/internal/validation"
)

// SiteHandler handles site CRUD operations via JSON API.
type SiteHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewSiteHandler creates a new API site handler.
func NewSiteHandler(database *db.DB, cfg *config.Config) *SiteHandler {
	return &SiteHandler{db: database, cfg: cfg}
}

// List returns the current user's sites.
func (h *SiteHandler) List(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	sites, err := h.db.GetSitesByOwner(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch sites")
	}
	return jsonSuccess(c, sites)
}

// Get returns a single site by ID.
func (h *SiteHandler) Get(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}
	return jsonSuccess(c, site)
}

type siteRequest struct {
	Name             string   `json:"name"`
	URL              string   `json:"url"`
	CompetitorBrands []string `json:"competitor_brands"`
}

// Create registers a new site.
func (h *SiteHandler) Create(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	var body siteRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !validation.ValidateSiteName(body.Name) {
		return jsonError(c, fiber.StatusBadRequest, "site name is required (100 characters max)")
	}
	if valid, msg := validation.ValidateURL(body.URL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	site := &models.Site{
		OwnerID:          user.ID,
		Name:             body.Name,
		URL:              body.URL,
		CompetitorBrands: body.CompetitorBrands,
	}
	if err := h.db.CreateSite(c.Context(), site); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create site")
	}
	return jsonSuccess(c, site)
}

// Update saves site settings.
func (h *SiteHandler) Update(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	var body siteRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !validation.ValidateSiteName(body.Name) {
		return jsonError(c, fiber.StatusBadRequest, "site name is required (100 characters max)")
	}
	if valid, msg := validation.ValidateURL(body.URL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	site.Name = body.Name
	site.URL = body.URL
	site.CompetitorBrands = body.CompetitorBrands

	if err := h.db.UpdateSite(c.Context(), site); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update site")
	}
	return jsonSuccess(c, site)
}

// Delete removes a site and everything tracked under it.
func (h *SiteHandler) Delete(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	if err := h.db.DeleteSite(c.Context(), site.ID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete site")
	}
	return jsonSuccess(c, fiber.Map{"deleted": site.ID})
}

// ownedSite loads the site from the :id param and enforces ownership,
// writing the error response itself on failure. Shared across the API
// handlers.
func ownedSite(c fiber.Ctx, database *db.DB) (*models.Site, bool) {
	user := middleware.UserFromCtx(c)
	if user == nil {
		jsonError(c, fiber.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		jsonError(c, fiber.StatusBadRequest, "invalid site id")
		return nil, false
	}

	site, err := database.GetSiteByID(c.Context(), siteID)
	if err != nil {
		if errors.Is(err, db.ErrSiteNotFound) {
			jsonError(c, fiber.StatusNotFound, "site not found")
		} else {
			jsonError(c, fiber.StatusInternalServerError, "failed to fetch site")
		}
		return nil, false
	}
	if !user.CanManageSite(site) {
		jsonError(c, fiber.StatusForbidden, "not your site")
		return nil, false
	}
	return site, true
}
