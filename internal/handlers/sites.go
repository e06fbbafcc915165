package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/middleware"
	"ranklens/internal/models"
	"ranklens/internal/validation"
)

// SiteHandler handles site CRUD pages.
type SiteHandler struct {
	db      *db.DB
	cfg     *config.Config
	yamlCfg *config.YAMLConfig
}

// NewSiteHandler creates a new site handler. yamlCfg may be nil.
func NewSiteHandler(database *db.DB, cfg *config.Config, yamlCfg *config.YAMLConfig) *SiteHandler {
	return &SiteHandler{db: database, cfg: cfg, yamlCfg: yamlCfg}
}

// New renders the add-site form.
func (h *SiteHandler) New(c fiber.Ctx) error {
	return c.Render("site_new", MergeBranding(fiber.Map{
		"User": middleware.UserFromCtx(c),
	}, h.cfg))
}

// Create registers a new site for the current user.
func (h *SiteHandler) Create(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	name := strings.TrimSpace(c.FormValue("name"))
	siteURL := strings.TrimSpace(c.FormValue("url"))
	brands := splitBrands(c.FormValue("competitor_brands"))

	if !validation.ValidateSiteName(name) {
		return htmxError(c, "Site name is required (100 characters max)")
	}
	if valid, msg := validation.ValidateURL(siteURL); !valid {
		return htmxError(c, msg)
	}

	// Fall back to configured brand lists when the form leaves them out
	if len(brands) == 0 {
		brands = h.yamlCfg.CompetitorBrandsFor(siteURL)
	}

	site := &models.Site{
		OwnerID:          user.ID,
		Name:             name,
		URL:              siteURL,
		CompetitorBrands: brands,
	}
	if err := h.db.CreateSite(c.Context(), site); err != nil {
		return htmxError(c, "Failed to create site")
	}

	c.Set("HX-Redirect", "/sites/"+site.ID.String())
	return c.SendString("ok")
}

// Edit renders the site settings form.
func (h *SiteHandler) Edit(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	return c.Render("site_edit", MergeBranding(fiber.Map{
		"User":   user,
		"Site":   site,
		"Brands": strings.Join(site.CompetitorBrands, ", "),
	}, h.cfg))
}

// Update saves the site settings.
func (h *SiteHandler) Update(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(c.FormValue("name"))
	siteURL := strings.TrimSpace(c.FormValue("url"))

	if !validation.ValidateSiteName(name) {
		return htmxError(c, "Site name is required (100 characters max)")
	}
	if valid, msg := validation.ValidateURL(siteURL); !valid {
		return htmxError(c, msg)
	}

	site.Name = name
	site.URL = siteURL
	site.CompetitorBrands = splitBrands(c.FormValue("competitor_brands"))

	if err := h.db.UpdateSite(c.Context(), site); err != nil {
		return htmxError(c, "Failed to update site")
	}

	c.Set("HX-Redirect", "/sites/"+site.ID.String())
	return c.SendString("ok")
}

// Delete removes a site and all of its keywords.
func (h *SiteHandler) Delete(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	if err := h.db.DeleteSite(c.Context(), site.ID); err != nil {
		return htmxError(c, "Failed to delete site")
	}

	c.Set("HX-Redirect", "/")
	return c.SendString("ok")
}

// ownedSite loads the site from the :id param and checks ownership.
func (h *SiteHandler) ownedSite(c fiber.Ctx, user *models.User) (*models.Site, error) {
	siteID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid site id")
	}

	site, err := h.db.GetSiteByID(c.Context(), siteID)
	if err != nil {
		if errors.Is(err, db.ErrSiteNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "site not found")
		}
		return nil, err
	}
	if !user.CanManageSite(site) {
		return nil, fiber.NewError(fiber.StatusForbidden, "not your site")
	}
	return site, nil
}

// splitBrands parses the comma-separated competitor brand input.
func splitBrands(raw string) []string {
	var brands []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brands = append(brands, b)
		}
	}
	return brands
}
