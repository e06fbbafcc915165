package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/middleware"
	"ranklens/internal/providers"
)

// RecommendationHandler renders the prioritized checklist for a site
// and triggers on-demand audit scans.
type RecommendationHandler struct {
	db      *db.DB
	cfg     *config.Config
	auditor *providers.AuditScanner // nil when AI is not configured
}

// NewRecommendationHandler creates a new recommendation handler.
func NewRecommendationHandler(database *db.DB, cfg *config.Config, auditor *providers.AuditScanner) *RecommendationHandler {
	return &RecommendationHandler{db: database, cfg: cfg, auditor: auditor}
}

// Checklist renders the site's ranked task list with conflicts resolved.
func (h *RecommendationHandler) Checklist(c fiber.Ctx) error {
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

	result, err := BuildChecklist(c.Context(), h.db, site, keywords)
	if err != nil {
		return err
	}

	return c.Render("checklist", MergeBranding(fiber.Map{
		"User":          user,
		"Site":          site,
		"Ranked":        result.Ranked,
		"Deprioritized": result.Deprioritized,
		"Conflicts":     result.Conflicts,
	}, h.cfg))
}

// Audit runs an on-demand audit scan for one keyword, replacing its
// stored recommendations with the fresh output.
func (h *RecommendationHandler) Audit(c fiber.Ctx) error {
	if h.auditor == nil {
		return htmxError(c, "Audit scans require OpenAI to be configured")
	}

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

	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid keyword id")
	}

	kw, err := h.db.GetKeywordByID(c.Context(), keywordID)
	if err != nil {
		if errors.Is(err, db.ErrKeywordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "keyword not found")
		}
		return err
	}
	if kw.SiteID != site.ID {
		return fiber.NewError(fiber.StatusForbidden, "keyword belongs to another site")
	}

	// Audit the page that ranks for the keyword; fall back to the site root.
	pageURL := site.URL
	if kw.RankingURL != nil && *kw.RankingURL != "" {
		pageURL = *kw.RankingURL
	}

	recs, err := h.auditor.ScanPage(c.Context(), kw.Keyword, pageURL)
	if err != nil {
		log.Printf("Audit scan failed for %q: %v", kw.Keyword, err)
		return htmxError(c, "Audit scan failed")
	}

	if err := h.db.ReplaceRecommendations(c.Context(), kw.ID, recs); err != nil {
		return htmxError(c, "Failed to save recommendations")
	}

	c.Set("HX-Redirect", "/sites/"+site.ID.String()+"/checklist")
	return c.SendString("ok")
}
