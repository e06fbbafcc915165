package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/handlers"
	"ranklens/internal/providers"
)

// RecommendationHandler serves the ranked checklist and audit scans
// via JSON API.
type RecommendationHandler struct {
	db      *db.DB
	cfg     *config.Config
	auditor *providers.AuditScanner // nil when AI is not configured
}

// NewRecommendationHandler creates a new API recommendation handler.
func NewRecommendationHandler(database *db.DB, cfg *config.Config, auditor *providers.AuditScanner) *RecommendationHandler {
	return &RecommendationHandler{db: database, cfg: cfg, auditor: auditor}
}

// Checklist returns the site's task list ranked by keyword value, with
// same-page conflicts collapsed to the highest-value winner.
func (h *RecommendationHandler) Checklist(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	keywords, err := h.db.GetKeywordsBySite(c.Context(), site.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keywords")
	}

	result, err := handlers.BuildChecklist(c.Context(), h.db, site, keywords)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build checklist")
	}

	return jsonSuccess(c, fiber.Map{
		"ranked":        result.Ranked,
		"deprioritized": result.Deprioritized,
		"conflicts":     result.Conflicts,
	})
}

// Audit runs an on-demand audit scan for one keyword and returns the
// fresh recommendations.
func (h *RecommendationHandler) Audit(c fiber.Ctx) error {
	if h.auditor == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "audit scans require OpenAI to be configured")
	}

	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	keywordID, err := uuid.Parse(c.Params("keywordId"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword id")
	}

	kw, err := h.db.GetKeywordByID(c.Context(), keywordID)
	if err != nil {
		if errors.Is(err, db.ErrKeywordNotFound) {
			return jsonError(c, fiber.StatusNotFound, "keyword not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keyword")
	}
	if kw.SiteID != site.ID {
		return jsonError(c, fiber.StatusForbidden, "keyword belongs to another site")
	}

	pageURL := site.URL
	if kw.RankingURL != nil && *kw.RankingURL != "" {
		pageURL = *kw.RankingURL
	}

	recs, err := h.auditor.ScanPage(c.Context(), kw.Keyword, pageURL)
	if err != nil {
		log.Printf("Audit scan failed for %q: %v", kw.Keyword, err)
		return jsonError(c, fiber.StatusBadGateway, "audit scan failed")
	}

	if err := h.db.ReplaceRecommendations(c.Context(), kw.ID, recs); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save recommendations")
	}

	return jsonSuccess(c, recs)
}
