package api

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/intent"
	"ranklens/internal/models"
	"ranklens/internal/validation"
)

// OverrideHandler records manual intent corrections via JSON API.
type OverrideHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewOverrideHandler creates a new API override handler.
func NewOverrideHandler(database *db.DB, cfg *config.Config) *OverrideHandler {
	return &OverrideHandler{db: database, cfg: cfg}
}

// Get returns a site's full override store: exact overrides plus the
// learned rules in their applied order.
func (h *OverrideHandler) Get(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	store, err := h.db.GetOverrideStore(c.Context(), site.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch overrides")
	}
	return jsonSuccess(c, store)
}

// Create records an intent override for a keyword and reports which
// other keywords the correction propagated to.
func (h *OverrideHandler) Create(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	var body struct {
		Keyword string `json:"keyword"`
		Intent  string `json:"intent"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	keyword := validation.NormalizeKeyword(body.Keyword)
	newIntent := intent.Intent(body.Intent)
	if keyword == "" {
		return jsonError(c, fiber.StatusBadRequest, "keyword is required")
	}
	if !newIntent.Valid() {
		return jsonError(c, fiber.StatusBadRequest, "unknown intent")
	}

	keywords, err := h.db.GetKeywordsBySite(c.Context(), site.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keywords")
	}
	siteKeywords := make([]string, len(keywords))
	for i, kw := range keywords {
		siteKeywords[i] = kw.Keyword
	}

	store, err := h.db.GetOverrideStore(c.Context(), site.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch overrides")
	}

	affected := store.RecordOverride(keyword, newIntent, siteKeywords)

	if err := h.db.SaveOverrideStore(c.Context(), site.ID, store); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to save overrides")
	}

	resp := models.OverrideResponse{
		Keyword:  keyword,
		Intent:   string(newIntent),
		Affected: make(map[string]string, len(affected)),
	}
	for kw, in := range affected {
		resp.Affected[kw] = string(in)
	}
	return jsonSuccess(c, resp)
}
