package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/handlers"
	"ranklens/internal/models"
	"ranklens/internal/validation"
)

// KeywordHandler handles keyword tracking via JSON API.
type KeywordHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewKeywordHandler creates a new API keyword handler.
func NewKeywordHandler(database *db.DB, cfg *config.Config) *KeywordHandler {
	return &KeywordHandler{db: database, cfg: cfg}
}

// List returns a site's keywords with derived intelligence: effective
// intent with provenance, raised alert flags and the value score.
func (h *KeywordHandler) List(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	keywords, err := h.db.GetKeywordsBySite(c.Context(), site.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch keywords")
	}

	views, counts, err := handlers.BuildKeywordViews(c.Context(), h.db, site, keywords)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to build keyword views")
	}

	return jsonSuccess(c, fiber.Map{
		"keywords": views,
		"alerts":   counts,
	})
}

// Check reports whether a keyword is available for tracking on a site.
func (h *KeywordHandler) Check(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	keyword := validation.NormalizeKeyword(c.Query("keyword"))
	if !validation.ValidateKeyword(keyword) {
		return jsonError(c, fiber.StatusBadRequest, "invalid keyword")
	}

	exists, err := h.db.KeywordExists(c.Context(), site.ID, keyword)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to check keyword")
	}

	return jsonSuccess(c, models.KeywordCheckResponse{Available: !exists})
}

// Create adds a keyword to a site's tracking list.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	site, ok := ownedSite(c, h.db)
	if !ok {
		return nil
	}

	var body struct {
		Keyword string `json:"keyword"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	keyword := validation.NormalizeKeyword(body.Keyword)
	if !validation.ValidateKeyword(keyword) {
		return jsonError(c, fiber.StatusBadRequest, "keywords may contain letters, numbers, spaces, hyphens and apostrophes (200 characters max)")
	}

	kw := &models.Keyword{SiteID: site.ID, Keyword: keyword}
	if err := h.db.CreateKeyword(c.Context(), kw); err != nil {
		if errors.Is(err, db.ErrDuplicateKeyword) {
			return jsonError(c, fiber.StatusConflict, "this keyword is already tracked")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to add keyword")
	}

	return jsonSuccess(c, kw)
}

// Delete removes a keyword from tracking.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
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

	if err := h.db.DeleteKeyword(c.Context(), keywordID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete keyword")
	}
	return jsonSuccess(c, fiber.Map{"deleted": keywordID})
}
