package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/intent"
	"ranklens/internal/middleware"
	"ranklens/internal/models"
	"ranklens/internal/validation"
)

// KeywordHandler handles keyword tracking and intent overrides.
type KeywordHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewKeywordHandler creates a new keyword handler.
func NewKeywordHandler(database *db.DB, cfg *config.Config) *KeywordHandler {
	return &KeywordHandler{db: database, cfg: cfg}
}

// CheckKeyword returns keyword availability for the add-keyword form.
func (h *KeywordHandler) CheckKeyword(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	keyword := validation.NormalizeKeyword(c.Query("keyword"))
	if !validation.ValidateKeyword(keyword) {
		return c.SendString("")
	}

	exists, err := h.db.KeywordExists(c.Context(), site.ID, keyword)
	if err != nil {
		return err
	}
	if exists {
		return c.SendString(`<span class="text-red-600 text-sm">Already tracked</span>`)
	}
	return c.SendString(`<span class="text-green-600 text-sm">Available</span>`)
}

// Create adds a keyword to a site's tracking list.
func (h *KeywordHandler) Create(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	keyword := validation.NormalizeKeyword(c.FormValue("keyword"))
	if !validation.ValidateKeyword(keyword) {
		return htmxError(c, "Keywords may contain letters, numbers, spaces, hyphens and apostrophes (200 characters max)")
	}

	kw := &models.Keyword{SiteID: site.ID, Keyword: keyword}
	if err := h.db.CreateKeyword(c.Context(), kw); err != nil {
		if errors.Is(err, db.ErrDuplicateKeyword) {
			return htmxError(c, "This keyword is already tracked")
		}
		return htmxError(c, "Failed to add keyword")
	}

	c.Set("HX-Redirect", "/sites/"+site.ID.String())
	return c.SendString("ok")
}

// Delete removes a keyword from tracking.
func (h *KeywordHandler) Delete(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
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

	if err := h.db.DeleteKeyword(c.Context(), keywordID); err != nil {
		return err
	}
	return c.SendString("")
}

// Override records a manual intent correction for a keyword. The
// correction becomes an exact override, feeds a learned rule, and
// propagates to sufficiently similar unoverridden keywords on the site.
func (h *KeywordHandler) Override(c fiber.Ctx) error {
	user := middleware.UserFromCtx(c)

	site, err := h.ownedSite(c, user)
	if err != nil {
		return err
	}

	keyword := validation.NormalizeKeyword(c.FormValue("keyword"))
	newIntent := intent.Intent(c.FormValue("intent"))
	if keyword == "" || !newIntent.Valid() {
		return htmxError(c, "Keyword and a valid intent are required")
	}

	keywords, err := h.db.GetKeywordsBySite(c.Context(), site.ID)
	if err != nil {
		return err
	}
	siteKeywords := make([]string, len(keywords))
	for i, kw := range keywords {
		siteKeywords[i] = kw.Keyword
	}

	store, err := h.db.GetOverrideStore(c.Context(), site.ID)
	if err != nil {
		return err
	}

	store.RecordOverride(keyword, newIntent, siteKeywords)

	if err := h.db.SaveOverrideStore(c.Context(), site.ID, store); err != nil {
		return htmxError(c, "Failed to save override")
	}

	c.Set("HX-Redirect", "/sites/"+site.ID.String())
	return c.SendString("ok")
}

// ownedSite loads the site from the :id param and checks ownership.
func (h *KeywordHandler) ownedSite(c fiber.Ctx, user *models.User) (*models.Site, error) {
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
