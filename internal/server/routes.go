package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/handlers"
	"ranklens/internal/handlers/api"
	"ranklens/internal/middleware"
	"ranklens/internal/providers"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, yamlCfg *config.YAMLConfig, auditor *providers.AuditScanner, scanner handlers.SiteScanner) error {
	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(database)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(database, s.Cfg)
	siteHandler := handlers.NewSiteHandler(database, s.Cfg, yamlCfg)
	keywordHandler := handlers.NewKeywordHandler(database, s.Cfg)
	recommendationHandler := handlers.NewRecommendationHandler(database, s.Cfg, auditor)
	scanHandler := handlers.NewScanHandler(database, scanner)
	profileHandler := handlers.NewProfileHandler(database)
	probeHandler := handlers.NewProbeHandler(database)

	// Auth routes - OIDC is always required for frontend access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Health probes and metrics - no auth, used by the platform
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes - always require authentication
	s.App.Get("/", authMiddleware.RequireAuth, dashboardHandler.Index)
	s.App.Get("/profile", authMiddleware.RequireAuth, profileHandler.Show)

	// Site management
	s.App.Get("/sites/new", authMiddleware.RequireAuth, siteHandler.New)
	s.App.Post("/sites", authMiddleware.RequireAuth, siteHandler.Create)
	s.App.Get("/sites/:id", authMiddleware.RequireAuth, dashboardHandler.Site)
	s.App.Get("/sites/:id/edit", authMiddleware.RequireAuth, siteHandler.Edit)
	s.App.Put("/sites/:id", authMiddleware.RequireAuth, siteHandler.Update)
	s.App.Delete("/sites/:id", authMiddleware.RequireAuth, siteHandler.Delete)
	s.App.Post("/sites/:id/rescan", authMiddleware.RequireAuth, scanHandler.Rescan)

	// Keyword tracking and intent overrides
	s.App.Get("/sites/:id/keywords/check", authMiddleware.RequireAuth, keywordHandler.CheckKeyword)
	s.App.Post("/sites/:id/keywords", authMiddleware.RequireAuth, keywordHandler.Create)
	s.App.Delete("/sites/:id/keywords/:keywordId", authMiddleware.RequireAuth, keywordHandler.Delete)
	s.App.Post("/sites/:id/keywords/override", authMiddleware.RequireAuth, keywordHandler.Override)

	// Checklist and audit scans
	s.App.Get("/sites/:id/checklist", authMiddleware.RequireAuth, recommendationHandler.Checklist)
	s.App.Post("/sites/:id/keywords/:keywordId/audit", authMiddleware.RequireAuth, recommendationHandler.Audit)

	// JSON API
	apiSiteHandler := api.NewSiteHandler(database, s.Cfg)
	apiKeywordHandler := api.NewKeywordHandler(database, s.Cfg)
	apiOverrideHandler := api.NewOverrideHandler(database, s.Cfg)
	apiRecommendationHandler := api.NewRecommendationHandler(database, s.Cfg, auditor)
	apiHealthHandler := api.NewHealthHandler(database)

	apiGroup := s.App.Group("/api")
	apiGroup.Get("/health", apiHealthHandler.Status)

	apiGroup.Get("/sites", authMiddleware.RequireAuthAPI, apiSiteHandler.List)
	apiGroup.Post("/sites", authMiddleware.RequireAuthAPI, apiSiteHandler.Create)
	apiGroup.Get("/sites/:id", authMiddleware.RequireAuthAPI, apiSiteHandler.Get)
	apiGroup.Put("/sites/:id", authMiddleware.RequireAuthAPI, apiSiteHandler.Update)
	apiGroup.Delete("/sites/:id", authMiddleware.RequireAuthAPI, apiSiteHandler.Delete)

	apiGroup.Get("/sites/:id/keywords", authMiddleware.RequireAuthAPI, apiKeywordHandler.List)
	apiGroup.Get("/sites/:id/keywords/check", authMiddleware.RequireAuthAPI, apiKeywordHandler.Check)
	apiGroup.Post("/sites/:id/keywords", authMiddleware.RequireAuthAPI, apiKeywordHandler.Create)
	apiGroup.Delete("/sites/:id/keywords/:keywordId", authMiddleware.RequireAuthAPI, apiKeywordHandler.Delete)

	apiGroup.Get("/sites/:id/overrides", authMiddleware.RequireAuthAPI, apiOverrideHandler.Get)
	apiGroup.Post("/sites/:id/overrides", authMiddleware.RequireAuthAPI, apiOverrideHandler.Create)

	apiGroup.Get("/sites/:id/checklist", authMiddleware.RequireAuthAPI, apiRecommendationHandler.Checklist)
	apiGroup.Post("/sites/:id/keywords/:keywordId/audit", authMiddleware.RequireAuthAPI, apiRecommendationHandler.Audit)

	return nil
}
