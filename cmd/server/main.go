package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"
	"github.com/joho/godotenv"

	"ranklens/internal/config"
	"ranklens/internal/db"
	"ranklens/internal/email"
	"ranklens/internal/jobs"
	"ranklens/internal/metrics"
	"ranklens/internal/providers"
	"ranklens/internal/server"
)

func main() {
	// Load .env file if present (development convenience)
	_ = godotenv.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load YAML config: %v", err)
	}

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Register Prometheus collectors
	metrics.Init(database)

	// External providers
	rank := providers.NewHTTPRankProvider(providers.RankConfig{
		BaseURL:      cfg.RankAPIBaseURL,
		TokenURL:     cfg.RankOAuthTokenURL,
		ClientID:     cfg.RankOAuthClientID,
		ClientSecret: cfg.RankOAuthClientSecret,
	})

	var volumeCache providers.VolumeCache
	if cfg.RedisURL != "" {
		volumeCache = redis.New(redis.Config{URL: cfg.RedisURL})
	}
	volume := providers.NewCachedVolumeProvider(cfg.VolumeAPIBaseURL, cfg.VolumeAPIKey, volumeCache, cfg.VolumeCacheTTL)

	var classifier *providers.AIClassifier
	var auditor *providers.AuditScanner
	if cfg.AIEnabled() {
		auditor = providers.NewAuditScanner(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if yamlCfg.AutoClassifyEnabled() {
			classifier = providers.NewAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		} else {
			log.Println("AI classification disabled by config file (defaults.auto_classify)")
		}
	} else {
		log.Println("OPENAI_API_KEY not set. AI classification and audit scans are disabled.")
	}

	// Email notifications
	notifier := email.NewNotifier(cfg, yamlCfg, database)

	// Scan scheduler
	scheduler := jobs.NewScanScheduler(database, rank, volume, classifier, notifier, cfg.ScanInterval, cfg.SnapshotWindow)
	if cfg.RankAPIBaseURL != "" {
		go scheduler.Start(ctx)
	} else {
		log.Println("RANK_API_BASE_URL not set. Scheduled scans are disabled; manual rescans will report provider errors.")
	}

	// HTTP server
	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, database, yamlCfg, auditor, scheduler); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
