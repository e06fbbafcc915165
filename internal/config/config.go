package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // enables mTLS when set

	// Database
	DatabaseURL string

	// Redis (sessions, volume cache)
	RedisURL string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Rank data provider
	RankAPIBaseURL        string
	RankOAuthTokenURL     string
	RankOAuthClientID     string
	RankOAuthClientSecret string

	// Volume provider
	VolumeAPIBaseURL string
	VolumeAPIKey     string
	VolumeCacheTTL   time.Duration // env: VOLUME_CACHE_TTL, default 24h

	// OpenAI (intent classification, on-page audits)
	OpenAIAPIKey string
	OpenAIModel  string

	// Scan scheduler
	ScanInterval   time.Duration // env: SCAN_INTERVAL, default 6h
	SnapshotWindow time.Duration // env: SNAPSHOT_WINDOW, default 168h (7 days)

	// SMTP (alert digests)
	SMTPHost     string
	SMTPPort     int
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string
	SMTPTLS      string // "none", "tls", "starttls"

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "RankLens"
	SiteTagline string // env: SITE_TAGLINE, default: "Keyword intelligence for your sites"
	SiteFooter  string // env: SITE_FOOTER, default: "RankLens - Keyword intelligence for your sites"
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/ranklens?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		TLSEnabled:  getEnv("TLS_ENABLED", "false") == "true",
		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:   getEnv("TLS_CA_FILE", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),

		RankAPIBaseURL:        getEnv("RANK_API_BASE_URL", ""),
		RankOAuthTokenURL:     getEnv("RANK_OAUTH_TOKEN_URL", ""),
		RankOAuthClientID:     getEnv("RANK_OAUTH_CLIENT_ID", ""),
		RankOAuthClientSecret: getEnv("RANK_OAUTH_CLIENT_SECRET", ""),

		VolumeAPIBaseURL: getEnv("VOLUME_API_BASE_URL", ""),
		VolumeAPIKey:     getEnv("VOLUME_API_KEY", ""),
		VolumeCacheTTL:   getDuration("VOLUME_CACHE_TTL", 24*time.Hour),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ScanInterval:   getDuration("SCAN_INTERVAL", 6*time.Hour),
		SnapshotWindow: getDuration("SNAPSHOT_WINDOW", 7*24*time.Hour),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", ""),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		SiteTitle:   getEnv("SITE_TITLE", "RankLens"),
		SiteTagline: getEnv("SITE_TAGLINE", "Keyword intelligence for your sites"),
		SiteFooter:  getEnv("SITE_FOOTER", "RankLens - Keyword intelligence for your sites"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil && d > 0 {
		return d
	}
	// Bare numbers are treated as hours.
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return time.Duration(n) * time.Hour
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled reports whether alert digest email is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// AIEnabled reports whether the OpenAI-backed classifier and auditor
// can be used.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}
