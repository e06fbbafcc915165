package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the config.yaml file.
// Per-site tuning that's easier to manage in YAML than env vars.
type YAMLConfig struct {
	Sites    []SiteConfig   `yaml:"sites"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// SiteConfig defines per-site settings in the YAML config.
type SiteConfig struct {
	URL              string   `yaml:"url"`
	CompetitorBrands []string `yaml:"competitor_brands,omitempty"`
	ScanInterval     string   `yaml:"scan_interval,omitempty"` // overrides SCAN_INTERVAL, e.g. "12h"
}

// AlertsConfig defines who receives alert digest emails.
type AlertsConfig struct {
	Recipients []string `yaml:"recipients"`
	MinFlags   int      `yaml:"min_flags"` // skip digests with fewer flagged keywords
}

// DefaultsConfig defines default settings for new sites.
type DefaultsConfig struct {
	CompetitorBrands []string `yaml:"competitor_brands,omitempty"`
	AutoClassify     bool     `yaml:"auto_classify"` // run AI classification on newly added keywords
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetSiteByURL finds per-site settings by site URL.
func (c *YAMLConfig) GetSiteByURL(url string) *SiteConfig {
	if c == nil {
		return nil
	}
	for i := range c.Sites {
		if c.Sites[i].URL == url {
			return &c.Sites[i]
		}
	}
	return nil
}

// CompetitorBrandsFor returns the competitor brand list for a site URL,
// falling back to the defaults when the site has none configured.
func (c *YAMLConfig) CompetitorBrandsFor(url string) []string {
	if c == nil {
		return nil
	}
	if site := c.GetSiteByURL(url); site != nil && len(site.CompetitorBrands) > 0 {
		return site.CompetitorBrands
	}
	return c.Defaults.CompetitorBrands
}

// DigestRecipients returns the configured alert digest recipients.
func (c *YAMLConfig) DigestRecipients() []string {
	if c == nil {
		return nil
	}
	return c.Alerts.Recipients
}

// DigestThreshold returns the minimum number of flagged keywords a scan
// must produce before a digest is sent. Never below 1.
func (c *YAMLConfig) DigestThreshold() int {
	if c == nil || c.Alerts.MinFlags < 1 {
		return 1
	}
	return c.Alerts.MinFlags
}

// AutoClassifyEnabled reports whether scans should run AI intent
// classification. Without a config file it defaults to on; a config
// file must enable it explicitly.
func (c *YAMLConfig) AutoClassifyEnabled() bool {
	if c == nil {
		return true
	}
	return c.Defaults.AutoClassify
}
