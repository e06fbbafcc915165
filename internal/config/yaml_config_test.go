package config

import (
	"reflect"
	"testing"
)

func TestYAMLConfig_DigestThreshold(t *testing.T) {
	tests := []struct {
		name string
		cfg  *YAMLConfig
		want int
	}{
		{"nil config defaults to 1", nil, 1},
		{"zero min_flags defaults to 1", &YAMLConfig{}, 1},
		{"negative min_flags defaults to 1", &YAMLConfig{Alerts: AlertsConfig{MinFlags: -3}}, 1},
		{"configured threshold", &YAMLConfig{Alerts: AlertsConfig{MinFlags: 4}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DigestThreshold(); got != tt.want {
				t.Errorf("DigestThreshold() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestYAMLConfig_AutoClassifyEnabled(t *testing.T) {
	tests := []struct {
		name string
		cfg  *YAMLConfig
		want bool
	}{
		{"nil config enables classification", nil, true},
		{"config file without the key disables it", &YAMLConfig{}, false},
		{"explicitly enabled", &YAMLConfig{Defaults: DefaultsConfig{AutoClassify: true}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.AutoClassifyEnabled(); got != tt.want {
				t.Errorf("AutoClassifyEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestYAMLConfig_CompetitorBrandsFor(t *testing.T) {
	cfg := &YAMLConfig{
		Sites: []SiteConfig{
			{URL: "https://shop.example.com", CompetitorBrands: []string{"acme", "globex"}},
			{URL: "https://blog.example.com"},
		},
		Defaults: DefaultsConfig{CompetitorBrands: []string{"initech"}},
	}

	if got := cfg.CompetitorBrandsFor("https://shop.example.com"); !reflect.DeepEqual(got, []string{"acme", "globex"}) {
		t.Errorf("CompetitorBrandsFor(shop) = %v, want site-level brands", got)
	}
	if got := cfg.CompetitorBrandsFor("https://blog.example.com"); !reflect.DeepEqual(got, []string{"initech"}) {
		t.Errorf("CompetitorBrandsFor(blog) = %v, want defaults", got)
	}
	if got := (*YAMLConfig)(nil).CompetitorBrandsFor("https://shop.example.com"); got != nil {
		t.Errorf("CompetitorBrandsFor on nil config = %v, want nil", got)
	}
}
