// Package providers contains clients for the external services the
// scanner depends on: the rank-data API, the search volume API, and the
// OpenAI-backed classifier and page auditor.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"ranklens/internal/models"
)

// RankProvider fetches per-keyword search performance metrics for a
// site's active reporting period.
type RankProvider interface {
	FetchMetrics(ctx context.Context, siteURL string, keywords []string) (map[string]models.Metric, error)
}

// HTTPRankProvider talks to a search-console-style API authenticated
// with OAuth2 client credentials.
type HTTPRankProvider struct {
	baseURL string
	client  *http.Client
}

// RankConfig configures the rank-data API client.
type RankConfig struct {
	BaseURL      string
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// NewHTTPRankProvider builds a rank-data client whose HTTP client
// transparently acquires and refreshes OAuth2 tokens.
func NewHTTPRankProvider(cfg RankConfig) *HTTPRankProvider {
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
	}
	client := cc.Client(context.Background())
	client.Timeout = 30 * time.Second

	return &HTTPRankProvider{
		baseURL: cfg.BaseURL,
		client:  client,
	}
}

type rankQueryRequest struct {
	Site     string   `json:"site"`
	Keywords []string `json:"keywords"`
}

type rankQueryResponse struct {
	Rows []models.Metric `json:"rows"`
}

// FetchMetrics returns the reporting-period metrics for the given
// keywords, keyed by keyword. Keywords the provider has no data for are
// absent from the result; callers treat absence as "did not rank".
func (p *HTTPRankProvider) FetchMetrics(ctx context.Context, siteURL string, keywords []string) (map[string]models.Metric, error) {
	if len(keywords) == 0 {
		return map[string]models.Metric{}, nil
	}

	body, err := json.Marshal(rankQueryRequest{Site: siteURL, Keywords: keywords})
	if err != nil {
		return nil, err
	}

	endpoint, err := url.JoinPath(p.baseURL, "query")
	if err != nil {
		return nil, fmt.Errorf("invalid rank API base URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rank API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rank API returned status %d", resp.StatusCode)
	}

	var parsed rankQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode rank API response: %w", err)
	}

	metrics := make(map[string]models.Metric, len(parsed.Rows))
	for _, row := range parsed.Rows {
		metrics[row.Keyword] = row
	}
	return metrics, nil
}
