package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// VolumeProvider returns monthly search volume for a keyword, or nil
// when the provider has no data.
type VolumeProvider interface {
	GetVolume(ctx context.Context, keyword string) (*float64, error)
}

// VolumeCache is the subset of the storage interface the volume
// provider needs. The redis storage from gofiber satisfies it.
type VolumeCache interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// CachedVolumeProvider wraps an HTTP volume API with a cache so
// repeated scans don't burn API quota on stable numbers.
type CachedVolumeProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   VolumeCache
	ttl     time.Duration
}

// NewCachedVolumeProvider builds a volume client. cache may be nil, in
// which case every call hits the API.
func NewCachedVolumeProvider(baseURL, apiKey string, cache VolumeCache, ttl time.Duration) *CachedVolumeProvider {
	return &CachedVolumeProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
		ttl:     ttl,
	}
}

type volumeResponse struct {
	Keyword string   `json:"keyword"`
	Volume  *float64 `json:"volume"`
}

// GetVolume returns the monthly search volume for a keyword, serving
// from cache when possible. Cache failures are logged and bypassed, not
// surfaced: the API is the source of truth.
func (p *CachedVolumeProvider) GetVolume(ctx context.Context, keyword string) (*float64, error) {
	cacheKey := "volume:" + keyword

	if p.cache != nil {
		if data, err := p.cache.Get(cacheKey); err == nil && len(data) > 0 {
			if v, err := strconv.ParseFloat(string(data), 64); err == nil {
				if v < 0 {
					// Negative sentinel marks a cached "no data" answer.
					return nil, nil
				}
				return &v, nil
			}
		}
	}

	volume, err := p.fetch(ctx, keyword)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		cached := "-1"
		if volume != nil {
			cached = strconv.FormatFloat(*volume, 'f', -1, 64)
		}
		if err := p.cache.Set(cacheKey, []byte(cached), p.ttl); err != nil {
			slog.Warn("volume cache write failed", "keyword", keyword, "error", err)
		}
	}

	return volume, nil
}

func (p *CachedVolumeProvider) fetch(ctx context.Context, keyword string) (*float64, error) {
	endpoint, err := url.JoinPath(p.baseURL, "volume")
	if err != nil {
		return nil, fmt.Errorf("invalid volume API base URL: %w", err)
	}
	endpoint += "?keyword=" + url.QueryEscape(keyword)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("volume API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("volume API returned status %d", resp.StatusCode)
	}

	var parsed volumeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode volume API response: %w", err)
	}
	return parsed.Volume, nil
}
