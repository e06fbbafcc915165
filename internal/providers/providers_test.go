package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *fakeCache) Set(key string, val []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	c.sets++
	return nil
}

func TestRankProviderFetchMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"rows":[
			{"keyword":"buy running shoes","position":4.2,"impressions":1200,"clicks":85,"ctr":0.07},
			{"keyword":"shoe sizing guide","position":12.8,"impressions":400,"clicks":10,"ctr":0.025}
		]}`))
	}))
	defer srv.Close()

	p := &HTTPRankProvider{baseURL: srv.URL, client: srv.Client()}

	metrics, err := p.FetchMetrics(context.Background(), "https://example.com", []string{"buy running shoes", "shoe sizing guide", "missing keyword"})
	if err != nil {
		t.Fatalf("FetchMetrics() error = %v", err)
	}

	if len(metrics) != 2 {
		t.Fatalf("got %d metrics, want 2", len(metrics))
	}

	m, ok := metrics["buy running shoes"]
	if !ok {
		t.Fatal("missing metrics for 'buy running shoes'")
	}
	if m.Position == nil || *m.Position != 4.2 {
		t.Errorf("position = %v, want 4.2", m.Position)
	}
	if m.Impressions == nil || *m.Impressions != 1200 {
		t.Errorf("impressions = %v, want 1200", m.Impressions)
	}

	if _, ok := metrics["missing keyword"]; ok {
		t.Error("keyword absent from provider response should not appear in result")
	}
}

func TestRankProviderEmptyKeywords(t *testing.T) {
	p := &HTTPRankProvider{baseURL: "http://unused", client: http.DefaultClient}

	metrics, err := p.FetchMetrics(context.Background(), "https://example.com", nil)
	if err != nil {
		t.Fatalf("FetchMetrics() error = %v", err)
	}
	if len(metrics) != 0 {
		t.Errorf("got %d metrics, want 0", len(metrics))
	}
}

func TestRankProviderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := &HTTPRankProvider{baseURL: srv.URL, client: srv.Client()}

	if _, err := p.FetchMetrics(context.Background(), "https://example.com", []string{"x"}); err == nil {
		t.Error("expected error on 502 response")
	}
}

func TestVolumeProviderCaching(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if got := r.URL.Query().Get("keyword"); got != "best crm" {
			t.Errorf("keyword param = %q, want %q", got, "best crm")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"keyword":"best crm","volume":5400}`))
	}))
	defer srv.Close()

	cache := newFakeCache()
	p := NewCachedVolumeProvider(srv.URL, "test-key", cache, time.Hour)

	for i := 0; i < 3; i++ {
		v, err := p.GetVolume(context.Background(), "best crm")
		if err != nil {
			t.Fatalf("GetVolume() error = %v", err)
		}
		if v == nil || *v != 5400 {
			t.Fatalf("volume = %v, want 5400", v)
		}
	}

	if hits != 1 {
		t.Errorf("API hits = %d, want 1 (subsequent calls should be cached)", hits)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}
}

func TestVolumeProviderCachesNoData(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := newFakeCache()
	p := NewCachedVolumeProvider(srv.URL, "test-key", cache, time.Hour)

	for i := 0; i < 2; i++ {
		v, err := p.GetVolume(context.Background(), "obscure keyword")
		if err != nil {
			t.Fatalf("GetVolume() error = %v", err)
		}
		if v != nil {
			t.Fatalf("volume = %v, want nil", *v)
		}
	}

	if hits != 1 {
		t.Errorf("API hits = %d, want 1 (no-data answers should be cached too)", hits)
	}
}

func TestVolumeProviderNilCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"keyword":"x","volume":100}`))
	}))
	defer srv.Close()

	p := NewCachedVolumeProvider(srv.URL, "test-key", nil, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := p.GetVolume(context.Background(), "x"); err != nil {
			t.Fatalf("GetVolume() error = %v", err)
		}
	}

	if hits != 2 {
		t.Errorf("API hits = %d, want 2 (nil cache means every call fetches)", hits)
	}
}

func TestFilterAuditItems(t *testing.T) {
	items := []auditItem{
		{Category: "title-tag", Task: "Add keyword to title", Priority: "high", Impact: "High CTR lift"},
		{Category: "Title-Tag", Task: "Case-insensitive category", Priority: "HIGH", Impact: ""},
		{Category: "made-up-category", Task: "Should be dropped", Priority: "high"},
		{Category: "content", Task: "Expand the comparison section", Priority: "urgent"},
		{Category: "schema-markup", Task: "", Priority: "low"},
	}

	recs := filterAuditItems(items, "https://example.com/page")

	if len(recs) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(recs))
	}
	for _, rec := range recs {
		if rec.Category != "title-tag" {
			t.Errorf("category = %q, want %q", rec.Category, "title-tag")
		}
		if rec.Page != "https://example.com/page" {
			t.Errorf("page = %q, want the scanned URL", rec.Page)
		}
		if rec.Priority != "high" {
			t.Errorf("priority = %q, want %q", rec.Priority, "high")
		}
	}
}
