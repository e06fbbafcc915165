package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"ranklens/internal/alerts"
	"ranklens/internal/db"
	"ranklens/internal/intent"
)

var (
	scanEventDesc = prometheus.NewDesc(
		"ranklens_scan_events_total",
		"Total keyword scan count by site and outcome",
		[]string{"site_id", "outcome"},
		nil,
	)
	alertFlagDesc = prometheus.NewDesc(
		"ranklens_alert_flags",
		"Current keyword alert counts by site and flag",
		[]string{"site_id", "flag"},
		nil,
	)
)

// ScanCollector is a custom Prometheus collector that reads scan
// outcome counts from the database on each scrape.
type ScanCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *ScanCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- scanEventDesc
}

// Collect queries the database for all scan events and emits them as counters.
func (c *ScanCollector) Collect(ch chan<- prometheus.Metric) {
	events, err := c.db.GetAllScanEvents(context.Background())
	if err != nil {
		slog.Error("failed to collect scan event metrics", "error", err)
		return
	}
	for _, e := range events {
		ch <- prometheus.MustNewConstMetric(
			scanEventDesc,
			prometheus.CounterValue,
			float64(e.Count),
			e.SiteID,
			e.Outcome,
		)
	}
}

// AlertCollector re-derives every site's alert flags from stored
// positions and snapshots on each scrape.
type AlertCollector struct {
	db *db.DB
}

// Describe sends the metric descriptor to the channel.
func (c *AlertCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- alertFlagDesc
}

// Collect resolves intents and computes alert flags for all tracked
// keywords, emitting per-site gauges.
func (c *AlertCollector) Collect(ch chan<- prometheus.Metric) {
	ctx := context.Background()

	sites, err := c.db.GetAllSites(ctx)
	if err != nil {
		slog.Error("failed to collect alert metrics", "error", err)
		return
	}

	for i := range sites {
		site := &sites[i]

		keywords, err := c.db.GetKeywordsBySite(ctx, site.ID)
		if err != nil {
			slog.Error("failed to collect alert metrics", "site_id", site.ID, "error", err)
			continue
		}
		store, err := c.db.GetOverrideStore(ctx, site.ID)
		if err != nil {
			store = intent.NewOverrideStore()
		}

		sets := make(map[string]alerts.Set, len(keywords))
		for j := range keywords {
			kw := &keywords[j]

			hist, err := c.db.GetHistorical(ctx, kw.ID)
			if err != nil {
				hist = alerts.Historical{}
			}

			opts := intent.ClassifyOptions{
				SiteURL:          site.URL,
				CompetitorBrands: site.CompetitorBrands,
			}
			if kw.RankingURL != nil {
				opts.RankingURL = *kw.RankingURL
			}
			res := intent.Resolve(kw.Keyword, store, opts, nil)
			sets[kw.Keyword] = alerts.Compute(res.Intent, kw.Position, hist)
		}

		counts := alerts.Summarize(sets)
		siteID := site.ID.String()
		ch <- prometheus.MustNewConstMetric(alertFlagDesc, prometheus.GaugeValue, float64(counts.Fire), siteID, "fire")
		ch <- prometheus.MustNewConstMetric(alertFlagDesc, prometheus.GaugeValue, float64(counts.Smoking), siteID, "smoking")
		ch <- prometheus.MustNewConstMetric(alertFlagDesc, prometheus.GaugeValue, float64(counts.Hot), siteID, "hot")
	}
}

// Recorder provides async scan event recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init registers the custom collector and initializes the recorder.
// Must be called once at startup.
func Init(database *db.DB) {
	recorderOnce.Do(func() {
		recorder = &Recorder{db: database}
		prometheus.MustRegister(&ScanCollector{db: database})
		prometheus.MustRegister(&AlertCollector{db: database})
	})
}

// RecordScanEvent asynchronously records a scan outcome for a site.
func RecordScanEvent(siteID uuid.UUID, outcome string) {
	if recorder == nil {
		return
	}
	go func() {
		if err := recorder.db.IncrementScanEvent(context.Background(), siteID, outcome); err != nil {
			slog.Error("failed to record scan event", "site_id", siteID, "outcome", outcome, "error", err)
		}
	}()
}
