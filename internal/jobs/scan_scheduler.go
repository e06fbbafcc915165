// Package jobs runs the background keyword scan loop.
package jobs

import (
	"context"
	"log"
	"time"

	"ranklens/internal/alerts"
	"ranklens/internal/db"
	"ranklens/internal/intent"
	"ranklens/internal/models"
	"ranklens/internal/providers"
	"ranklens/internal/ranking"
)

// Scan outcomes recorded per site for the metrics collector.
const (
	OutcomeOK            = "ok"
	OutcomeProviderError = "provider_error"
	OutcomePartial       = "partial"
)

// DigestNotifier delivers a post-scan alert digest for one site.
type DigestNotifier interface {
	SendAlertDigest(site *models.Site, counts alerts.Counts, flagged []models.KeywordView) error
}

// ScanScheduler periodically refreshes every site's keyword metrics,
// records position snapshots, re-resolves intents and raises alerts.
type ScanScheduler struct {
	db         *db.DB
	rank       providers.RankProvider
	volume     providers.VolumeProvider
	classifier *providers.AIClassifier // nil disables the AI layer
	notifier   DigestNotifier          // nil disables digest email
	interval   time.Duration
	window     time.Duration
}

// NewScanScheduler creates the scan loop. classifier and notifier are
// optional.
func NewScanScheduler(database *db.DB, rank providers.RankProvider, volume providers.VolumeProvider, classifier *providers.AIClassifier, notifier DigestNotifier, interval, window time.Duration) *ScanScheduler {
	return &ScanScheduler{
		db:         database,
		rank:       rank,
		volume:     volume,
		classifier: classifier,
		notifier:   notifier,
		interval:   interval,
		window:     window,
	}
}

// Start begins the background scan loop.
func (s *ScanScheduler) Start(ctx context.Context) {
	log.Printf("Scan scheduler started (interval: %v, window: %v)", s.interval, s.window)

	// Run immediately on start
	s.scanAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Scan scheduler stopped")
			return
		case <-ticker.C:
			s.scanAll(ctx)
		}
	}
}

// scanAll scans every registered site.
func (s *ScanScheduler) scanAll(ctx context.Context) {
	sites, err := s.db.GetAllSites(ctx)
	if err != nil {
		log.Printf("Scan scheduler: failed to get sites: %v", err)
		return
	}

	for i := range sites {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := s.ScanSite(ctx, &sites[i])
		if err := s.db.IncrementScanEvent(ctx, sites[i].ID, outcome); err != nil {
			log.Printf("Scan scheduler: failed to record scan event for %s: %v", sites[i].URL, err)
		}

		// Delay between sites to avoid hammering the providers
		time.Sleep(1 * time.Second)
	}
}

// ScanSite runs one full scan for a site and returns the outcome. It is
// exported so the manual rescan endpoint can reuse it.
func (s *ScanScheduler) ScanSite(ctx context.Context, site *models.Site) string {
	keywords, err := s.db.GetKeywordsBySite(ctx, site.ID)
	if err != nil {
		log.Printf("Scan scheduler: failed to get keywords for %s: %v", site.URL, err)
		return OutcomePartial
	}
	if len(keywords) == 0 {
		return OutcomeOK
	}

	texts := make([]string, len(keywords))
	for i, kw := range keywords {
		texts[i] = kw.Keyword
	}

	metrics, err := s.rank.FetchMetrics(ctx, site.URL, texts)
	if err != nil {
		log.Printf("Scan scheduler: rank provider failed for %s: %v", site.URL, err)
		return OutcomeProviderError
	}

	store, err := s.db.GetOverrideStore(ctx, site.ID)
	if err != nil {
		log.Printf("Scan scheduler: failed to load overrides for %s: %v", site.URL, err)
		store = intent.NewOverrideStore()
	}

	var aiIntents map[string]intent.Intent
	if s.classifier != nil {
		aiIntents, err = s.classifier.ClassifyKeywords(ctx, site.URL, texts)
		if err != nil {
			// The rule cascade covers for a missing AI layer.
			log.Printf("Scan scheduler: AI classification failed for %s: %v", site.URL, err)
			aiIntents = nil
		}
	}

	now := time.Now()
	partial := false
	sets := make(map[string]alerts.Set, len(keywords))
	var flagged []models.KeywordView

	for i := range keywords {
		kw := &keywords[i]

		// Absence from the provider response means the keyword did not
		// rank this period; its metrics are cleared, not kept stale.
		m := metrics[kw.Keyword]
		m.Keyword = kw.Keyword

		// Alert inputs use snapshots from before this scan.
		hist, err := s.db.GetHistorical(ctx, kw.ID)
		if err != nil {
			log.Printf("Scan scheduler: failed to load history for %q: %v", kw.Keyword, err)
			partial = true
		}

		if err := s.db.UpdateKeywordMetrics(ctx, kw.ID, &m, m.RankingURL); err != nil {
			log.Printf("Scan scheduler: failed to update metrics for %q: %v", kw.Keyword, err)
			partial = true
			continue
		}

		if m.Position != nil {
			snap := &models.PositionSnapshot{
				KeywordID:   kw.ID,
				AvgPosition: *m.Position,
				WindowStart: now.Add(-s.window),
				WindowEnd:   now,
			}
			if err := s.db.InsertSnapshot(ctx, snap); err != nil {
				log.Printf("Scan scheduler: failed to snapshot %q: %v", kw.Keyword, err)
				partial = true
			}
		}

		volume := kw.Volume
		if volume == nil && s.volume != nil {
			v, err := s.volume.GetVolume(ctx, kw.Keyword)
			if err != nil {
				log.Printf("Scan scheduler: volume lookup failed for %q: %v", kw.Keyword, err)
				partial = true
			} else if v != nil {
				if err := s.db.UpdateKeywordVolume(ctx, kw.ID, v); err != nil {
					log.Printf("Scan scheduler: failed to update volume for %q: %v", kw.Keyword, err)
					partial = true
				} else {
					volume = v
				}
			}
		}

		opts := intent.ClassifyOptions{
			SiteURL:          site.URL,
			CompetitorBrands: site.CompetitorBrands,
		}
		if m.RankingURL != nil {
			opts.RankingURL = *m.RankingURL
		}
		res := intent.Resolve(kw.Keyword, store, opts, aiIntents)

		set := alerts.Compute(res.Intent, m.Position, hist)
		sets[kw.Keyword] = set

		if len(set.Flags()) > 0 {
			kw.Position = m.Position
			kw.Volume = volume
			view := models.KeywordView{
				Keyword:      *kw,
				Intent:       string(res.Intent),
				IntentSource: string(res.Source),
				Value:        ranking.Score(m.Position, volume),
			}
			for _, f := range set.Flags() {
				view.Alerts = append(view.Alerts, string(f))
			}
			flagged = append(flagged, view)
		}
	}

	counts := alerts.Summarize(sets)
	if s.notifier != nil && len(flagged) > 0 {
		if err := s.notifier.SendAlertDigest(site, counts, flagged); err != nil {
			log.Printf("Scan scheduler: failed to send digest for %s: %v", site.URL, err)
		}
	}

	log.Printf("Scan scheduler: scanned %s (%d keywords, %d fire, %d smoking, %d hot)",
		site.URL, len(keywords), counts.Fire, counts.Smoking, counts.Hot)

	if partial {
		return OutcomePartial
	}
	return OutcomeOK
}
