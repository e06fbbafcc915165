package handlers

import (
	"context"
	"log"

	"ranklens/internal/alerts"
	"ranklens/internal/db"
	"ranklens/internal/intent"
	"ranklens/internal/models"
	"ranklens/internal/ranking"
)

// BuildKeywordViews assembles the dashboard rows for a site: each
// keyword's stored metrics plus its effective intent, alert flags and
// value score, resolved at read time from current data. Also returns
// the per-flag totals for the filter bar.
func BuildKeywordViews(ctx context.Context, database *db.DB, site *models.Site, keywords []models.Keyword) ([]models.KeywordView, alerts.Counts, error) {
	store, err := database.GetOverrideStore(ctx, site.ID)
	if err != nil {
		return nil, alerts.Counts{}, err
	}

	views := make([]models.KeywordView, 0, len(keywords))
	sets := make(map[string]alerts.Set, len(keywords))

	for i := range keywords {
		kw := &keywords[i]

		hist, err := database.GetHistorical(ctx, kw.ID)
		if err != nil {
			// A keyword without history still renders; its alerts are empty.
			log.Printf("Failed to load history for %q: %v", kw.Keyword, err)
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

		set := alerts.Compute(res.Intent, kw.Position, hist)
		sets[kw.Keyword] = set

		view := models.KeywordView{
			Keyword:      *kw,
			Intent:       string(res.Intent),
			IntentSource: string(res.Source),
			Value:        ranking.Score(kw.Position, kw.Volume),
		}
		for _, f := range set.Flags() {
			view.Alerts = append(view.Alerts, string(f))
		}
		views = append(views, view)
	}

	return views, alerts.Summarize(sets), nil
}

// BuildChecklist runs conflict resolution and value ranking across all
// of a site's audit recommendations, producing the prioritized task
// list.
func BuildChecklist(ctx context.Context, database *db.DB, site *models.Site, keywords []models.Keyword) (ranking.Result, error) {
	recsByKeyword, err := database.GetRecommendationsBySite(ctx, site.ID)
	if err != nil {
		return ranking.Result{}, err
	}

	scans := make([]ranking.KeywordScan, 0, len(keywords))
	for i := range keywords {
		kw := &keywords[i]
		recs := recsByKeyword[kw.ID]
		if len(recs) == 0 {
			continue
		}

		scan := ranking.KeywordScan{
			Keyword: kw.Keyword,
			Value:   ranking.Score(kw.Position, kw.Volume),
		}
		for _, rec := range recs {
			scan.Items = append(scan.Items, ranking.ChecklistItem{
				ID:       rec.ID.String(),
				Category: rec.Category,
				Task:     rec.Task,
				Page:     rec.Page,
				Priority: ranking.Priority(rec.Priority),
				Impact:   rec.Impact,
			})
		}
		scans = append(scans, scan)
	}

	return ranking.Resolve(scans), nil
}
