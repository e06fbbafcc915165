package models

import (
	"time"

	"github.com/google/uuid"
)

// Keyword is one tracked keyword for a site, with the latest metrics
// fetched from the rank-data provider. Metric fields are nil until the
// first scan completes; a nil position means the keyword did not rank
// in the reporting period.
type Keyword struct {
	ID          uuid.UUID `json:"id"`
	SiteID      uuid.UUID `json:"site_id"`
	Keyword     string    `json:"keyword"`
	Position    *float64  `json:"position"`
	Impressions *int64    `json:"impressions"`
	Clicks      *int64    `json:"clicks"`
	CTR         *float64  `json:"ctr"`
	Volume      *float64  `json:"volume"`      // monthly search volume
	RankingURL  *string   `json:"ranking_url"` // top ranking page for the keyword
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Metric is one keyword's metrics for the active reporting period, as
// returned by the rank-data provider. Immutable within a scan.
type Metric struct {
	Keyword     string   `json:"keyword"`
	Position    *float64 `json:"position"`
	Impressions *int64   `json:"impressions"`
	Clicks      *int64   `json:"clicks"`
	CTR         *float64 `json:"ctr"`
	RankingURL  *string  `json:"ranking_url"`
}
