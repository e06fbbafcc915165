package models

import "time"

// ScanEvent is an aggregated scan outcome count for a site, kept for
// metrics export.
type ScanEvent struct {
	SiteID     string    `json:"site_id"`
	Outcome    string    `json:"outcome"` // ok, provider_error, partial
	Count      int64     `json:"count"`
	LastSeenAt time.Time `json:"last_seen_at"`
}
