package models

import (
	"time"

	"github.com/google/uuid"
)

// PositionSnapshot is one aggregated position average for a keyword
// over a reporting window. The scan scheduler writes one per keyword
// per completed scan; the three most recent snapshots feed the alert
// engine as its historical periods.
type PositionSnapshot struct {
	ID          uuid.UUID `json:"id"`
	KeywordID   uuid.UUID `json:"keyword_id"`
	AvgPosition float64   `json:"avg_position"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	CreatedAt   time.Time `json:"created_at"`
}
