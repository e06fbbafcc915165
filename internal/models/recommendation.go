package models

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is one persisted audit-scan checklist item for a
// keyword. The audit scanner produces the text; conflict resolution and
// ranking happen at read time from the current rows.
type Recommendation struct {
	ID        uuid.UUID `json:"id"`
	KeywordID uuid.UUID `json:"keyword_id"`
	Category  string    `json:"category"`
	Task      string    `json:"task"`
	Page      string    `json:"page"`
	Priority  string    `json:"priority"` // high, medium, low
	Impact    string    `json:"impact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
