package models

import (
	"time"

	"github.com/google/uuid"
)

// Site is one tracked property: a domain whose keywords are monitored.
type Site struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Name             string    `json:"name"`
	URL              string    `json:"url"` // canonical site URL, e.g. https://acmetools.com
	CompetitorBrands []string  `json:"competitor_brands"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
