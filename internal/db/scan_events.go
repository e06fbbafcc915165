package db

import (
	"context"

	"github.com/google/uuid"

	"ranklens/internal/models"
)

// IncrementScanEvent upserts a scan outcome count for a site.
func (d *DB) IncrementScanEvent(ctx context.Context, siteID uuid.UUID, outcome string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO scan_events (site_id, outcome, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (site_id, outcome) DO UPDATE
		SET count = scan_events.count + 1, last_seen_at = NOW()
	`, siteID, outcome)
	return err
}

// GetAllScanEvents returns all scan event rows for metrics export.
func (d *DB) GetAllScanEvents(ctx context.Context) ([]models.ScanEvent, error) {
	rows, err := d.Pool.Query(ctx, `SELECT site_id, outcome, count, last_seen_at FROM scan_events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ScanEvent
	for rows.Next() {
		var e models.ScanEvent
		if err := rows.Scan(&e.SiteID, &e.Outcome, &e.Count, &e.LastSeenAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
