package db

import (
	"context"

	"github.com/google/uuid"

	"ranklens/internal/alerts"
	"ranklens/internal/models"
)

// InsertSnapshot records one aggregated position average for a keyword.
func (d *DB) InsertSnapshot(ctx context.Context, snap *models.PositionSnapshot) error {
	query := `
		INSERT INTO position_snapshots (keyword_id, avg_position, window_start, window_end)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		snap.KeywordID,
		snap.AvgPosition,
		snap.WindowStart,
		snap.WindowEnd,
	).Scan(&snap.ID, &snap.CreatedAt)
}

// GetRecentSnapshots returns the most recent snapshots for a keyword,
// newest first, up to limit.
func (d *DB) GetRecentSnapshots(ctx context.Context, keywordID uuid.UUID, limit int) ([]models.PositionSnapshot, error) {
	query := `
		SELECT id, keyword_id, avg_position, window_start, window_end, created_at
		FROM position_snapshots
		WHERE keyword_id = $1
		ORDER BY window_end DESC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, keywordID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []models.PositionSnapshot
	for rows.Next() {
		var s models.PositionSnapshot
		if err := rows.Scan(&s.ID, &s.KeywordID, &s.AvgPosition, &s.WindowStart, &s.WindowEnd, &s.CreatedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, rows.Err()
}

// GetHistorical builds the three-period alert input for a keyword from
// its three most recent snapshots. Fewer than three snapshots leave the
// older periods nil; the alert engine treats that as missing data.
func (d *DB) GetHistorical(ctx context.Context, keywordID uuid.UUID) (alerts.Historical, error) {
	snaps, err := d.GetRecentSnapshots(ctx, keywordID, 3)
	if err != nil {
		return alerts.Historical{}, err
	}

	// snaps are newest first; Historical is ordered oldest to newest.
	var hist alerts.Historical
	periods := []**float64{&hist.Period3, &hist.Period2, &hist.Period1}
	for i, s := range snaps {
		v := s.AvgPosition
		*periods[i] = &v
	}
	return hist, nil
}
