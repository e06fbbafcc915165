package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ranklens/internal/models"
)

// ReplaceRecommendations swaps a keyword's audit checklist for a fresh
// scan's output in one transaction.
func (d *DB) ReplaceRecommendations(ctx context.Context, keywordID uuid.UUID, recs []models.Recommendation) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recommendations WHERE keyword_id = $1`, keywordID); err != nil {
		return err
	}

	query := `
		INSERT INTO recommendations (keyword_id, category, task, page, priority, impact)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, rec := range recs {
		if _, err := tx.Exec(ctx, query,
			keywordID, rec.Category, rec.Task, rec.Page, rec.Priority, rec.Impact,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetRecommendationsByKeyword returns a keyword's current checklist.
func (d *DB) GetRecommendationsByKeyword(ctx context.Context, keywordID uuid.UUID) ([]models.Recommendation, error) {
	query := `
		SELECT id, keyword_id, category, task, page, priority, impact, created_at
		FROM recommendations
		WHERE keyword_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := d.Pool.Query(ctx, query, keywordID)
	if err != nil {
		return nil, err
	}
	return scanRecommendations(rows)
}

// GetRecommendationsBySite returns all checklists for a site's
// keywords, keyed by keyword ID, for group-scan conflict resolution.
func (d *DB) GetRecommendationsBySite(ctx context.Context, siteID uuid.UUID) (map[uuid.UUID][]models.Recommendation, error) {
	query := `
		SELECT r.id, r.keyword_id, r.category, r.task, r.page, r.priority, r.impact, r.created_at
		FROM recommendations r
		JOIN keywords k ON k.id = r.keyword_id
		WHERE k.site_id = $1
		ORDER BY r.created_at ASC, r.id ASC
	`
	rows, err := d.Pool.Query(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	recs, err := scanRecommendations(rows)
	if err != nil {
		return nil, err
	}

	byKeyword := make(map[uuid.UUID][]models.Recommendation)
	for _, rec := range recs {
		byKeyword[rec.KeywordID] = append(byKeyword[rec.KeywordID], rec)
	}
	return byKeyword, nil
}

func scanRecommendations(rows pgx.Rows) ([]models.Recommendation, error) {
	defer rows.Close()

	var recs []models.Recommendation
	for rows.Next() {
		var rec models.Recommendation
		if err := rows.Scan(
			&rec.ID,
			&rec.KeywordID,
			&rec.Category,
			&rec.Task,
			&rec.Page,
			&rec.Priority,
			&rec.Impact,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
