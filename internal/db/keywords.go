package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"ranklens/internal/models"
)

// keywordColumns is the standard column list for keyword queries.
const keywordColumns = `id, site_id, keyword, current_position, impressions, clicks, ctr,
	volume, ranking_url, created_at, updated_at`

func scanKeyword(row pgx.Row) (*models.Keyword, error) {
	var kw models.Keyword
	err := row.Scan(
		&kw.ID,
		&kw.SiteID,
		&kw.Keyword,
		&kw.Position,
		&kw.Impressions,
		&kw.Clicks,
		&kw.CTR,
		&kw.Volume,
		&kw.RankingURL,
		&kw.CreatedAt,
		&kw.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeywordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &kw, nil
}

func scanKeywords(rows pgx.Rows) ([]models.Keyword, error) {
	defer rows.Close()

	var keywords []models.Keyword
	for rows.Next() {
		var kw models.Keyword
		if err := rows.Scan(
			&kw.ID,
			&kw.SiteID,
			&kw.Keyword,
			&kw.Position,
			&kw.Impressions,
			&kw.Clicks,
			&kw.CTR,
			&kw.Volume,
			&kw.RankingURL,
			&kw.CreatedAt,
			&kw.UpdatedAt,
		); err != nil {
			return nil, err
		}
		keywords = append(keywords, kw)
	}
	return keywords, rows.Err()
}

// CreateKeyword adds a keyword to a site's tracking list.
func (d *DB) CreateKeyword(ctx context.Context, kw *models.Keyword) error {
	query := `
		INSERT INTO keywords (site_id, keyword)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, query, kw.SiteID, kw.Keyword).
		Scan(&kw.ID, &kw.CreatedAt, &kw.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateKeyword
		}
		return err
	}
	return nil
}

// GetKeywordByID retrieves a keyword by its ID.
func (d *DB) GetKeywordByID(ctx context.Context, id uuid.UUID) (*models.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords WHERE id = $1`
	return scanKeyword(d.Pool.QueryRow(ctx, query, id))
}

// GetKeywordsBySite retrieves all tracked keywords for a site.
func (d *DB) GetKeywordsBySite(ctx context.Context, siteID uuid.UUID) ([]models.Keyword, error) {
	query := `SELECT ` + keywordColumns + ` FROM keywords WHERE site_id = $1 ORDER BY keyword ASC`
	rows, err := d.Pool.Query(ctx, query, siteID)
	if err != nil {
		return nil, err
	}
	return scanKeywords(rows)
}

// KeywordExists reports whether a site already tracks a keyword.
func (d *DB) KeywordExists(ctx context.Context, siteID uuid.UUID, keyword string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM keywords WHERE site_id = $1 AND keyword = $2)`,
		siteID, keyword,
	).Scan(&exists)
	return exists, err
}

// UpdateKeywordMetrics stores the latest rank-data metrics for a keyword.
func (d *DB) UpdateKeywordMetrics(ctx context.Context, id uuid.UUID, m *models.Metric, rankingURL *string) error {
	query := `
		UPDATE keywords
		SET current_position = $1, impressions = $2, clicks = $3, ctr = $4, ranking_url = $5, updated_at = NOW()
		WHERE id = $6
	`
	result, err := d.Pool.Exec(ctx, query, m.Position, m.Impressions, m.Clicks, m.CTR, rankingURL, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

// UpdateKeywordVolume stores the monthly search volume for a keyword.
func (d *DB) UpdateKeywordVolume(ctx context.Context, id uuid.UUID, volume *float64) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE keywords SET volume = $1, updated_at = NOW() WHERE id = $2`, volume, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrKeywordNotFound
	}
	return nil
}

// DeleteKeyword removes a keyword from tracking.
func (d *DB) DeleteKeyword(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM keywords WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrKeywordNotFound
	}
	return nil
}
