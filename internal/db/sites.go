package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ranklens/internal/models"
)

// siteColumns is the standard column list for site queries.
const siteColumns = `id, owner_id, name, url, competitor_brands, created_at, updated_at`

func scanSite(row pgx.Row) (*models.Site, error) {
	var site models.Site
	err := row.Scan(
		&site.ID,
		&site.OwnerID,
		&site.Name,
		&site.URL,
		&site.CompetitorBrands,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, err
	}
	return &site, nil
}

// CreateSite creates a new tracked site.
func (d *DB) CreateSite(ctx context.Context, site *models.Site) error {
	query := `
		INSERT INTO sites (owner_id, name, url, competitor_brands)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		site.OwnerID,
		site.Name,
		site.URL,
		site.CompetitorBrands,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
}

// GetSiteByID retrieves a site by its ID.
func (d *DB) GetSiteByID(ctx context.Context, id uuid.UUID) (*models.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE id = $1`
	return scanSite(d.Pool.QueryRow(ctx, query, id))
}

// GetSitesByOwner retrieves all sites owned by a user.
func (d *DB) GetSitesByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites WHERE owner_id = $1 ORDER BY name ASC`
	rows, err := d.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(
			&site.ID,
			&site.OwnerID,
			&site.Name,
			&site.URL,
			&site.CompetitorBrands,
			&site.CreatedAt,
			&site.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// GetAllSites retrieves every tracked site, for the scan scheduler.
func (d *DB) GetAllSites(ctx context.Context) ([]models.Site, error) {
	query := `SELECT ` + siteColumns + ` FROM sites ORDER BY created_at ASC`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []models.Site
	for rows.Next() {
		var site models.Site
		if err := rows.Scan(
			&site.ID,
			&site.OwnerID,
			&site.Name,
			&site.URL,
			&site.CompetitorBrands,
			&site.CreatedAt,
			&site.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

// UpdateSite updates a site's name, URL, and competitor brands.
func (d *DB) UpdateSite(ctx context.Context, site *models.Site) error {
	query := `
		UPDATE sites
		SET name = $1, url = $2, competitor_brands = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query, site.Name, site.URL, site.CompetitorBrands, site.ID).Scan(&site.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSiteNotFound
	}
	return err
}

// DeleteSite deletes a site and all its keywords via cascade.
func (d *DB) DeleteSite(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrSiteNotFound
	}
	return nil
}
