package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ranklens/internal/intent"
)

// GetOverrideStore loads a site's intent override store. A site with no
// stored overrides gets a fresh empty store, not an error.
func (d *DB) GetOverrideStore(ctx context.Context, siteID uuid.UUID) (*intent.OverrideStore, error) {
	var data []byte
	err := d.Pool.QueryRow(ctx,
		`SELECT data FROM intent_overrides WHERE site_id = $1`, siteID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return intent.NewOverrideStore(), nil
	}
	if err != nil {
		return nil, err
	}

	store := intent.NewOverrideStore()
	if err := json.Unmarshal(data, store); err != nil {
		return nil, fmt.Errorf("failed to decode override store: %w", err)
	}
	return store, nil
}

// SaveOverrideStore persists a site's intent override store. The store
// is a value owned by the caller; this is the single serialization
// point for it.
func (d *DB) SaveOverrideStore(ctx context.Context, siteID uuid.UUID, store *intent.OverrideStore) error {
	data, err := json.Marshal(store)
	if err != nil {
		return fmt.Errorf("failed to encode override store: %w", err)
	}

	_, err = d.Pool.Exec(ctx, `
		INSERT INTO intent_overrides (site_id, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (site_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`, siteID, data)
	return err
}
