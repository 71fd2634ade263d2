package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/store"
)

// ConfigurationRepository reads merchant configuration from PostgreSQL.
type ConfigurationRepository struct {
	pool *pgxpool.Pool
}

// NewConfigurationRepository creates a configuration repository over the
// given pool.
func NewConfigurationRepository(pool *pgxpool.Pool) *ConfigurationRepository {
	return &ConfigurationRepository{pool: pool}
}

// ListByType lists a store's configuration entries of one type.
func (r *ConfigurationRepository) ListByType(ctx context.Context, typ content.ConfigurationType, st *store.Store) ([]content.Configuration, error) {
	const query = `
		SELECT id, store_id, type, key, value
		FROM merchant_configurations
		WHERE store_id = $1 AND type = $2
		ORDER BY key`

	rows, err := r.pool.Query(ctx, query, st.ID, string(typ))
	if err != nil {
		return nil, fmt.Errorf("select configurations: %w", err)
	}
	defer rows.Close()

	var entries []content.Configuration
	for rows.Next() {
		var entry content.Configuration
		if err := rows.Scan(&entry.ID, &entry.StoreID, &entry.Type, &entry.Key, &entry.Value); err != nil {
			return nil, fmt.Errorf("scan configuration: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// MerchantConfig fetches the store's structured flag set, nil when the
// store has none. The flags live in a single jsonb column so new flags
// never need a schema change.
func (r *ConfigurationRepository) MerchantConfig(ctx context.Context, st *store.Store) (*content.MerchantConfig, error) {
	const query = `SELECT flags FROM merchant_configs WHERE store_id = $1`

	var cfg content.MerchantConfig
	err := r.pool.QueryRow(ctx, query, st.ID).Scan(&cfg)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select merchant config: %w", err)
	}
	return &cfg, nil
}
