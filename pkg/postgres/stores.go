package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/croissant676/shopizer/pkg/store"
)

// StoreRepository reads stores from PostgreSQL.
type StoreRepository struct {
	pool *pgxpool.Pool
}

// NewStoreRepository creates a store repository over the given pool.
func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

// GetByCode fetches one store by its unique code.
func (r *StoreRepository) GetByCode(ctx context.Context, code string) (*store.Store, error) {
	const query = `
		SELECT id, code, name, default_language, store_template,
		       country, zone, state_province, use_cache
		FROM stores
		WHERE code = $1`

	var st store.Store
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&st.ID, &st.Code, &st.Name, &st.DefaultLanguage, &st.StoreTemplate,
		&st.Country, &st.Zone, &st.StateProvince, &st.UseCache,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select store %q: %w", code, err)
	}
	return &st, nil
}
