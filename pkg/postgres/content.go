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

// ContentRepository reads CMS content from PostgreSQL.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a content repository over the given pool.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// ListByType lists a store's content entries of the given types, localized
// to one language.
func (r *ContentRepository) ListByType(ctx context.Context, types []content.ContentType, st *store.Store, lang string) ([]content.Content, error) {
	const query = `
		SELECT c.id, c.code, c.type, c.visible,
		       d.name, d.se_url, d.title, d.metatag_description, d.metatag_keywords, d.language_code
		FROM content c
		JOIN content_descriptions d ON d.content_id = c.id
		WHERE c.store_id = $1 AND c.type = ANY($2) AND d.language_code = $3
		ORDER BY c.code`

	rows, err := r.pool.Query(ctx, query, st.ID, typeStrings(types), lang)
	if err != nil {
		return nil, fmt.Errorf("select content: %w", err)
	}
	defer rows.Close()

	var items []content.Content
	for rows.Next() {
		var item content.Content
		if err := rows.Scan(
			&item.ID, &item.Code, &item.Type, &item.Visible,
			&item.Description.Name, &item.Description.SEUrl, &item.Description.Title,
			&item.Description.MetatagDescription, &item.Description.MetatagKeywords,
			&item.Description.LanguageCode,
		); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListNamesByType lists just the localized descriptions of a store's
// content entries of the given types.
func (r *ContentRepository) ListNamesByType(ctx context.Context, types []content.ContentType, st *store.Store, lang string) ([]content.ContentDescription, error) {
	items, err := r.ListByType(ctx, types, st, lang)
	if err != nil {
		return nil, err
	}

	names := make([]content.ContentDescription, 0, len(items))
	for _, item := range items {
		if !item.Visible {
			continue
		}
		names = append(names, item.Description)
	}
	return names, nil
}

// GetByLanguage fetches one content entry localized to the given language.
func (r *ContentRepository) GetByLanguage(ctx context.Context, id int64, lang string) (*content.Content, error) {
	const query = `
		SELECT c.id, c.code, c.type, c.visible,
		       d.name, d.se_url, d.title, d.metatag_description, d.metatag_keywords, d.language_code
		FROM content c
		JOIN content_descriptions d ON d.content_id = c.id
		WHERE c.id = $1 AND d.language_code = $2`

	var item content.Content
	err := r.pool.QueryRow(ctx, query, id, lang).Scan(
		&item.ID, &item.Code, &item.Type, &item.Visible,
		&item.Description.Name, &item.Description.SEUrl, &item.Description.Title,
		&item.Description.MetatagDescription, &item.Description.MetatagKeywords,
		&item.Description.LanguageCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, content.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select content %d: %w", id, err)
	}
	return &item, nil
}

func typeStrings(types []content.ContentType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
