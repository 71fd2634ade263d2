package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/croissant676/shopizer/pkg/catalog"
	"github.com/croissant676/shopizer/pkg/store"
)

// CategoryRepository reads the category tree from PostgreSQL.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a category repository over the given pool.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

type categoryRow struct {
	cat      catalog.ReadableCategory
	parentID *int64
}

// CategoryHierarchy fetches a store's category tree in one language. Rows
// come back parent-before-child (ordered by depth) so the tree assembles in
// a single pass.
func (r *CategoryRepository) CategoryHierarchy(ctx context.Context, st *store.Store, lang string, depth, pageSize int) (*catalog.ReadableCategoryList, error) {
	query := `
		SELECT c.id, c.code, c.visible, c.depth, c.parent_id,
		       d.name, d.se_url
		FROM categories c
		JOIN category_descriptions d ON d.category_id = c.id
		WHERE c.store_id = $1 AND d.language_code = $2`
	args := []any{st.ID, lang}

	if depth > 0 {
		query += ` AND c.depth <= $3`
		args = append(args, depth)
	}
	query += fmt.Sprintf(` ORDER BY c.depth, c.sort_order LIMIT %d`, pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var flat []categoryRow
	for rows.Next() {
		var row categoryRow
		if err := rows.Scan(
			&row.cat.ID, &row.cat.Code, &row.cat.Visible, &row.cat.Depth, &row.parentID,
			&row.cat.Name, &row.cat.SEUrl,
		); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		flat = append(flat, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &catalog.ReadableCategoryList{
		Categories: buildTree(flat),
		TotalCount: len(flat),
	}, nil
}

// buildTree nests child categories under their parents, preserving row
// order at every level. Children of parents outside the fetched page become
// roots rather than being dropped.
func buildTree(flat []categoryRow) []catalog.ReadableCategory {
	nodes := make(map[int64]*catalog.ReadableCategory, len(flat))
	for _, row := range flat {
		cat := row.cat
		nodes[cat.ID] = &cat
	}

	// Attach deepest rows first so every child subtree is complete before
	// it is copied into its parent. Prepending in the reverse walk keeps
	// the query's sibling order.
	for i := len(flat) - 1; i >= 0; i-- {
		row := flat[i]
		if row.parentID == nil {
			continue
		}
		if parent, ok := nodes[*row.parentID]; ok {
			parent.Children = append([]catalog.ReadableCategory{*nodes[row.cat.ID]}, parent.Children...)
		}
	}

	var roots []catalog.ReadableCategory
	for _, row := range flat {
		if row.parentID != nil {
			if _, ok := nodes[*row.parentID]; ok {
				continue
			}
		}
		roots = append(roots, *nodes[row.cat.ID])
	}
	return roots
}

// ByLanguage fetches a single category localized to the given language.
func (r *CategoryRepository) ByLanguage(ctx context.Context, id int64, lang string) (*catalog.Category, error) {
	const query = `
		SELECT c.id, c.code, c.visible, d.name, d.se_url
		FROM categories c
		JOIN category_descriptions d ON d.category_id = c.id
		WHERE c.id = $1 AND d.language_code = $2`

	var cat catalog.Category
	err := r.pool.QueryRow(ctx, query, id, lang).Scan(&cat.ID, &cat.Code, &cat.Visible, &cat.Name, &cat.SEUrl)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select category %d: %w", id, err)
	}
	return &cat, nil
}

// ProductRepository reads products from PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository creates a product repository over the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// ProductForLocale fetches a single product localized to the given language.
func (r *ProductRepository) ProductForLocale(ctx context.Context, id int64, lang string) (*catalog.Product, error) {
	const query = `
		SELECT p.id, d.name, d.se_url
		FROM products p
		JOIN product_descriptions d ON d.product_id = p.id
		WHERE p.id = $1 AND d.language_code = $2`

	var p catalog.Product
	err := r.pool.QueryRow(ctx, query, id, lang).Scan(&p.ID, &p.Name, &p.SEUrl)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, catalog.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	return &p, nil
}
