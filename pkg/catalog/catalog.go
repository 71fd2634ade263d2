package catalog

import (
	"context"

	"github.com/croissant676/shopizer/pkg/store"
)

// DefaultPageSize caps the navigation hierarchy fetch.
const DefaultPageSize = 200

// ReadableCategory is a category node shaped for navigation rendering.
type ReadableCategory struct {
	ID       int64              `json:"id"`
	Code     string             `json:"code"`
	Name     string             `json:"name"`
	SEUrl    string             `json:"se_url,omitempty"`
	Visible  bool               `json:"visible"`
	Depth    int                `json:"depth"`
	Children []ReadableCategory `json:"children,omitempty"`
}

// ReadableCategoryList is a page of the category hierarchy.
type ReadableCategoryList struct {
	Categories []ReadableCategory `json:"categories"`
	TotalCount int                `json:"total_count"`
}

// Category is a localized category, as consumed by breadcrumb relabeling.
type Category struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Visible bool   `json:"visible"`
	Name    string `json:"name"`
	SEUrl   string `json:"se_url,omitempty"`
}

// Product is a localized product, as consumed by breadcrumb relabeling.
type Product struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	SEUrl string `json:"se_url,omitempty"`
}

// Facade serves the navigation hierarchy.
type Facade interface {
	// CategoryHierarchy fetches the store's category tree in the given
	// language, bounded by depth (0 means unbounded) and pageSize.
	CategoryHierarchy(ctx context.Context, st *store.Store, lang string, depth, pageSize int) (*ReadableCategoryList, error)
}

// CategoryService resolves single categories for a locale.
type CategoryService interface {
	// ByLanguage fetches a category localized to the given language.
	// Returns ErrCategoryNotFound when the category does not exist.
	ByLanguage(ctx context.Context, id int64, lang string) (*Category, error)
}

// ProductService resolves single products for a locale.
type ProductService interface {
	// ProductForLocale fetches a product localized to the given language.
	// Returns ErrProductNotFound when the product does not exist.
	ProductForLocale(ctx context.Context, id int64, lang string) (*Product, error)
}

// VisibleCategories filters a category list down to its visible nodes.
func VisibleCategories(categories []ReadableCategory) []ReadableCategory {
	visible := make([]ReadableCategory, 0, len(categories))
	for _, cat := range categories {
		if cat.Visible {
			visible = append(visible, cat)
		}
	}
	return visible
}
