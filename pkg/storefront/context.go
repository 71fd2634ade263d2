package storefront

import (
	"context"

	"github.com/croissant676/shopizer/pkg/breadcrumb"
	"github.com/croissant676/shopizer/pkg/catalog"
	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/customer"
	"github.com/croissant676/shopizer/pkg/store"
)

// Context is the assembled storefront state for one request, published for
// page rendering. Fields left zero mean the owning stage could not complete;
// rendering degrades rather than fails.
type Context struct {
	Store             *store.Store
	LanguageCode      string
	Customer          *customer.Customer
	AnonymousCustomer *customer.Customer
	Breadcrumb        *breadcrumb.Trail
	PageInformation   content.PageInformation
	Configs           map[string]any
	ContentMap        map[string]content.ContentDescription
	ContentPages      []content.ContentDescription
	TopCategories     []catalog.ReadableCategory
	ShoppingCartCode  string
}

type storefrontContextKey struct{}

// WithContext attaches the assembled storefront state to the context.
func WithContext(ctx context.Context, sc *Context) context.Context {
	return context.WithValue(ctx, storefrontContextKey{}, sc)
}

// FromContext retrieves the assembled storefront state from the context.
func FromContext(ctx context.Context) (*Context, bool) {
	sc, ok := ctx.Value(storefrontContextKey{}).(*Context)
	return sc, ok
}
