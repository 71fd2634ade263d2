package store

import "context"

const (
	// DefaultStoreCode is the system fallback store resolved when neither
	// the request nor the session names one.
	DefaultStoreCode = "DEFAULT"

	// DefaultTemplate is assigned to stores without a navigation template.
	DefaultTemplate = "default"

	// RequestParam is the query parameter carrying an explicit store code.
	RequestParam = "store"

	// SessionKeyCode is the session key holding the resolved store code.
	SessionKeyCode = "store_code"
)

// Store is one storefront tenant. It is resolved once per request and
// treated as immutable for the request's duration.
type Store struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	DefaultLanguage string `json:"default_language"`
	StoreTemplate   string `json:"store_template"`
	Country         string `json:"country"`
	Zone            string `json:"zone,omitempty"`
	StateProvince   string `json:"state_province,omitempty"`
	UseCache        bool   `json:"use_cache"`
}

// Provider loads stores from a data source.
type Provider interface {
	// GetByCode retrieves a store by its stable code.
	// Returns ErrStoreNotFound if no store matches.
	GetByCode(ctx context.Context, code string) (*Store, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, code string) (*Store, error)

func (f ProviderFunc) GetByCode(ctx context.Context, code string) (*Store, error) {
	return f(ctx, code)
}
