package geoip

import "context"

// Location is the subset of a geo-IP answer the storefront cares about:
// just enough to seed an anonymous visitor's billing address.
type Location struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Zone    string `json:"zone"`
}

// Locator resolves an IP address to a coarse location. Implementations may
// fail freely (network trouble, unknown address); callers are expected to
// fall back to the store's configured defaults.
type Locator interface {
	Locate(ctx context.Context, ip string) (*Location, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context, ip string) (*Location, error)

func (f LocatorFunc) Locate(ctx context.Context, ip string) (*Location, error) {
	return f(ctx, ip)
}
