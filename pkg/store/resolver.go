package store

import (
	"context"
	"errors"
	"log/slog"
)

// Session is the minimal session surface the resolver needs. The resolver
// reads the session's store affinity and writes the resolution back so the
// next request of the same session sticks to the same store.
type Session interface {
	GetString(key string) (string, bool)
	Set(key string, value any)
}

// Resolver determines the active store for a request.
type Resolver struct {
	provider        Provider
	defaultCode     string
	defaultTemplate string
	log             *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithDefaultCode overrides the system default store code.
func WithDefaultCode(code string) ResolverOption {
	return func(r *Resolver) {
		if code != "" {
			r.defaultCode = code
		}
	}
}

// WithDefaultTemplate overrides the template assigned to stores without one.
func WithDefaultTemplate(tpl string) ResolverOption {
	return func(r *Resolver) {
		if tpl != "" {
			r.defaultTemplate = tpl
		}
	}
}

// WithLogger sets the resolver logger.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a store resolver backed by the given provider.
func NewResolver(provider Provider, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		provider:        provider,
		defaultCode:     DefaultStoreCode,
		defaultTemplate: DefaultTemplate,
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve picks the active store, in order: an explicit request code, the
// session affinity, and finally the system default. Lookup misses fall
// through to the next rule;
// only a missing default store is an error. The resolution is persisted to
// the session, and a blank navigation template is backfilled with the
// default.
func (r *Resolver) Resolve(ctx context.Context, sess Session, requestCode string) (*Store, error) {
	sessionCode, _ := sess.GetString(SessionKeyCode)

	var resolved *Store
	if requestCode != "" {
		st, err := r.provider.GetByCode(ctx, requestCode)
		switch {
		case err == nil:
			resolved = st
		case errors.Is(err, ErrStoreNotFound):
			r.log.DebugContext(ctx, "requested store does not exist, falling back",
				slog.String("store_code", requestCode))
		default:
			return nil, err
		}
	} else if sessionCode != "" {
		st, err := r.provider.GetByCode(ctx, sessionCode)
		switch {
		case err == nil:
			resolved = st
		case errors.Is(err, ErrStoreNotFound):
			r.log.DebugContext(ctx, "session store no longer exists, falling back",
				slog.String("store_code", sessionCode))
		default:
			return nil, err
		}
	}

	if resolved == nil {
		st, err := r.provider.GetByCode(ctx, r.defaultCode)
		if err != nil {
			return nil, errors.Join(ErrNoStoreResolved, err)
		}
		resolved = st
	}

	// Backfill on a copy so the provider's value stays untouched; providers
	// may share pointers across requests.
	if resolved.StoreTemplate == "" {
		withTemplate := *resolved
		withTemplate.StoreTemplate = r.defaultTemplate
		resolved = &withTemplate
	}

	sess.Set(SessionKeyCode, resolved.Code)
	return resolved, nil
}
