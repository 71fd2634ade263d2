package customer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/croissant676/shopizer/pkg/geoip"
	"github.com/croissant676/shopizer/pkg/session"
	"github.com/croissant676/shopizer/pkg/store"
)

const (
	// SessionKeyCustomer is the session key holding the authenticated
	// customer.
	SessionKeyCustomer = "customer"

	// SessionKeyAnonymous is the session key holding the per-session
	// anonymous customer.
	SessionKeyAnonymous = "anonymous_customer"
)

// Identity is the outcome of reconciling the session against the request
// principal. Anonymous is always populated; Customer only when the visitor
// is authenticated for the current store.
type Identity struct {
	Customer  *Customer
	Anonymous *Customer
}

// Reconciler keeps the session's customer identity consistent with the
// resolved store and the request principal.
type Reconciler struct {
	customers Service
	locator   geoip.Locator
	logger    *slog.Logger
}

// ReconcilerOption configures a Reconciler.
type ReconcilerOption func(*Reconciler)

// WithLocator sets the geo-IP locator used to seed anonymous billing
// addresses.
func WithLocator(l geoip.Locator) ReconcilerOption {
	return func(r *Reconciler) {
		r.locator = l
	}
}

// WithLogger sets the logger for dropped identities and lookup failures.
func WithLogger(logger *slog.Logger) ReconcilerOption {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReconciler creates a Reconciler backed by the given customer service.
func NewReconciler(customers Service, opts ...ReconcilerOption) *Reconciler {
	r := &Reconciler{
		customers: customers,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile validates the session customer against the current store and
// principal, adopts the principal's customer account when the session has
// none, and guarantees a per-session anonymous customer as fallback.
//
// A session customer belonging to another store is dropped, as is one whose
// authentication no longer carries the customer role. Lookup failures during
// adoption surface as errors so the caller can decide how loudly to fail;
// the session is left untouched in that case.
func (r *Reconciler) Reconcile(ctx context.Context, sess *session.Session, st *store.Store, principal Principal, clientIP string) (*Identity, error) {
	cust := r.sessionCustomer(sess, st, principal)

	if cust == nil && principal != nil && principal.HasRole(RoleAuthCustomer) {
		adopted, err := r.customers.GetByNick(ctx, principal.Name(), st.ID)
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			r.logger.WarnContext(ctx, "principal has no customer account",
				"nick", principal.Name(), "store_id", st.ID)
		case err != nil:
			return nil, err
		default:
			sess.Set(SessionKeyCustomer, adopted)
			cust = adopted
		}
	}

	return &Identity{
		Customer:  cust,
		Anonymous: r.anonymousCustomer(ctx, sess, st, clientIP),
	}, nil
}

// sessionCustomer returns the session's authenticated customer when it is
// still valid for this store and principal, dropping it otherwise.
func (r *Reconciler) sessionCustomer(sess *session.Session, st *store.Store, principal Principal) *Customer {
	cust, ok := session.Decode[Customer](sess, SessionKeyCustomer)
	if !ok {
		return nil
	}

	if cust.StoreID != st.ID {
		sess.Delete(SessionKeyCustomer)
		r.logger.Debug("dropped session customer from another store",
			"customer_id", cust.ID, "customer_store_id", cust.StoreID, "store_id", st.ID)
		return nil
	}

	if principal == nil || !principal.HasRole(RoleAuthCustomer) {
		sess.Delete(SessionKeyCustomer)
		r.logger.Debug("dropped session customer without customer role",
			"customer_id", cust.ID)
		return nil
	}

	return &cust
}

// anonymousCustomer returns the session's anonymous customer, creating it on
// first use. The billing address is seeded from geo-IP when available and
// falls back to the store's own location.
func (r *Reconciler) anonymousCustomer(ctx context.Context, sess *session.Session, st *store.Store, clientIP string) *Customer {
	if anon, ok := session.Decode[Customer](sess, SessionKeyAnonymous); ok {
		return &anon
	}

	anon := &Customer{
		StoreID:   st.ID,
		Anonymous: true,
		Billing:   r.visitorAddress(ctx, st, clientIP),
	}
	sess.Set(SessionKeyAnonymous, anon)
	return anon
}

func (r *Reconciler) visitorAddress(ctx context.Context, st *store.Store, clientIP string) Address {
	var addr Address

	if r.locator != nil && clientIP != "" {
		loc, err := r.locator.Locate(ctx, clientIP)
		if err != nil {
			r.logger.DebugContext(ctx, "geo-ip lookup failed", "ip", clientIP, "error", err)
		} else {
			addr.Country = loc.Country
			addr.City = loc.City
			addr.Zone = loc.Zone
		}
	}

	if addr.Country == "" {
		addr.Country = st.Country
		if st.Zone != "" {
			addr.Zone = st.Zone
		} else {
			addr.StateProvince = st.StateProvince
		}
	}

	return addr
}
