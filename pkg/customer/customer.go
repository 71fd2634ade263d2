package customer

import "context"

// RoleAuthCustomer marks a principal as an authenticated storefront customer.
const RoleAuthCustomer = "AUTH_CUSTOMER"

// Customer is a storefront customer account scoped to a single store.
type Customer struct {
	ID        int64   `json:"id"`
	StoreID   int64   `json:"store_id"`
	Nick      string  `json:"nick"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Anonymous bool    `json:"anonymous"`
	Billing   Address `json:"billing"`
}

// Address is the billing location attached to a customer.
type Address struct {
	Country       string `json:"country,omitempty"`
	City          string `json:"city,omitempty"`
	Zone          string `json:"zone,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
}

// Principal is the authenticated identity attached to a request, typically
// provided by the authentication layer.
type Principal interface {
	// Name returns the login nick of the authenticated user.
	Name() string
	// HasRole reports whether the principal carries the given role.
	HasRole(role string) bool
}

// Service loads customer accounts.
type Service interface {
	// GetByNick fetches the customer with the given nick in the given store.
	// Returns ErrCustomerNotFound when no such customer exists.
	GetByNick(ctx context.Context, nick string, storeID int64) (*Customer, error)
}
