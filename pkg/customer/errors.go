package customer

import "errors"

var (
	// ErrCustomerNotFound is returned when a customer lookup matches nothing.
	ErrCustomerNotFound = errors.New("customer not found")
)
