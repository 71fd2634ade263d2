package catalog

import "errors"

var (
	// ErrCategoryNotFound is returned when a category lookup matches nothing.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrProductNotFound is returned when a product lookup matches nothing.
	ErrProductNotFound = errors.New("product not found")
)
