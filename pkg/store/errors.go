package store

import "errors"

var (
	// ErrStoreNotFound is returned when no store matches a code.
	ErrStoreNotFound = errors.New("store not found")

	// ErrNoStoreResolved is returned when even the default store cannot be
	// resolved. This is the pipeline's only hard failure mode.
	ErrNoStoreResolved = errors.New("no store could be resolved")
)
