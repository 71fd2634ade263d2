package content

import "errors"

var (
	// ErrContentNotFound is returned when a content lookup matches nothing.
	ErrContentNotFound = errors.New("content not found")
)
