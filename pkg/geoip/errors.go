package geoip

import "errors"

var (
	// ErrEmptyAddress indicates a lookup with no IP address.
	ErrEmptyAddress = errors.New("geoip: empty ip address")

	// ErrLookupFailed indicates the geo-IP backend returned no usable
	// answer.
	ErrLookupFailed = errors.New("geoip: lookup failed")
)
