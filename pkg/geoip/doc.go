// Package geoip resolves client IP addresses to coarse locations for
// seeding anonymous visitor addresses. Lookups are strictly best-effort:
// every caller must have a deterministic fallback for a failed lookup.
package geoip
