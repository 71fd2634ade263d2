// Package store defines the storefront tenant model and its per-request
// resolution.
//
// A Store is resolved once per request from three signals in order: an
// explicit "store" request parameter, the session's store affinity, and the
// system default code. The resolution is written back to the session so
// subsequent requests of the same visitor stick to the same store until an
// explicit switch.
package store
