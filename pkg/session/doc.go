// Package session provides the server-side session container backing the
// storefront assembly pipeline.
//
// A Session carries an open data bag for session-scoped state (store
// affinity, visitor identity, breadcrumb trail, cart code) and is persisted
// through a pluggable Store: an in-memory store for development and tests,
// or a Redis store for multi-instance deployments. Tokens travel in an
// encrypted cookie via the cookie package.
//
// Session-scoped state is owned by one visitor's request stream; parallel
// requests of the same session resolve write races last-write-wins.
package session
