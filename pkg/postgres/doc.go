// Package postgres implements the read repositories the storefront pipeline
// consumes (stores, customers, CMS content, merchant configuration and the
// category tree) over a pgx connection pool. Schema migrations live in the
// top-level migrations directory.
package postgres
