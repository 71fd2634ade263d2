// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose schema migrations routed through the application
// logger, and a health check closure for the HTTP server.
//
// Configuration comes from environment variables via the Config struct; see
// its field tags for variable names and defaults.
package pg
