// Package redis connects the storefront to its Redis server: a retrying
// Connect for the session store backend and a health check probe for the
// HTTP server.
//
// Configuration is described by the Config struct, populated from
// environment variables via github.com/caarlos0/env.
package redis
