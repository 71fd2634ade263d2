// Package logger builds the application's slog.Logger: JSON or text output,
// environment presets, static service attributes, and context extractors
// that stamp request-scoped values (request id, environment) onto every
// record through a handler decorator.
//
// Attribute helpers (Error, StoreID, CacheKey and friends) keep log keys
// consistent across packages.
package logger
