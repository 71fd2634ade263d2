// Package i18n resolves the request language and localizes messages.
//
// The Resolver reads the usual signals in priority order (query parameter,
// cookie, session memory, Accept-Language) and remembers the outcome in the
// session; the store's default language is the final fallback. The
// Translator serves flat message catalogs loaded from JSON or YAML files,
// falling back to the default language and then to the message key itself.
package i18n
