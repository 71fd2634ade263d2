package i18n

import (
	"net/http"
	"strings"
)

const (
	// QueryParam is the request parameter carrying an explicit language
	// switch.
	QueryParam = "lang"

	// CookieName is the cookie carrying a remembered language preference.
	CookieName = "lang"

	// SessionKeyLanguage is the session key holding the resolved language.
	SessionKeyLanguage = "language"
)

// Session is the minimal session surface the resolver needs.
type Session interface {
	GetString(key string) (string, bool)
	Set(key string, value any)
}

// Resolver determines the request language from the usual signals.
type Resolver struct {
	supported  []string
	queryParam string
	cookieName string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithSupportedLanguages restricts resolution to the given codes.
func WithSupportedLanguages(langs ...string) ResolverOption {
	return func(r *Resolver) {
		if len(langs) > 0 {
			r.supported = langs
		}
	}
}

// WithQueryParam overrides the language query parameter name.
func WithQueryParam(name string) ResolverOption {
	return func(r *Resolver) {
		if name != "" {
			r.queryParam = name
		}
	}
}

// WithCookieName overrides the language cookie name.
func WithCookieName(name string) ResolverOption {
	return func(r *Resolver) {
		if name != "" {
			r.cookieName = name
		}
	}
}

// NewResolver creates a request language resolver.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		queryParam: QueryParam,
		cookieName: CookieName,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve picks the request language, in order: explicit query parameter,
// language cookie, session memory, Accept-Language negotiation, and finally
// the given default (normally the store's default language). The outcome is
// written back to the session so it survives until the visitor switches
// again.
func (r *Resolver) Resolve(req *http.Request, sess Session, defaultLang string) string {
	lang := r.detect(req, sess)
	if lang == "" {
		lang = validateLang(defaultLang, r.supported)
	}
	if lang == "" {
		lang = DefaultLanguage
	}

	sess.Set(SessionKeyLanguage, lang)
	return lang
}

func (r *Resolver) detect(req *http.Request, sess Session) string {
	if raw := strings.TrimSpace(req.URL.Query().Get(r.queryParam)); raw != "" {
		if lang := validateLang(raw, r.supported); lang != "" {
			return lang
		}
	}

	if c, err := req.Cookie(r.cookieName); err == nil && c.Value != "" {
		if lang := validateLang(strings.TrimSpace(c.Value), r.supported); lang != "" {
			return lang
		}
	}

	if remembered, ok := sess.GetString(SessionKeyLanguage); ok {
		if lang := validateLang(remembered, r.supported); lang != "" {
			return lang
		}
	}

	if header := req.Header.Get("Accept-Language"); header != "" {
		if len(r.supported) > 0 {
			return ParseAcceptLanguage(header, r.supported, "")
		}
		if langs := parseAcceptLanguageHeader(header); len(langs) > 0 {
			return langs[0].lang
		}
	}

	return ""
}
