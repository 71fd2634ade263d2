package storefront

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/croissant676/shopizer/pkg/breadcrumb"
	"github.com/croissant676/shopizer/pkg/cache"
	"github.com/croissant676/shopizer/pkg/catalog"
	"github.com/croissant676/shopizer/pkg/clientip"
	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/customer"
	"github.com/croissant676/shopizer/pkg/i18n"
	"github.com/croissant676/shopizer/pkg/session"
	"github.com/croissant676/shopizer/pkg/store"
)

const (
	// ServicesURLPattern and ReferenceURLPattern mark request paths that
	// bypass assembly entirely.
	ServicesURLPattern  = "/services"
	ReferenceURLPattern = "/reference"

	// SessionKeyShoppingCart is the session key whose cart code is passed
	// through to the assembled context.
	SessionKeyShoppingCart = "shopping_cart"
)

// PrincipalFunc extracts the authenticated principal from a request, nil
// when the request is unauthenticated.
type PrincipalFunc func(r *http.Request) customer.Principal

// Deps are the collaborators every pipeline needs.
type Deps struct {
	Stores         *store.Resolver
	Customers      *customer.Reconciler
	Languages      *i18n.Resolver
	Breadcrumbs    *breadcrumb.Assembler
	Content        content.Service
	Configurations content.ConfigurationService
	Categories     catalog.Facade
}

// Pipeline assembles the storefront context for each inbound request.
type Pipeline struct {
	deps      Deps
	cache     *cache.Store
	navCache  *cache.Store
	scheme    content.SchemeConfig
	principal PrincipalFunc
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithCaches sets the general-purpose and navigation cache instances.
func WithCaches(general, navigation *cache.Store) Option {
	return func(p *Pipeline) {
		if general != nil {
			p.cache = general
		}
		if navigation != nil {
			p.navCache = navigation
		}
	}
}

// WithScheme sets the deployment-wide values injected into merged merchant
// configuration.
func WithScheme(scheme content.SchemeConfig) Option {
	return func(p *Pipeline) {
		p.scheme = scheme
	}
}

// WithPrincipalFunc sets the principal extractor used for identity
// reconciliation.
func WithPrincipalFunc(f PrincipalFunc) Option {
	return func(p *Pipeline) {
		p.principal = f
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New creates an assembly pipeline. Cache instances default to modest
// capacities when not provided.
func New(deps Deps, opts ...Option) *Pipeline {
	p := &Pipeline{
		deps:     deps,
		cache:    cache.NewStore("storefront", 512),
		navCache: cache.NewStore("navigation", 128),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Middleware runs assembly in front of the wrapped handler and publishes
// the result on the request context. Service and reference paths skip
// assembly entirely.
func (p *Pipeline) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Bypass(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		sc := p.Assemble(r.Context(), r)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), sc)))
	})
}

// Bypass reports whether a request path is excluded from assembly.
func Bypass(path string) bool {
	lower := strings.ToLower(path)
	return strings.Contains(lower, ServicesURLPattern) ||
		strings.Contains(lower, ReferenceURLPattern)
}

// Assemble runs every stage in fixed order and returns whatever was built.
// Each stage failure is logged and contained; the request always proceeds
// with the partial context assembled so far.
func (p *Pipeline) Assemble(ctx context.Context, r *http.Request) *Context {
	sc := &Context{}

	sess, ok := session.FromContext(ctx)
	if !ok {
		p.logger.ErrorContext(ctx, "no session on request, skipping assembly")
		return sc
	}

	st, err := p.deps.Stores.Resolve(ctx, sess, r.URL.Query().Get(store.RequestParam))
	if err != nil {
		p.logger.ErrorContext(ctx, "store resolution failed", "error", err)
		return sc
	}
	sc.Store = st

	p.reconcileIdentity(ctx, r, sess, sc)

	lang := p.deps.Languages.Resolve(r, sess, st.DefaultLanguage)
	sc.LanguageCode = lang

	sc.Breadcrumb = p.deps.Breadcrumbs.Assemble(ctx, sess, lang)

	p.loadContent(ctx, sc, lang)
	p.loadContentPages(ctx, sc, lang)
	p.loadTopCategories(ctx, sc, lang)

	sc.PageInformation = p.pageInformation(sc)

	p.loadConfigurations(ctx, sc)

	if code, ok := sess.GetString(SessionKeyShoppingCart); ok {
		sc.ShoppingCartCode = code
	}

	return sc
}

func (p *Pipeline) reconcileIdentity(ctx context.Context, r *http.Request, sess *session.Session, sc *Context) {
	var principal customer.Principal
	if p.principal != nil {
		principal = p.principal(r)
	}

	identity, err := p.deps.Customers.Reconcile(ctx, sess, sc.Store, principal, clientip.GetIP(r))
	if err != nil {
		p.logger.ErrorContext(ctx, "identity reconciliation failed", "error", err)
		return
	}
	sc.Customer = identity.Customer
	sc.AnonymousCustomer = identity.Anonymous
}

// loadContent assembles the visible box and section descriptions. The
// cached value nests the code-indexed map under the full cache key, and
// reads index back by that same key.
func (p *Pipeline) loadContent(ctx context.Context, sc *Context, lang string) {
	key := cache.Key(sc.Store.ID, cache.ClassContent, lang)

	wrapped, err := cache.Aside(ctx, p.cache, sc.Store.UseCache, key,
		func(m map[string]map[string]content.ContentDescription) bool { return len(m) == 0 },
		func(ctx context.Context) (map[string]map[string]content.ContentDescription, error) {
			items, err := p.deps.Content.ListByType(ctx,
				[]content.ContentType{content.TypeBox, content.TypeSection}, sc.Store, lang)
			if err != nil {
				return nil, err
			}
			byCode := content.VisibleByCode(items)
			if len(byCode) == 0 {
				return nil, nil
			}
			return map[string]map[string]content.ContentDescription{key: byCode}, nil
		})
	if err != nil {
		p.logger.ErrorContext(ctx, "content load failed", "cache_key", key, "error", err)
		return
	}
	sc.ContentMap = wrapped[key]
}

func (p *Pipeline) loadContentPages(ctx context.Context, sc *Context, lang string) {
	key := cache.Key(sc.Store.ID, cache.ClassContentPage, lang)

	wrapped, err := cache.Aside(ctx, p.cache, sc.Store.UseCache, key,
		func(m map[string][]content.ContentDescription) bool { return len(m) == 0 },
		func(ctx context.Context) (map[string][]content.ContentDescription, error) {
			names, err := p.deps.Content.ListNamesByType(ctx,
				[]content.ContentType{content.TypePage}, sc.Store, lang)
			if err != nil {
				return nil, err
			}
			if len(names) == 0 {
				return nil, nil
			}
			return map[string][]content.ContentDescription{key: names}, nil
		})
	if err != nil {
		p.logger.ErrorContext(ctx, "content page load failed", "cache_key", key, "error", err)
		return
	}
	sc.ContentPages = wrapped[key]
}

// loadTopCategories uses the dedicated navigation cache; the cached value
// nests the visible category list under the language code.
func (p *Pipeline) loadTopCategories(ctx context.Context, sc *Context, lang string) {
	key := cache.Key(sc.Store.ID, cache.ClassCategories, lang)

	wrapped, err := cache.Aside(ctx, p.navCache, sc.Store.UseCache, key,
		func(m map[string][]catalog.ReadableCategory) bool { return len(m) == 0 },
		func(ctx context.Context) (map[string][]catalog.ReadableCategory, error) {
			list, err := p.deps.Categories.CategoryHierarchy(ctx, sc.Store, lang, 0, catalog.DefaultPageSize)
			if err != nil {
				return nil, err
			}
			visible := catalog.VisibleCategories(list.Categories)
			if len(visible) == 0 {
				return nil, nil
			}
			return map[string][]catalog.ReadableCategory{lang: visible}, nil
		})
	if err != nil {
		p.logger.ErrorContext(ctx, "category load failed", "cache_key", key, "error", err)
		return
	}
	sc.TopCategories = wrapped[lang]
}

// pageInformation derives page metadata: store name everywhere, overridden
// by the landing page descriptor when the content map carries one.
func (p *Pipeline) pageInformation(sc *Context) content.PageInformation {
	page := content.PageInformation{
		Title:       sc.Store.Name,
		Description: sc.Store.Name,
		Keywords:    sc.Store.Name,
	}

	if landing, ok := sc.ContentMap[content.LandingPageCode]; ok {
		page.Title = landing.Title
		page.Description = landing.MetatagDescription
		page.Keywords = landing.MetatagKeywords
	}
	return page
}

func (p *Pipeline) loadConfigurations(ctx context.Context, sc *Context) {
	key := cache.Key(sc.Store.ID, cache.ClassConfig, "")

	configs, err := cache.Aside(ctx, p.cache, sc.Store.UseCache, key,
		func(m map[string]any) bool { return len(m) == 0 },
		func(ctx context.Context) (map[string]any, error) {
			return content.MergeConfigurations(ctx, p.deps.Configurations, sc.Store, p.scheme)
		})
	if err != nil {
		p.logger.ErrorContext(ctx, "configuration load failed", "cache_key", key, "error", err)
		return
	}
	sc.Configs = configs
}
