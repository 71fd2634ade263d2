package storefront_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croissant676/shopizer/pkg/breadcrumb"
	"github.com/croissant676/shopizer/pkg/cache"
	"github.com/croissant676/shopizer/pkg/catalog"
	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/customer"
	"github.com/croissant676/shopizer/pkg/i18n"
	"github.com/croissant676/shopizer/pkg/session"
	"github.com/croissant676/shopizer/pkg/storefront"
	"github.com/croissant676/shopizer/pkg/store"
)

type fixture struct {
	pipeline   *storefront.Pipeline
	contentSvc *fakeContentService
	configSvc  *fakeConfigService
	categories *fakeCategoryFacade
	general    *cache.Store
	navigation *cache.Store
}

type fakeContentService struct {
	boxes []content.Content
	pages []content.ContentDescription
	err   error

	listCalls int
}

func (f *fakeContentService) ListByType(_ context.Context, _ []content.ContentType, _ *store.Store, _ string) ([]content.Content, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.boxes, nil
}

func (f *fakeContentService) ListNamesByType(_ context.Context, _ []content.ContentType, _ *store.Store, _ string) ([]content.ContentDescription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

func (f *fakeContentService) GetByLanguage(_ context.Context, _ int64, _ string) (*content.Content, error) {
	return nil, content.ErrContentNotFound
}

type fakeConfigService struct {
	entries []content.Configuration
}

func (f *fakeConfigService) ListByType(_ context.Context, typ content.ConfigurationType, _ *store.Store) ([]content.Configuration, error) {
	if typ == content.ConfigurationTypeConfig {
		return f.entries, nil
	}
	return nil, nil
}

func (f *fakeConfigService) MerchantConfig(context.Context, *store.Store) (*content.MerchantConfig, error) {
	return nil, nil
}

type fakeCategoryFacade struct {
	categories []catalog.ReadableCategory
	calls      int
}

func (f *fakeCategoryFacade) CategoryHierarchy(_ context.Context, _ *store.Store, _ string, _, pageSize int) (*catalog.ReadableCategoryList, error) {
	f.calls++
	if pageSize != catalog.DefaultPageSize {
		return nil, errors.New("unexpected page size")
	}
	return &catalog.ReadableCategoryList{Categories: f.categories, TotalCount: len(f.categories)}, nil
}

type fakeCustomerService struct{}

func (fakeCustomerService) GetByNick(context.Context, string, int64) (*customer.Customer, error) {
	return nil, customer.ErrCustomerNotFound
}

type fakeCategoryService struct{}

func (fakeCategoryService) ByLanguage(context.Context, int64, string) (*catalog.Category, error) {
	return nil, catalog.ErrCategoryNotFound
}

type fakeProductService struct{}

func (fakeProductService) ProductForLocale(context.Context, int64, string) (*catalog.Product, error) {
	return nil, catalog.ErrProductNotFound
}

func defaultStore() *store.Store {
	return &store.Store{
		ID:              1,
		Code:            store.DefaultStoreCode,
		Name:            "Default store",
		DefaultLanguage: "en",
		Country:         "CA",
		UseCache:        true,
	}
}

func newFixture(t *testing.T, st *store.Store) *fixture {
	t.Helper()

	provider := store.ProviderFunc(func(_ context.Context, code string) (*store.Store, error) {
		if code == st.Code {
			copied := *st
			return &copied, nil
		}
		return nil, store.ErrStoreNotFound
	})

	translator := i18n.NewTranslator()
	translator.AddCatalog("en", map[string]string{"menu.home": "Home"})
	translator.AddCatalog("fr", map[string]string{"menu.home": "Accueil"})

	contentSvc := &fakeContentService{}
	configSvc := &fakeConfigService{entries: []content.Configuration{{Key: "currency", Value: "CAD"}}}
	categories := &fakeCategoryFacade{}
	general := cache.NewStore("storefront", 64)
	navigation := cache.NewStore("navigation", 16)

	pipeline := storefront.New(storefront.Deps{
		Stores:         store.NewResolver(provider),
		Customers:      customer.NewReconciler(fakeCustomerService{}),
		Languages:      i18n.NewResolver(i18n.WithSupportedLanguages("en", "fr")),
		Breadcrumbs:    breadcrumb.NewAssembler(fakeProductService{}, fakeCategoryService{}, contentSvc, translator),
		Content:        contentSvc,
		Configurations: configSvc,
		Categories:     categories,
	},
		storefront.WithCaches(general, navigation),
		storefront.WithScheme(content.SchemeConfig{ShopScheme: "https"}),
	)

	return &fixture{
		pipeline:   pipeline,
		contentSvc: contentSvc,
		configSvc:  configSvc,
		categories: categories,
		general:    general,
		navigation: navigation,
	}
}

func assembleRequest(t *testing.T, p *storefront.Pipeline, sess *session.Session, target string) *storefront.Context {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := session.WithSession(req.Context(), sess)
	return p.Assemble(ctx, req.WithContext(ctx))
}

func TestPipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())
	f.categories.categories = []catalog.ReadableCategory{
		{ID: 1, Code: "shoes", Visible: true},
		{ID: 2, Code: "drafts", Visible: false},
	}

	sess := session.NewSession("tok", nil, time.Hour)
	sc := assembleRequest(t, f.pipeline, sess, "/shop?store=DEFAULT")

	require.NotNil(t, sc.Store)
	assert.Equal(t, store.DefaultStoreCode, sc.Store.Code)
	assert.Equal(t, "en", sc.LanguageCode)

	require.NotNil(t, sc.Breadcrumb)
	require.Len(t, sc.Breadcrumb.Items, 1)
	assert.Equal(t, breadcrumb.TypeHome, sc.Breadcrumb.Items[0].Type)

	require.Len(t, sc.TopCategories, 1, "invisible categories are filtered")
	assert.Equal(t, "shoes", sc.TopCategories[0].Code)
	assert.Equal(t, 1, f.categories.calls)

	require.NotNil(t, sc.AnonymousCustomer)
	assert.Equal(t, "CA", sc.AnonymousCustomer.Billing.Country)

	assert.Equal(t, "CAD", sc.Configs["currency"])
	assert.Equal(t, "https", sc.Configs[content.KeyShopScheme])

	// second request of the same session hits the navigation cache
	sc2 := assembleRequest(t, f.pipeline, sess, "/shop")
	assert.Equal(t, 1, f.categories.calls, "cached hierarchy must not reload")
	require.Len(t, sc2.TopCategories, 1)
}

func TestPipeline_NoSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())

	req := httptest.NewRequest(http.MethodGet, "/shop", nil)
	sc := f.pipeline.Assemble(req.Context(), req)

	require.NotNil(t, sc)
	assert.Nil(t, sc.Store, "assembly stops without a session")
	assert.Zero(t, f.categories.calls)
}

func TestPipeline_CacheBypassPerStore(t *testing.T) {
	t.Parallel()

	st := defaultStore()
	st.UseCache = false
	f := newFixture(t, st)
	f.categories.categories = []catalog.ReadableCategory{{ID: 1, Code: "shoes", Visible: true}}

	sess := session.NewSession("tok", nil, time.Hour)
	assembleRequest(t, f.pipeline, sess, "/shop")
	assembleRequest(t, f.pipeline, sess, "/shop")

	assert.Equal(t, 2, f.categories.calls, "caching disabled loads every request")
	assert.Zero(t, f.navigation.Len())
}

func TestPipeline_EmptyLoadNeverCached(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())
	f.configSvc.entries = nil

	sess := session.NewSession("tok", nil, time.Hour)
	assembleRequest(t, f.pipeline, sess, "/shop")
	assembleRequest(t, f.pipeline, sess, "/shop")

	assert.Equal(t, 2, f.contentSvc.listCalls, "empty content is recomputed every request")
	assert.Zero(t, f.general.Len(), "empty content, page and config loads must not be cached")
	assert.Zero(t, f.navigation.Len())
}

func TestPipeline_ContentMapAndLandingPageOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())
	f.contentSvc.boxes = []content.Content{
		{
			Code:    content.LandingPageCode,
			Visible: true,
			Description: content.ContentDescription{
				Name:               "Landing",
				Title:              "Welcome",
				MetatagDescription: "The default store",
				MetatagKeywords:    "shop,default",
			},
		},
		{Code: "hidden", Visible: false},
	}

	sess := session.NewSession("tok", nil, time.Hour)
	sc := assembleRequest(t, f.pipeline, sess, "/shop")

	require.Len(t, sc.ContentMap, 1)
	assert.Equal(t, "Welcome", sc.PageInformation.Title)
	assert.Equal(t, "The default store", sc.PageInformation.Description)
	assert.Equal(t, "shop,default", sc.PageInformation.Keywords)
}

func TestPipeline_PageInformationDefaultsToStoreName(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())

	sess := session.NewSession("tok", nil, time.Hour)
	sc := assembleRequest(t, f.pipeline, sess, "/shop")

	assert.Equal(t, "Default store", sc.PageInformation.Title)
	assert.Equal(t, "Default store", sc.PageInformation.Keywords)
}

func TestPipeline_ShoppingCartPassthrough(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())

	sess := session.NewSession("tok", nil, time.Hour)
	sess.Set(storefront.SessionKeyShoppingCart, "cart-42")

	sc := assembleRequest(t, f.pipeline, sess, "/shop")
	assert.Equal(t, "cart-42", sc.ShoppingCartCode)
}

func TestPipeline_FailOpenOnContentError(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())
	f.contentSvc.err = errors.New("cms down")

	sess := session.NewSession("tok", nil, time.Hour)
	sc := assembleRequest(t, f.pipeline, sess, "/shop")

	require.NotNil(t, sc.Store, "store stage is unaffected")
	assert.Nil(t, sc.ContentMap)
	assert.Equal(t, "en", sc.LanguageCode)
}

func TestBypass(t *testing.T) {
	t.Parallel()

	assert.True(t, storefront.Bypass("/services/private/products"))
	assert.True(t, storefront.Bypass("/SERVICES/public"))
	assert.True(t, storefront.Bypass("/shop/reference/catalog"))
	assert.False(t, storefront.Bypass("/shop"))
}

func TestPipeline_Middleware(t *testing.T) {
	t.Parallel()

	f := newFixture(t, defaultStore())

	t.Run("publishes context", func(t *testing.T) {
		t.Parallel()

		var published *storefront.Context
		handler := f.pipeline.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			published, _ = storefront.FromContext(r.Context())
		}))

		sess := session.NewSession("tok", nil, time.Hour)
		req := httptest.NewRequest(http.MethodGet, "/shop", nil)
		req = req.WithContext(session.WithSession(req.Context(), sess))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, published)
		assert.NotNil(t, published.Store)
	})

	t.Run("bypass path skips assembly", func(t *testing.T) {
		t.Parallel()

		var ok bool
		handler := f.pipeline.Middleware(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, ok = storefront.FromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/services/private", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.False(t, ok, "excluded paths carry no assembled context")
	})
}
