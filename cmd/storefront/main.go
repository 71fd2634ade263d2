package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/croissant676/shopizer/pkg/breadcrumb"
	"github.com/croissant676/shopizer/pkg/cache"
	"github.com/croissant676/shopizer/pkg/config"
	"github.com/croissant676/shopizer/pkg/content"
	"github.com/croissant676/shopizer/pkg/cookie"
	"github.com/croissant676/shopizer/pkg/customer"
	"github.com/croissant676/shopizer/pkg/environment"
	"github.com/croissant676/shopizer/pkg/geoip"
	"github.com/croissant676/shopizer/pkg/httpserver"
	"github.com/croissant676/shopizer/pkg/i18n"
	"github.com/croissant676/shopizer/pkg/logger"
	"github.com/croissant676/shopizer/pkg/pg"
	"github.com/croissant676/shopizer/pkg/postgres"
	"github.com/croissant676/shopizer/pkg/redis"
	"github.com/croissant676/shopizer/pkg/requestid"
	"github.com/croissant676/shopizer/pkg/session"
	"github.com/croissant676/shopizer/pkg/store"
	"github.com/croissant676/shopizer/pkg/storefront"
)

//go:embed locales
var localeFS embed.FS

type appConfig struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"storefront"`

	SessionSecret string `env:"SESSION_SECRET,required"`
	SessionRedis  bool   `env:"SESSION_REDIS" envDefault:"false"`

	SupportedLanguages []string `env:"SUPPORTED_LANGUAGES" envDefault:"en,fr"`

	StoreCacheCapacity int `env:"STORE_CACHE_CAPACITY" envDefault:"64"`
	CacheCapacity      int `env:"CACHE_CAPACITY" envDefault:"512"`
	NavCacheCapacity   int `env:"NAV_CACHE_CAPACITY" envDefault:"128"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	var pgCfg pg.Config
	if err := config.Load(&pgCfg); err != nil {
		return fmt.Errorf("load postgres config: %w", err)
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return fmt.Errorf("load http config: %w", err)
	}
	var sessionCfg session.Config
	if err := config.Load(&sessionCfg); err != nil {
		return fmt.Errorf("load session config: %w", err)
	}
	var geoipCfg geoip.Config
	if err := config.Load(&geoipCfg); err != nil {
		return fmt.Errorf("load geoip config: %w", err)
	}
	var schemeCfg content.SchemeConfig
	if err := config.Load(&schemeCfg); err != nil {
		return fmt.Errorf("load scheme config: %w", err)
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	slog.SetDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	if err := pg.Migrate(ctx, pool, pgCfg, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	healthProbes := []func(context.Context) error{pg.Healthcheck(pool)}

	sessionOpts := []session.Option{session.WithConfig(sessionCfg)}
	if cfg.SessionRedis {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return fmt.Errorf("load redis config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(client)))
		healthProbes = append(healthProbes, redis.Healthcheck(client))
	}

	cookieMgr, err := cookie.New([]string{cfg.SessionSecret})
	if err != nil {
		return fmt.Errorf("create cookie manager: %w", err)
	}
	sessionOpts = append(sessionOpts, session.WithCookieManager(cookieMgr))
	sessionMgr := session.New(sessionOpts...)

	translator := i18n.NewTranslator(i18n.WithDefaultLanguage(cfg.SupportedLanguages[0]))
	if err := translator.LoadFS(localeFS, "locales"); err != nil {
		return fmt.Errorf("load locale catalogs: %w", err)
	}

	stores := postgres.NewStoreRepository(pool)
	customers := postgres.NewCustomerRepository(pool)
	contents := postgres.NewContentRepository(pool)
	configurations := postgres.NewConfigurationRepository(pool)
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	pipeline := storefront.New(
		storefront.Deps{
			Stores: store.NewResolver(
				store.NewCachedProvider(stores, cfg.StoreCacheCapacity),
				store.WithLogger(log),
			),
			Customers: customer.NewReconciler(
				customers,
				customer.WithLocator(geoip.NewHTTPLocator(geoipCfg)),
				customer.WithLogger(log),
			),
			Languages: i18n.NewResolver(
				i18n.WithSupportedLanguages(cfg.SupportedLanguages...),
			),
			Breadcrumbs:    breadcrumb.NewAssembler(products, categories, contents, translator, breadcrumb.WithLogger(log)),
			Content:        contents,
			Configurations: configurations,
			Categories:     categories,
		},
		storefront.WithCaches(
			cache.NewStore("storefront", cfg.CacheCapacity),
			cache.NewStore("navigation", cfg.NavCacheCapacity),
		),
		storefront.WithScheme(schemeCfg),
		storefront.WithLogger(log),
	)

	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(environment.Middleware(environment.Environment(cfg.Env)))
	router.Get("/healthz", httpserver.HealthCheckHandler(ctx, log, healthProbes...))

	router.Group(func(r chi.Router) {
		r.Use(sessionMgr.EnsureSession)
		r.Use(persistSession(sessionMgr, log))
		r.Use(pipeline.Middleware)
		r.Get("/shop", shopHandler(log))
	})

	srv := httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("storefront listening", slog.String("addr", httpCfg.Addr))
		}),
	)
	if err := srv.Run(ctx, router); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// persistSession writes back session data mutated during the request, such
// as the resolved store code, the breadcrumb trail and the anonymous
// customer. Required for external session stores where mutation of the
// in-memory copy alone is not durable.
func persistSession(mgr *session.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			sess, ok := session.FromContext(r.Context())
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 5*time.Second)
			defer cancel()
			if err := mgr.Save(ctx, sess); err != nil {
				log.ErrorContext(r.Context(), "failed to persist session", logger.Error(err))
			}
		})
	}
}

// shopHandler renders the assembled storefront context as JSON. A template
// layer would consume the same context; the JSON surface keeps the pipeline
// observable without one.
func shopHandler(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := storefront.FromContext(r.Context())
		if !ok {
			http.Error(w, "storefront context missing", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(sc); err != nil {
			log.ErrorContext(r.Context(), "failed to encode storefront context", logger.Error(err))
		}
	}
}
