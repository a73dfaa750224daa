package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/diagnosis/elsabor-web/internal/content"
	"github.com/diagnosis/elsabor-web/internal/http/handlers"
	"github.com/diagnosis/elsabor-web/internal/http/middleware"
	"github.com/diagnosis/elsabor-web/internal/http/render"
	"github.com/diagnosis/elsabor-web/internal/i18n"
	"github.com/diagnosis/elsabor-web/internal/locale"
	"github.com/diagnosis/elsabor-web/internal/notify"
	"github.com/diagnosis/elsabor-web/internal/platform/mailer"
	"github.com/diagnosis/elsabor-web/internal/repo/postgres"
	"github.com/diagnosis/elsabor-web/internal/repo/redis"
	"github.com/diagnosis/elsabor-web/pkg/config"
	"github.com/diagnosis/elsabor-web/pkg/database"
	"github.com/diagnosis/elsabor-web/pkg/events"
	"github.com/diagnosis/elsabor-web/pkg/logger"
	mw "github.com/diagnosis/elsabor-web/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.SetDefault(logger.New(os.Stdout, cfg.Log.Level))

	ctx := context.Background()

	loc, err := time.LoadLocation(cfg.Site.TimeZone)
	if err != nil {
		logger.Error("Invalid TIMEZONE", "timezone", cfg.Site.TimeZone, "error", err)
		os.Exit(1)
	}

	resolver, err := locale.NewResolver(os.DirFS(cfg.Site.LocalesDir), cfg.Site.DefaultLang, cfg.Site.SupportedLangs)
	if err != nil {
		logger.Error("Failed to set up locales", "error", err)
		os.Exit(1)
	}
	catalog, err := i18n.NewCatalog(cfg.Site.DefaultLang)
	if err != nil {
		logger.Error("Failed to load message catalog", "error", err)
		os.Exit(1)
	}
	renderer, err := render.New()
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	mail, err := mailer.New(cfg.Email)
	if err != nil {
		logger.Error("Failed to set up mailer", "error", err)
		os.Exit(1)
	}

	// Connect to event bus; optional
	eventBus, err := events.Connect(cfg.NATS.URL)
	if err != nil {
		logger.Warn("NATS unavailable, submission events disabled", "error", err)
		eventBus = events.Nop{}
	}
	defer eventBus.Close()

	store, closeStore, err := rateLimitStore(ctx, cfg.RateLimit)
	if err != nil {
		logger.Error("Failed to set up rate limit store", "backend", cfg.RateLimit.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	dispatcher := notify.NewDispatcher(mail, catalog, eventBus, cfg.Email.Operator, cfg.Email.SendTimeout)
	site := handlers.NewSiteHandler(resolver, catalog, content.Default(), dispatcher, renderer, loc)

	keyFunc := middleware.IPKeyFunc
	if len(cfg.RateLimit.TrustedProxies) > 0 {
		proxies, err := middleware.ParseCIDRs(cfg.RateLimit.TrustedProxies)
		if err != nil {
			logger.Error("Invalid RATE_LIMIT_TRUSTED_PROXIES", "error", err)
			os.Exit(1)
		}
		keyFunc = middleware.ProxyIPKeyFunc(proxies)
	}

	limiter := middleware.NewRateLimiter(store, middleware.RateLimitConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
		KeyFunc:  keyFunc,
		SkipFunc: middleware.SkipStatic,
		Message: func(r *http.Request) string {
			return catalog.T(requestLang(resolver, r), "error_rate_limited", nil)
		},
	})

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(mw.RequestID)
	r.Use(mw.ServiceName("elsabor-web"))
	r.Use(mw.Logging)
	r.Use(chimw.Recoverer)
	r.Use(mw.SecureHeaders)
	r.Use(mw.CORS(cfg.CORS.AllowedOrigins, cfg.CORS.MaxAge))
	r.Use(mw.Health)
	r.Use(limiter.Middleware())

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.Site.StaticDir))))
	r.Mount("/", site.Routes())

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	idle := make(chan struct{})
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down web server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Web server shutdown error", "error", err)
		}
		close(idle)
	}()

	logger.Info("Starting web server",
		"addr", srv.Addr,
		"default_lang", cfg.Site.DefaultLang,
		"email_driver", cfg.Email.Driver,
		"rate_limit_backend", cfg.RateLimit.Backend,
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Web server error", "error", err)
		os.Exit(1)
	}
	<-idle
}

// rateLimitStore builds the configured counter store and its cleanup.
func rateLimitStore(ctx context.Context, cfg config.RateLimitConfig) (middleware.Store, func(), error) {
	switch cfg.Backend {
	case "redis":
		client, err := redis.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redis.NewRateLimitRepo(client), func() { _ = client.Close() }, nil
	case "postgres":
		pool, err := database.Connect(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewRateLimitRepo(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		go purgeRateLimits(repo, cfg.Window)
		return repo, pool.Close, nil
	default:
		return middleware.NewMemoryStore(), func() {}, nil
	}
}

func purgeRateLimits(repo *postgres.RateLimitRepo, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for range t.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		n, err := repo.Purge(ctx)
		cancel()
		if err != nil {
			logger.Warn("rate limit purge failed", "error", err)
			continue
		}
		logger.Debug("rate limit purge", "deleted", n)
	}
}

// requestLang picks the language from the first path segment, before the
// site router has run.
func requestLang(resolver *locale.Resolver, r *http.Request) string {
	seg, _, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if resolver.IsSupported(seg) {
		return seg
	}
	return resolver.Default()
}
