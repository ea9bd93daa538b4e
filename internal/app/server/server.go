package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"perftrack/internal/domain/auth"
	"perftrack/internal/domain/core"
	"perftrack/internal/domain/document"
	"perftrack/internal/domain/leave"
	"perftrack/internal/domain/performance"
	"perftrack/internal/domain/reports"
	"perftrack/internal/domain/rules"
	"perftrack/internal/domain/tasks"
	"perftrack/internal/platform/config"
	"perftrack/internal/platform/db"
	"perftrack/internal/platform/jobs"
	"perftrack/internal/platform/logger"
	"perftrack/internal/platform/metrics"
	authhandler "perftrack/internal/transport/http/handlers/auth"
	corehandler "perftrack/internal/transport/http/handlers/core"
	documenthandler "perftrack/internal/transport/http/handlers/document"
	leavehandler "perftrack/internal/transport/http/handlers/leave"
	metricshandler "perftrack/internal/transport/http/handlers/metrics"
	performancehandler "perftrack/internal/transport/http/handlers/performance"
	reportshandler "perftrack/internal/transport/http/handlers/reports"
	ruleshandler "perftrack/internal/transport/http/handlers/rules"
	taskshandler "perftrack/internal/transport/http/handlers/tasks"
	"perftrack/internal/transport/http/middleware"
)

const devJWTSecret = "perftrack-dev-secret"

type App struct {
	Config  config.Config
	Log     *zap.Logger
	Store   *document.Store
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Router  http.Handler

	pool *pgxpool.Pool
}

// OpenStore builds the document store for cfg: Postgres when DATABASE_URL is
// set, the JSON file under DATA_DIR otherwise. The returned pool is nil for
// the file backend.
func OpenStore(ctx context.Context, cfg config.Config, log *zap.Logger, opts ...document.Option) (*document.Store, *pgxpool.Pool, error) {
	opts = append([]document.Option{
		document.WithMaxBytes(cfg.MaxDocumentBytes),
		document.WithDefaultAdminPassword(cfg.SeedAdminPassword),
	}, opts...)

	if cfg.DatabaseURL == "" {
		backend := document.NewFileBackend(cfg.DataDir, cfg.DocumentName)
		return document.NewStore(backend, log, opts...), nil, nil
	}

	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("db connect: %w", err)
	}
	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}
	backend := document.NewPostgresBackend(pool, cfg.DocumentName)
	return document.NewStore(backend, log, opts...), pool, nil
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	storeAs, err := auth.ParseCredentialKind(cfg.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	collector := metrics.New()
	store, pool, err := OpenStore(ctx, cfg, log, document.WithSaveHook(func(res document.SaveResult) {
		collector.RecordSave(res.Success)
	}))
	if err != nil {
		return nil, err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		log.Warn("JWT_SECRET not set; using development secret")
		secret = devJWTSecret
	}
	loc := cfg.Location()

	coreSvc := core.NewService(store, log)
	perfSvc := performance.NewService(store, log, loc)
	taskSvc := tasks.NewService(store, log, loc)
	ruleSvc := rules.NewService(store, log, loc)
	leaveSvc := leave.NewService(store, log)
	authSvc := auth.NewService(store, log, secret, cfg.TokenTTL)
	authSvc.StoreAs = storeAs
	reportSvc := reports.NewService(store, loc)

	app := &App{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Metrics: collector,
		Jobs:    jobs.New(taskSvc, collector, log, cfg.AutoPopulateInterval),
		pool:    pool,
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(secret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute, middleware.WithLogger(log)))
	router.Use(middleware.SensitiveMutationRateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", app.handleReady)
	if cfg.MetricsEnabled {
		metricshandler.NewHandler(collector).RegisterRoutes(router)
	}

	router.Route("/api", func(r chi.Router) {
		documenthandler.NewHandler(store, log).RegisterRoutes(r)

		r.Route("/v1", func(r chi.Router) {
			authhandler.NewHandler(authSvc).RegisterRoutes(r)
			corehandler.NewHandler(coreSvc).RegisterRoutes(r)
			performancehandler.NewHandler(perfSvc).RegisterRoutes(r)
			taskshandler.NewHandler(taskSvc).RegisterRoutes(r)
			ruleshandler.NewHandler(ruleSvc).RegisterRoutes(r)
			leavehandler.NewHandler(leaveSvc, loc).RegisterRoutes(r)
			reportshandler.NewHandler(reportSvc).RegisterRoutes(r)
		})
	})

	if cfg.FrontendDir != "" {
		router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	}

	app.Router = router
	return app, nil
}

func (a *App) handleReady(w http.ResponseWriter, r *http.Request) {
	if a.pool != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// Run serves the application until SIGINT or SIGTERM.
func Run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, err := logger.New(logger.ForEnvironment(cfg.Environment, cfg.LogLevel, cfg.LogFormat, cfg.LogOutput))
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("perftrack listening",
			zap.String("addr", cfg.Addr),
			zap.String("env", cfg.Environment),
			zap.String("store", app.Store.Location()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("graceful shutdown failed", zap.Error(err))
	}
	stop()
	app.Jobs.Wait()
	return nil
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
