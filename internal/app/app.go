package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"edu-backoffice/internal/config"
	"edu-backoffice/internal/database"
	"edu-backoffice/internal/handler"
	"edu-backoffice/internal/middleware"
	"edu-backoffice/internal/repository"
	"edu-backoffice/internal/router"
	"edu-backoffice/internal/service"
	"edu-backoffice/internal/storage"
)

type App struct {
	server       *http.Server
	cleanupFuncs []func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}
	fail := func(err error) (*App, error) {
		a.cleanup()
		return nil, err
	}

	store, err := storage.New(cfg.BlogRoot)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize blog storage: %w", err))
	}

	slog.Info("connecting to MongoDB", "database", cfg.MongoDatabase)
	mongoDB, err := database.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return fail(fmt.Errorf("failed to connect to mongo: %w", err))
	}
	a.cleanupFuncs = append(a.cleanupFuncs, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoDB.Close(closeCtx); err != nil {
			slog.Warn("mongo disconnect failed", "error", err)
		}
	})

	credentials, err := a.credentialStore(ctx, cfg, mongoDB)
	if err != nil {
		return fail(err)
	}

	revoked, err := a.revocationStore(ctx, cfg)
	if err != nil {
		return fail(err)
	}

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, revoked)
	if err != nil {
		return fail(fmt.Errorf("failed to initialize token service: %w", err))
	}
	authService := service.NewAuthService(credentials, tokenService, cfg.SessionTTL, cfg.SuperAdminSessionTTL)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	cookies := handler.NewCookieTransport(cfg.CookieDomain, cfg.SecureCookies())
	authHandler := handler.NewAuthHandler(authService, cookies)

	blogService := service.NewBlogService(store)
	blogHandler := handler.NewBlogHandler(blogService)

	dashboardService := service.NewDashboardService(
		repository.NewLeadRepository(mongoDB.Collection(database.LeadsCollection)),
		repository.NewMemberRepository(mongoDB.Collection(database.UsersCollection)),
		repository.NewCourseRepository(mongoDB.Collection(database.CoursesCollection)),
		blogService,
	)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	var runner service.ReportRunner
	if cfg.AnalyticsConfigured() {
		gaRunner, err := service.NewGoogleAnalyticsRunner(ctx, cfg.GAPropertyID, cfg.GAClientEmail, cfg.GAPrivateKey)
		if err != nil {
			return fail(fmt.Errorf("failed to initialize analytics client: %w", err))
		}
		runner = gaRunner
	} else {
		slog.Warn("google analytics credentials missing, /api/analytics will report not configured")
	}
	analyticsHandler := handler.NewAnalyticsHandler(service.NewAnalyticsService(runner))

	appRouter := router.New(cfg, authMiddleware, router.Handlers{
		Auth:      authHandler,
		Dashboard: dashboardHandler,
		Blog:      blogHandler,
		Analytics: analyticsHandler,
	})

	a.server = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           appRouter,
		ReadHeaderTimeout: cfg.ServerReadHeaderTimeout,
		WriteTimeout:      cfg.ServerWriteTimeout,
		IdleTimeout:       cfg.ServerIdleTimeout,
	}

	return a, nil
}

func (a *App) credentialStore(ctx context.Context, cfg *config.Config, mongoDB *database.Mongo) (repository.CredentialStore, error) {
	switch cfg.CredentialStore {
	case config.CredentialStoreMongo:
		slog.Info("using mongo credential store")
		return repository.NewMongoCredentialStore(mongoDB.Collection(database.UsersCollection)), nil
	case config.CredentialStorePostgres:
		slog.Info("connecting to PostgreSQL")
		db, err := database.New(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.cleanupFuncs = append(a.cleanupFuncs, db.Close)

		if err := db.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure database schema: %w", err)
		}
		slog.Info("database ready")
		return repository.NewPostgresCredentialStore(db.Pool), nil
	default:
		store, err := repository.LoadStaticCredentials(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load credentials file: %w", err)
		}
		slog.Info("using static credential store", "file", cfg.CredentialsFile)
		return store, nil
	}
}

func (a *App) revocationStore(ctx context.Context, cfg *config.Config) (repository.RevocationStore, error) {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, revoked sessions are tracked in memory only")
		return repository.NewMemoryRevocationStore(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	a.cleanupFuncs = append(a.cleanupFuncs, func() {
		if err := client.Close(); err != nil {
			slog.Warn("redis close failed", "error", err)
		}
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("redis ready")
	return repository.NewRedisRevocationStore(client), nil
}

func (a *App) cleanup() {
	for i := len(a.cleanupFuncs) - 1; i >= 0; i-- {
		a.cleanupFuncs[i]()
	}
	a.cleanupFuncs = nil
}

func (a *App) Run() error {
	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case err := <-serveErr:
		a.cleanup()
		return fmt.Errorf("server failed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := a.server.Shutdown(ctx)
	a.cleanup()
	if shutdownErr != nil {
		return fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
	}

	slog.Info("server stopped")
	return nil
}
