package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/content-engagement-api/internal/api"
	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/database"
	"github.com/content-engagement-api/internal/notify"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/search"
	"github.com/content-engagement-api/internal/service"
	"github.com/content-engagement-api/internal/session"
	"github.com/content-engagement-api/pkg/logger"
	"github.com/rs/zerolog"
)

func main() {
	// Initialize logger
	log := logger.New()
	log.Info().Msg("Starting Content Engagement API server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "./migrations"
	}
	if err := db.RunMigrations(migrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize visitor session store
	sessions, err := newSessionStore(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session store")
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize collaborator boundaries and services
	indexer := search.NewLogIndexer(log)
	notifier := notify.NewLogNotifier(log)
	services := service.NewServices(repos, sessions, indexer, notifier, cfg, log)

	// Initialize router
	router := api.NewRouter(services, sessions, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}

// newSessionStore selects the configured session backend
func newSessionStore(cfg *config.Config, log zerolog.Logger) (session.Store, error) {
	if cfg.Session.Backend == "redis" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		store, err := session.NewRedisStore(ctx,
			cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB, cfg.Session.TTL)
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Session.RedisAddr).Msg("Session store using Redis")
		return store, nil
	}

	log.Info().Msg("Session store using in-process memory")
	return session.NewMemoryStore(), nil
}
