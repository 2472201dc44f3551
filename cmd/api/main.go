package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/fkhayef/social/docs"
	"github.com/fkhayef/social/internal/config"
	"github.com/fkhayef/social/internal/database"
	"github.com/fkhayef/social/internal/repository"
	"github.com/fkhayef/social/internal/repository/sqlstore"
	"github.com/fkhayef/social/internal/social"
	"github.com/fkhayef/social/pkg/logger"
	mw "github.com/fkhayef/social/pkg/middleware"
)

// @title           Social API
// @version         1.0
// @description     Persons, friendships, groups and a paginated post feed.
// @host            localhost:8080
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	lg := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeStore, err := openRepositories(ctx, cfg)
	if err != nil {
		lg.Fatal("Failed to open storage", zap.String("mode", cfg.StorageMode), zap.Error(err))
	}
	defer closeStore()

	lg.Info("Storage ready", zap.String("mode", cfg.StorageMode))

	svc := social.New(repos, social.WithLogger(lg))
	handler := social.NewHandler(svc, social.PageLimits{
		Default: cfg.DefaultPageLength,
		Max:     cfg.MaxPageLength,
	}, lg.Named("http"))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(lg))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Mount("/api/v1", handler.Routes())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// openRepositories builds the repositories for the configured storage mode
// and returns a function releasing them.
func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(), error) {
	switch cfg.StorageMode {
	case config.StorageMemory:
		return repository.NewMemoryRepositories(), func() {}, nil
	case config.StoragePostgres:
		db, err := database.NewPostgresConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return openStore(ctx, db, sqlstore.Postgres)
	case config.StorageSQLite:
		db, err := database.NewSQLiteConnection(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return openStore(ctx, db, sqlstore.SQLite)
	default:
		return nil, nil, fmt.Errorf("unknown storage mode %q", cfg.StorageMode)
	}
}

func openStore(ctx context.Context, db *sql.DB, dialect sqlstore.Dialect) (*repository.Repositories, func(), error) {
	store, err := sqlstore.New(ctx, db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return store.Repositories(), func() { _ = store.Close() }, nil
}
