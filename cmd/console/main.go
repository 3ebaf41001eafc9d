package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cmlabs-hris/hris-console-go/internal/app"
	"github.com/cmlabs-hris/hris-console-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-console-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-console-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-console-go/internal/pkg/storage"
)

const (
	version = "v1.0.0"

	sweepInterval = 5 * time.Minute
	idleTimeout   = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := appHTTP.NewLogger(cfg.App.Env, version, cfg.SlogLevel())
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var blobs storage.BlobStorage
	switch cfg.Session.Store {
	case config.SessionStoreFile:
		blobs, err = storage.NewLocalStorage(cfg.Session.Dir)
		if err != nil {
			log.Fatal("Failed to initialize local session storage:", err)
		}
	case config.SessionStorePostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database:", err)
		}
		defer db.Close()

		pg := storage.NewPostgresStorage(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal("Failed to prepare session table:", err)
		}
		blobs = pg
	case config.SessionStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Error connecting to redis:", err)
		}
		blobs = storage.NewRedisStorage(rdb, appHTTP.AppName+":", cfg.Session.TTL)
	default:
		log.Fatal("Unsupported session store: ", cfg.Session.Store)
	}

	persister, err := storage.NewSealed(blobs, cfg.Session.Secret)
	if err != nil {
		log.Fatal("Failed to initialize session sealing:", err)
	}

	events := sse.NewHub()
	registry := app.NewRegistry(persister, app.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Locale:  cfg.App.Locale,
		Logger:  logger,
		Events:  events,
	})

	scheduler := cron.NewScheduler(logger)
	cron.NewSessionJobs(registry, sweepInterval, idleTimeout, logger).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	secure := cfg.App.CookieSecure || cfg.IsProduction()
	sessions := middleware.NewSessions(cfg.Session.Secret, registry, cfg.Session.TTL, secure)
	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}, sessions, appHTTP.NewHandlers(events))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Console listening", "port", cfg.App.Port, "api", cfg.API.BaseURL, "session_store", cfg.Session.Store)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Server error:", err)
	}
}
