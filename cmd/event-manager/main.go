package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"eventManager/internal/config"
	"eventManager/internal/http-server/middleware/cache"
	"eventManager/internal/http-server/router"
	"eventManager/internal/lib/logger/handlers/slogpretty"
	"eventManager/internal/lib/logger/sl"
	"eventManager/internal/service"
	"eventManager/internal/storage"
	"eventManager/internal/storage/memory"
	"eventManager/internal/storage/mongodb"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("starting event manager",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Type),
	)
	log.Debug("debug messages are enabled")

	var (
		store   storage.Store
		closeDB func() error
	)
	switch cfg.Storage.Type {
	case "mongo":
		mongoStore, err := mongodb.InitDB(&cfg.Storage.Mongo)
		if err != nil {
			log.Error("failed to init storage", sl.Err(err))
			os.Exit(1)
		}
		store = mongoStore
		closeDB = mongoStore.Close
	case "memory":
		store = memory.New()
		closeDB = func() error { return nil }
	default:
		log.Error("unknown storage type", slog.String("type", cfg.Storage.Type))
		os.Exit(1)
	}

	svc := service.New(store, cfg.Media)

	var responseCache *cache.Cache
	if cfg.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Cache.RedisAddr})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Error("failed to ping redis, response cache disabled", sl.Err(err))
		} else {
			responseCache = cache.New(rdb, cfg.Cache.TTL)
			log.Info("response cache enabled", slog.String("redis", cfg.Cache.RedisAddr))
		}
	}

	handler := router.New(log, svc, cfg, responseCache)

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	if err := closeDB(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("application stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
