package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/dariadocs/namescreen/internal/cache"
	nsconfig "github.com/dariadocs/namescreen/internal/config"
	"github.com/dariadocs/namescreen/internal/dictionaries"
	"github.com/dariadocs/namescreen/internal/flags"
	"github.com/dariadocs/namescreen/internal/httpapi"
	"github.com/dariadocs/namescreen/internal/morphology"
	"github.com/dariadocs/namescreen/internal/obslog"
	"github.com/dariadocs/namescreen/internal/orchestrator"
)

func main() {
	appEnv := getEnv("APP_ENV", "development")
	logger, err := obslog.New(appEnv)
	if err != nil {
		log.Fatal("cannot initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("starting name normalization service", zap.String("env", appEnv))

	flagFile, err := nsconfig.Load("./config")
	if err != nil {
		logger.Fatal("failed to load feature flag config", zap.Error(err))
	}
	fm := flags.NewManager(flagFile.Section(appEnv))

	dicts, err := dictionaries.Load()
	if err != nil {
		logger.Fatal("failed to load dictionaries", zap.Error(err))
	}
	morph := morphology.New(dicts)

	cacheImpl := initCache(logger)
	defer cacheImpl.Close()

	orch := orchestrator.New(fm, dicts, morph, cacheImpl, logger)
	router := httpapi.NewRouter(orch, logger)

	port := getEnv("APP_PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("http server listening", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server exited")
}

// initCache builds the C9 cache: Redis when REDIS_URL is set, an
// in-memory LRU otherwise. A Redis dial failure is non-fatal — the
// service falls back to in-memory memoization rather than refusing to
// start over an optional dependency.
func initCache(logger *zap.Logger) cache.Cache {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		redisCache, err := cache.NewRedisCache(redisURL, logger)
		if err != nil {
			logger.Warn("failed to connect to redis cache, falling back to in-memory", zap.Error(err))
		} else {
			logger.Info("using redis cache backend")
			return redisCache
		}
	}

	size := getEnvInt("CACHE_SIZE", 10000)
	mem, err := cache.NewMemoryCache(size, cache.DefaultTTL)
	if err != nil {
		logger.Fatal("failed to initialize in-memory cache", zap.Error(err))
	}
	return mem
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
