package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	cacheRedis "github.com/streamflix/catalog/internal/cache/redis"
	"github.com/streamflix/catalog/internal/config"
	"github.com/streamflix/catalog/internal/db/postgres"
	"github.com/streamflix/catalog/internal/domain"
	logpkg "github.com/streamflix/catalog/internal/logger"
	"github.com/streamflix/catalog/internal/metrics"
	movierepo "github.com/streamflix/catalog/internal/repository/movie"
	"github.com/streamflix/catalog/internal/repository/suggestcache"
	"github.com/streamflix/catalog/internal/topology"
	chiTransport "github.com/streamflix/catalog/internal/transport/chi"
	analyticsuc "github.com/streamflix/catalog/internal/usecase/analytics"
	cataloguc "github.com/streamflix/catalog/internal/usecase/catalog"
	healthuc "github.com/streamflix/catalog/internal/usecase/health"
	identityuc "github.com/streamflix/catalog/internal/usecase/identity"
	recommenduc "github.com/streamflix/catalog/internal/usecase/recommend"
	searchuc "github.com/streamflix/catalog/internal/usecase/search"
	streamuc "github.com/streamflix/catalog/internal/usecase/stream"
	suggestuc "github.com/streamflix/catalog/internal/usecase/suggest"
	"github.com/streamflix/catalog/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting catalog API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
	)

	ctx := context.Background()

	pool, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := postgres.WaitForReady(ctx, pool, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Optional suggestion cache; the service runs fine without one.
	var cacheStore *cacheRedis.Store
	if len(cfg.Cache.Addrs) > 0 {
		cacheStore, err = cacheRedis.NewStore(cacheRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Warn("Suggestion cache unavailable, continuing without it", zap.Error(err))
			cacheStore = nil
		} else {
			defer cacheStore.Close()
			logger.Info("Connected to suggestion cache", zap.Strings("addrs", cfg.Cache.Addrs))
		}
	}

	repo := movierepo.New(pool).WithMetrics(metrics.QueryDuration)

	var suggester suggestcache.Suggester = repo
	if cacheStore != nil {
		suggester = suggestcache.New(
			repo,
			cacheStore,
			time.Duration(cfg.Cache.SuggestTTLSec)*time.Second,
			metrics.SuggestCacheTotal,
			logger,
		)
	}

	searchSvc := searchuc.New(repo).WithDefaultLimit(cfg.Search.DefaultPageSize)
	suggestSvc := suggestuc.New(suggester)
	catalogSvc := cataloguc.New(repo)
	identitySvc := identityuc.New()
	recommendSvc := recommenduc.New(time.Now().UnixNano())
	streamSvc := streamuc.New()
	analyticsSvc := analyticsuc.New(time.Now().UnixNano())

	var cachePinger healthuc.CachePinger
	if cacheStore != nil {
		cachePinger = cacheStore
	}
	healthSvc := healthuc.New(pool, cachePinger)

	hub := topology.NewHub(logger,
		catalogStatusSource{svc: catalogSvc},
		identitySvc,
		recommendSvc,
		streamSvc,
		analyticsSvc,
	)

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	go hub.Run(hubCtx)

	server := chiTransport.NewServer(
		searchSvc, suggestSvc, catalogSvc,
		identitySvc, recommendSvc, streamSvc, analyticsSvc,
		healthSvc, hub, logger,
	).WithMaxPageSize(cfg.Search.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	stopHub()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// catalogStatusSource reports the catalog service as a topology node. The
// movie count is read lazily per snapshot with a short timeout.
type catalogStatusSource struct {
	svc *cataloguc.Service
}

func (c catalogStatusSource) Status() domain.ServiceStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status := domain.ServiceStatus{Service: "Movie Catalog", Status: "active"}
	movies, err := c.svc.List(ctx)
	if err != nil {
		status.Status = "degraded"
		return status
	}
	status.Counts = map[string]int{"movies": len(movies)}
	return status
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
