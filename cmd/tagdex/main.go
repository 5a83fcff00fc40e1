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

	"github.com/kailas-cloud/tagdex/internal/config"
	dbRedis "github.com/kailas-cloud/tagdex/internal/db/redis"
	logpkg "github.com/kailas-cloud/tagdex/internal/logger"
	"github.com/kailas-cloud/tagdex/internal/metrics"
	assocrepo "github.com/kailas-cloud/tagdex/internal/repository/association"
	carouselrepo "github.com/kailas-cloud/tagdex/internal/repository/carousel"
	contentrepo "github.com/kailas-cloud/tagdex/internal/repository/content"
	"github.com/kailas-cloud/tagdex/internal/repository/keys"
	poirepo "github.com/kailas-cloud/tagdex/internal/repository/poi"
	tagrepo "github.com/kailas-cloud/tagdex/internal/repository/tag"
	chiTransport "github.com/kailas-cloud/tagdex/internal/transport/chi"
	aggregateuc "github.com/kailas-cloud/tagdex/internal/usecase/aggregate"
	carouseluc "github.com/kailas-cloud/tagdex/internal/usecase/carousel"
	cascadeuc "github.com/kailas-cloud/tagdex/internal/usecase/cascade"
	enrichuc "github.com/kailas-cloud/tagdex/internal/usecase/enrich"
	healthuc "github.com/kailas-cloud/tagdex/internal/usecase/health"
	progressiveuc "github.com/kailas-cloud/tagdex/internal/usecase/progressive"
	resolveuc "github.com/kailas-cloud/tagdex/internal/usecase/resolve"
	"github.com/kailas-cloud/tagdex/internal/version"
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

	logger.Info("Starting tagdex API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()
	observer := metrics.Engine{}

	// Repositories
	space := keys.New(cfg.Storage.KeyPrefix)
	tagRepo := tagrepo.New(store, space)
	assocRepo := assocrepo.New(store, space).WithSetIntersection(cfg.Engine.SetIntersection())
	contentRepo := contentrepo.New(store, space)
	carouselRepo := carouselrepo.New(store, space)

	// Use cases
	resolveSvc := resolveuc.New(tagRepo)
	cascadeSvc := cascadeuc.New(assocRepo, contentRepo, cfg.Engine.Limits(), cfg.Engine.AssociationFetch)
	progressiveSvc := progressiveuc.New(assocRepo, observer)
	carouselSvc := carouseluc.New(carouselRepo, tagRepo, progressiveSvc, cfg.Engine.CarouselItems).
		WithObserver(observer)

	aggregateSvc := aggregateuc.New(resolveSvc, progressiveSvc, cascadeSvc, carouselSvc, contentRepo,
		aggregateuc.Defaults{
			Locale:       cfg.Engine.DefaultLocale,
			CountryTagID: cfg.Engine.DefaultCountryTagID,
			MinResults:   cfg.Engine.MinResults,
			PageSize:     cfg.Engine.DefaultPageSize,
			MaxPageSize:  cfg.Engine.MaxPageSize,
		}).
		WithObserver(observer)

	if cfg.Enrichment.Enabled {
		cache, err := enrichuc.NewCache(cfg.Enrichment.CacheMaxEntries)
		if err != nil {
			logger.Fatal("Failed to create enrichment cache", zap.Error(err))
		}
		defer cache.Close()

		aggregateSvc.WithEnricher(enrichuc.New(poirepo.New(store, space), cache, enrichuc.Config{
			RadiusKm: cfg.Enrichment.RadiusKm,
			MaxPOIs:  cfg.Enrichment.MaxPOIs,
			TTL:      time.Duration(cfg.Enrichment.CacheTTLSec) * time.Second,
		}, observer))
		logger.Info("Nearby enrichment enabled",
			zap.Float64("radius_km", cfg.Enrichment.RadiusKm),
			zap.Int("max_pois", cfg.Enrichment.MaxPOIs),
		)
	}

	healthSvc := healthuc.New(store, carouselRepo)

	// Create chi server
	server := chiTransport.NewServer(aggregateSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSONError(w, http.StatusNotFound, "not_found", "route not found")
	})
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "internal error")
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

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
