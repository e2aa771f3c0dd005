package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/ctrlz-health/carefinder/internal/adapters/cache"
	"github.com/ctrlz-health/carefinder/internal/adapters/providers/geolocation"
	"github.com/ctrlz-health/carefinder/internal/adapters/providers/placesearch"
	"github.com/ctrlz-health/carefinder/internal/api/handlers"
	"github.com/ctrlz-health/carefinder/internal/api/routes"
	"github.com/ctrlz-health/carefinder/internal/application/services"
	"github.com/ctrlz-health/carefinder/internal/domain/providers"
	openaiclient "github.com/ctrlz-health/carefinder/internal/infrastructure/clients/openai"
	redisclient "github.com/ctrlz-health/carefinder/internal/infrastructure/clients/redis"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
	"github.com/ctrlz-health/carefinder/pkg/config"
)

func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx := context.Background()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("telemetry setup failed, continuing without traces")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					logger.Warn().Err(err).Msg("telemetry shutdown failed")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Warn().Err(err).Msg("metrics init failed, continuing without metrics")
		metrics = nil
	}

	// Redis is optional: the pipeline falls back to an in-process cache.
	var cacheProvider providers.CacheProvider
	var redisPinger handlers.Pinger
	redisClient, err := redisclient.NewClient(&cfg.Redis)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
		memory := cache.NewMemoryAdapter(cfg.Search.ResultCacheMaxEntry)
		defer memory.Close()
		cacheProvider = memory
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		redisPinger = redisClient
	}

	var geocoder providers.GeocodingProvider
	if cfg.Geolocation.Provider == "google" && cfg.Geolocation.APIKey != "" {
		geocoder = geolocation.NewGoogleGeocodingProvider(cfg.Geolocation.APIKey, cacheProvider)
	} else {
		logger.Info().Msg("using mock geocoding provider")
		geocoder = geolocation.NewMockGeocodingProvider()
	}

	placeSearch := placesearch.NewGooglePlacesProvider(&cfg.Places)

	var insight providers.FacilityInsightProvider
	if cfg.OpenAI.APIKey != "" {
		client, err := openaiclient.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("openai client init failed, enrichment will use rules only")
		} else {
			insight = client
		}
	} else {
		logger.Info().Msg("no openai key configured, enrichment will use rules only")
	}

	searchService := services.NewSearchService(
		services.NewGeoResolver(geocoder, metrics),
		services.NewQueryPlanner(&cfg.Search),
		services.NewFacilityFetcher(placeSearch, metrics, &cfg.Search),
		services.NewRelevanceFilter(),
		services.NewRankingService(cfg.Scoring),
		services.NewEnrichmentService(insight, metrics, &cfg.Search),
		cacheProvider,
		metrics,
		&cfg.Search,
	)

	router := routes.NewRouter(
		handlers.NewSearchHandler(searchService),
		handlers.NewHealthHandler(cfg, redisPinger),
		metrics,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}
