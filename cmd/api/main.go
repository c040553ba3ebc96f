package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stylist/internal/adapter/repo"
	"stylist/internal/http/handlers"
	"stylist/internal/http/httpapi"
	"stylist/internal/infra"
	"stylist/internal/infra/geoip"
	"stylist/internal/look"
	"stylist/internal/lookstore"
	"stylist/internal/middleware"
	"stylist/internal/obs"
	"stylist/internal/providers/discovery"
	"stylist/internal/providers/fetch"
	"stylist/internal/search"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg)

	shutdownObs, err := obs.Init("stylist-api")
	if err != nil {
		logger.Warn().Err(err).Msg("tracing init failed, continuing without")
	}

	ctx := context.Background()

	// Region detection is optional; without a GeoIP database the default
	// region applies.
	var lookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip unavailable")
	} else if resolver != nil {
		lookup = resolver.CountryCode
	}

	adapters := buildAdapters(cfg, logger)
	searcher := search.NewUnified(adapters, cfg.SearchTimeout, cfg.SearchMaxInflight)

	var cache lookstore.ResultCache
	if cfg.RedisAddr != "" {
		redisCache, err := lookstore.NewRedisCache(cfg.RedisAddr, os.Getenv("REDIS_PASSWORD"), 0)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis cache init failed")
		}
		cache = redisCache
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis result cache")
	} else {
		cache = lookstore.NewMemoryCache()
	}

	var archive look.Archive
	var archiveRepo *repo.LookRepositoryPG
	if cfg.DatabaseURL != "" {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		archiveRepo = repo.NewLookRepository(pool)
		if err := archiveRepo.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare archive schema")
		}
		archive = archiveRepo
		logger.Info().Msg("look archive enabled")
	}

	service := look.NewService(look.Options{
		Store:    lookstore.New(),
		Cache:    cache,
		Searcher: searcher,
		Archive:  archive,
		Logger:   logger,
		CacheTTL: cfg.CacheTTL,
	})

	app := handlers.NewApp(logger, service, archiveRepo)
	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:        logger,
		DefaultRegion: cfg.DefaultRegion,
		CountryLookup: lookup,
		RateLimit:     cfg.RateLimitPerMin,
		TrustProxy:    cfg.RateLimitTrustProxy,
		CORSOrigins:   cfg.CORSOrigins,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if shutdownObs != nil {
		if err := shutdownObs(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown tracing")
		}
	}
	logger.Info().Msg("server stopped")
}

// buildAdapters assembles the discovery stack: paid web search when a key is
// configured, retailer scraping, and the seed catalog as the floor.
func buildAdapters(cfg *infra.Config, logger infra.Logger) []discovery.Adapter {
	var adapters []discovery.Adapter

	if cfg.SerpAPIKey != "" {
		web, err := discovery.NewWebSearch(discovery.WebSearchOptions{
			APIKey:  cfg.SerpAPIKey,
			BaseURL: cfg.SerpBaseURL,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("web search adapter disabled")
		} else {
			adapters = append(adapters, web)
		}
	} else {
		logger.Info().Msg("no SERP_API_KEY, web search adapter disabled")
	}

	fetcher := fetch.NewClient(fetch.ClientOptions{
		ProxyBaseURL: cfg.ScrapeProxyURL,
		HTTPClient:   &http.Client{Timeout: 20 * time.Second},
	})
	adapters = append(adapters,
		discovery.NewShopScrape(fetcher, discovery.DefaultShops(), cfg.ScrapeProxyURL != ""),
		discovery.NewSeedCatalog(nil),
	)
	return adapters
}
