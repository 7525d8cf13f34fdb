// Package app assembles the engine and its adapters from configuration.
// Both the HTTP server and the CLI start from Build.
package app

import (
	"commute-tco-service/internal/adapters/cache"
	"commute-tco-service/internal/adapters/geocode"
	"commute-tco-service/internal/adapters/repositories"
	"commute-tco-service/internal/adapters/transit"
	"commute-tco-service/internal/config"
	"commute-tco-service/internal/platform/db"
	"commute-tco-service/internal/platform/logging"
	"commute-tco-service/internal/ports"
	"commute-tco-service/internal/services"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	Engine   *services.Engine
	Policy   *services.RetryPolicy
	Resolver ports.LocationResolver
	Provider ports.RouteProvider

	// Repo is nil when no database is configured.
	Repo ports.CandidateRepository
	DB   *sql.DB

	closers []func() error
}

// Build wires the adapters named by cfg behind their ports. The returned
// App owns its connections; call Close when done.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	if cfg == nil {
		return nil, errors.New("build app: config is nil")
	}
	logger = logging.OrNop(logger)

	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	var geocodeCaches []ports.GeocodeCache
	if cfg.GeocodeCache.Size > 0 {
		mem, err := cache.NewMemoryGeocodeCache(cfg.GeocodeCache.Size, cfg.GeocodeCache.TTL)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		geocodeCaches = append(geocodeCaches, mem)
	}

	if strings.TrimSpace(cfg.Database.URL) != "" {
		conn, err := db.Open(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}
		a.DB = conn
		a.closers = append(a.closers, conn.Close)

		if err := repositories.InitSchema(ctx, conn); err != nil {
			return nil, fmt.Errorf("build app: %w", err)
		}

		a.Repo = repositories.NewPostgresCandidateRepository(conn)
		geocodeCaches = append(geocodeCaches, cache.NewSQLGeocodeCache(conn))
	}

	resolver, err := geocode.NewORSGeocoder(cfg.ORS.APIKey,
		geocode.WithBaseURL(cfg.ORS.BaseURL),
		geocode.WithCountry(cfg.ORS.Country),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.ORS.Timeout}),
		geocode.WithCaches(geocodeCaches...),
		geocode.WithLogger(logger.Named("geocode")),
	)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	a.Resolver = resolver

	provider, err := a.routeProvider(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}
	a.Provider = provider

	a.Policy, err = services.NewRetryPolicy(provider,
		services.WithPastBuffer(cfg.Engine.PastBuffer),
		services.WithTimeBucket(cfg.Engine.TimeBucket),
		services.WithRetryLogger(logger.Named("retry")),
	)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	a.Engine, err = services.NewEngine(resolver, a.Policy,
		services.WithConcurrency(cfg.Engine.Concurrency),
		services.WithEngineLogger(logger.Named("engine")),
	)
	if err != nil {
		return nil, fmt.Errorf("build app: %w", err)
	}

	return a, nil
}

// routeProvider stacks the transit backend: Redis cache outermost so hits
// skip the rate limiter, then the limiter, then the backend.
func (a *App) routeProvider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.RouteProvider, error) {
	var provider ports.RouteProvider

	switch cfg.Engine.RouteProvider {
	case "mock":
		provider = transit.NewMockRouteProvider(nil)
	default:
		gemini, err := transit.NewGeminiRouteProvider(ctx, cfg.Gemini.APIKey,
			transit.WithModel(cfg.Gemini.Model),
			transit.WithRequestTimeout(cfg.Gemini.Timeout),
			transit.WithGeminiLogger(logger.Named("gemini")),
		)
		if err != nil {
			return nil, err
		}
		provider = gemini
	}

	if cfg.Engine.RequestsPerSecond > 0 {
		limited, err := transit.NewRateLimitedProvider(provider, cfg.Engine.RequestsPerSecond, cfg.Engine.Burst)
		if err != nil {
			return nil, err
		}
		provider = limited
	}

	if strings.TrimSpace(cfg.Redis.Address) == "" {
		return provider, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	a.closers = append(a.closers, client.Close)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis at %s: %w", cfg.Redis.Address, err)
	}

	cached, err := cache.NewRedisRouteCache(client, provider, cfg.Redis.RouteTTL, logger.Named("route_cache"))
	if err != nil {
		return nil, err
	}
	return cached, nil
}

// Close releases connections in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
