package cache

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/metrics"
	"commute-tco-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const routeKeyPrefix = "tco:route:v1:"

// cachedOutcome is the JSON shape stored in Redis.
type cachedOutcome struct {
	Status          domain.RouteStatus `json:"status"`
	DurationMinutes int                `json:"duration_minutes,omitempty"`
	Fare            *float64           `json:"fare,omitempty"`
	Summary         string             `json:"summary,omitempty"`
	Message         string             `json:"message,omitempty"`
}

// RedisRouteCache wraps a RouteProvider and remembers its ok and no_route
// outcomes per (origin, destination, time, mode, strictness). Hard errors
// always reach the wrapped provider again. Redis failures degrade to
// uncached calls.
type RedisRouteCache struct {
	client redis.UniversalClient
	next   ports.RouteProvider
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisRouteCache(client redis.UniversalClient, next ports.RouteProvider, ttl time.Duration, logger *zap.Logger) (*RedisRouteCache, error) {
	if client == nil {
		return nil, errors.New("redis route cache: client is nil")
	}
	if next == nil {
		return nil, errors.New("redis route cache: route provider is nil")
	}
	if ttl <= 0 {
		return nil, errors.New("redis route cache: ttl must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &RedisRouteCache{client: client, next: next, ttl: ttl, logger: logger}, nil
}

// RouteKey is the cache key of a query. Query times are expected to be
// bucketed already, so equal buckets share an entry.
func RouteKey(q ports.RouteQuery) string {
	return fmt.Sprintf("%s%s|%s|%s|%s|%t",
		routeKeyPrefix,
		q.Origin.ID,
		q.Destination.ID,
		q.At.UTC().Format(time.RFC3339),
		q.Mode,
		q.Strict,
	)
}

func (c *RedisRouteCache) Query(ctx context.Context, q ports.RouteQuery) ports.RouteOutcome {
	key := RouteKey(q)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var co cachedOutcome
		if err := json.Unmarshal(raw, &co); err == nil {
			metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
			return ports.RouteOutcome(co)
		}
		c.logger.Warn("discarding corrupt route cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("route cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.RouteCacheLookups.WithLabelValues("miss").Inc()

	out := c.next.Query(ctx, q)
	if out.Status != domain.RouteOK && out.Status != domain.RouteNoRoute {
		return out
	}

	b, err := json.Marshal(cachedOutcome(out))
	if err != nil {
		return out
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("route cache write failed", zap.String("key", key), zap.Error(err))
	}

	return out
}
