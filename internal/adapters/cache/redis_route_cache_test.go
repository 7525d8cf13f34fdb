package cache

import (
	"commute-tco-service/internal/adapters/transit"
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/ports"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func testQuery() ports.RouteQuery {
	return ports.RouteQuery{
		Origin:      domain.Place{ID: "Nishi-Kawaguchi"},
		Destination: domain.Place{ID: "Shinjuku"},
		At:          time.Date(2026, 4, 1, 8, 5, 0, 0, time.UTC),
		Mode:        domain.DepartAt,
		Strict:      true,
	}
}

func TestRedisRouteCacheStoresSuccess(t *testing.T) {
	mr, client := setupMiniredis(t)

	fare := 200.0
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: &fare, Summary: "JR Saikyo"},
	})
	c, err := NewRedisRouteCache(client, provider, time.Hour, zaptest.NewLogger(t))
	require.NoError(t, err)

	first := c.Query(context.Background(), testQuery())
	second := c.Query(context.Background(), testQuery())

	assert.Equal(t, domain.RouteOK, second.Status)
	assert.Equal(t, first, second)
	require.NotNil(t, second.Fare)
	assert.Equal(t, 200.0, *second.Fare)
	assert.Equal(t, 1, provider.CallCount())

	assert.True(t, mr.Exists(RouteKey(testQuery())))
	assert.Equal(t, time.Hour, mr.TTL(RouteKey(testQuery())))
}

func TestRedisRouteCacheStoresNoRoute(t *testing.T) {
	_, client := setupMiniredis(t)

	provider := transit.NewMockRouteProvider(nil)
	c, err := NewRedisRouteCache(client, provider, time.Hour, nil)
	require.NoError(t, err)

	c.Query(context.Background(), testQuery())
	out := c.Query(context.Background(), testQuery())

	assert.Equal(t, domain.RouteNoRoute, out.Status)
	assert.Equal(t, 1, provider.CallCount())
}

func TestRedisRouteCacheNeverStoresHardErrors(t *testing.T) {
	mr, client := setupMiniredis(t)

	provider := transit.NewMockRouteProvider(nil)
	provider.Script("Nishi-Kawaguchi", "Shinjuku", ports.HardError("quota"), ports.Success(30, nil, ""))
	c, err := NewRedisRouteCache(client, provider, time.Hour, nil)
	require.NoError(t, err)

	first := c.Query(context.Background(), testQuery())
	assert.Equal(t, domain.RouteHardError, first.Status)
	assert.False(t, mr.Exists(RouteKey(testQuery())))

	second := c.Query(context.Background(), testQuery())
	assert.Equal(t, domain.RouteOK, second.Status)
	assert.Equal(t, 2, provider.CallCount())
}

func TestRedisRouteCacheKeySeparatesTiers(t *testing.T) {
	q := testQuery()
	relaxed := q
	relaxed.Strict = false
	arrival := q
	arrival.Mode = domain.ArriveBy

	assert.NotEqual(t, RouteKey(q), RouteKey(relaxed))
	assert.NotEqual(t, RouteKey(q), RouteKey(arrival))
}

func TestRedisRouteCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	mr, client := setupMiniredis(t)
	mr.Close()

	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30},
	})
	c, err := NewRedisRouteCache(client, provider, time.Hour, nil)
	require.NoError(t, err)

	out := c.Query(context.Background(), testQuery())
	assert.Equal(t, domain.RouteOK, out.Status)
}

func TestRedisRouteCacheCorruptEntry(t *testing.T) {
	mr, client := setupMiniredis(t)
	require.NoError(t, mr.Set(RouteKey(testQuery()), "not json"))

	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30},
	})
	c, err := NewRedisRouteCache(client, provider, time.Hour, nil)
	require.NoError(t, err)

	out := c.Query(context.Background(), testQuery())
	assert.Equal(t, domain.RouteOK, out.Status)
	assert.Equal(t, 1, provider.CallCount())
}
