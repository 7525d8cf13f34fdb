package cache

import (
	"commute-tco-service/internal/domain"
	"context"
	"errors"
	"time"

	"github.com/maypok86/otter/v2"
)

// MemoryGeocodeCache is a bounded in-process geocode cache whose entries
// expire a fixed time after they were written.
type MemoryGeocodeCache struct {
	cache *otter.Cache[string, domain.Place]
}

func NewMemoryGeocodeCache(size int, ttl time.Duration) (*MemoryGeocodeCache, error) {
	if size <= 0 {
		return nil, errors.New("memory geocode cache: size must be positive")
	}
	if ttl <= 0 {
		return nil, errors.New("memory geocode cache: ttl must be positive")
	}

	c := otter.Must(&otter.Options[string, domain.Place]{
		MaximumSize:      size,
		ExpiryCalculator: otter.ExpiryWriting[string, domain.Place](ttl),
	})

	return &MemoryGeocodeCache{cache: c}, nil
}

func (m *MemoryGeocodeCache) GetMany(ctx context.Context, keys []string) (map[string]domain.Place, error) {
	out := make(map[string]domain.Place, len(keys))
	for _, k := range uniqueKeys(keys) {
		if p, ok := m.cache.GetIfPresent(k); ok {
			out[k] = p
		}
	}
	return out, nil
}

func (m *MemoryGeocodeCache) PutMany(ctx context.Context, places map[string]domain.Place) error {
	for k, p := range places {
		m.cache.Set(k, p)
	}
	return nil
}

func (m *MemoryGeocodeCache) Invalidate(key string) {
	m.cache.Invalidate(key)
}

// Len is the approximate number of cached entries.
func (m *MemoryGeocodeCache) Len() int {
	return m.cache.EstimatedSize()
}
