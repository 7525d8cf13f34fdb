package ports

import (
	"commute-tco-service/internal/domain"
	"context"
)

// Contract for caching resolved places by normalized location text.
type GeocodeCache interface {
	// Fetch cached places; missing keys are simply absent from the result.
	GetMany(ctx context.Context, keys []string) (map[string]domain.Place, error)
	// Store places by key, overwriting existing entries.
	PutMany(ctx context.Context, places map[string]domain.Place) error
}
