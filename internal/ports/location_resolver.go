package ports

import (
	"commute-tco-service/internal/domain"
	"context"
)

// Contract for turning free-form location text into a place.
type LocationResolver interface {
	// Resolve text to a place. Unknown text returns an error wrapping
	// domain.ErrLocationNotFound; anything else is a lookup failure.
	Resolve(ctx context.Context, text string) (domain.Place, error)
}
