package geocode

import (
	"commute-tco-service/internal/domain"
	"context"
	"fmt"
	"strings"
	"sync"
)

// StaticResolver resolves location text from a fixed table. Lookups are
// whitespace-normalized; unknown text is ErrLocationNotFound. Failures lets
// tests simulate lookup errors for specific text.
type StaticResolver struct {
	mu       sync.Mutex
	places   map[string]domain.Place
	Failures map[string]error
	calls    int
}

// NewStaticResolver maps each text to a place whose ID is the normalized text.
func NewStaticResolver(texts ...string) *StaticResolver {
	r := &StaticResolver{places: make(map[string]domain.Place, len(texts))}
	for _, t := range texts {
		n := Normalize(t)
		r.places[n] = domain.Place{ID: n, DisplayName: n}
	}
	return r
}

func (r *StaticResolver) Add(text string, place domain.Place) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.places[Normalize(text)] = place
}

func (r *StaticResolver) Resolve(ctx context.Context, text string) (domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++

	n := Normalize(text)
	if err, ok := r.Failures[n]; ok {
		return domain.Place{}, err
	}

	p, ok := r.places[n]
	if !ok {
		return domain.Place{}, fmt.Errorf("static resolver: %q: %w", text, domain.ErrLocationNotFound)
	}
	return p, nil
}

func (r *StaticResolver) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Normalize collapses whitespace so equivalent text shares a cache key.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
