package geocode

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/metrics"
	"commute-tco-service/internal/platform/obs"
	"commute-tco-service/internal/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Label string `json:"label"`
		} `json:"properties"`
	} `json:"features"`
}

// ORSGeocoder implements LocationResolver using the OpenRouteService
// geocoding endpoint (/geocode/search), bounded to one country.
//
// Caches are consulted in order before the API. A hit in a later cache is
// copied into the earlier ones; an API result is written to all of them.
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session    *http.Client
	apiKey     string
	baseURL    string
	country    string
	caches     []ports.GeocodeCache
	attempts   uint
	retryDelay time.Duration
	logger     *zap.Logger
}

type ORSOption func(*ORSGeocoder)

func WithBaseURL(u string) ORSOption {
	return func(g *ORSGeocoder) {
		if u != "" {
			g.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithCountry bounds results to an ISO 3166 country code. Empty disables it.
func WithCountry(c string) ORSOption {
	return func(g *ORSGeocoder) { g.country = c }
}

func WithHTTPClient(c *http.Client) ORSOption {
	return func(g *ORSGeocoder) {
		if c != nil {
			g.session = c
		}
	}
}

func WithCaches(caches ...ports.GeocodeCache) ORSOption {
	return func(g *ORSGeocoder) { g.caches = append(g.caches, caches...) }
}

func WithRetry(attempts uint, delay time.Duration) ORSOption {
	return func(g *ORSGeocoder) {
		if attempts > 0 {
			g.attempts = attempts
		}
		g.retryDelay = delay
	}
}

func WithLogger(l *zap.Logger) ORSOption {
	return func(g *ORSGeocoder) {
		if l != nil {
			g.logger = l
		}
	}
}

func NewORSGeocoder(apiKey string, opts ...ORSOption) (*ORSGeocoder, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	g := &ORSGeocoder{
		session:    &http.Client{Timeout: 10 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.openrouteservice.org",
		country:    "JP",
		attempts:   4,
		retryDelay: 200 * time.Millisecond,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

func (g *ORSGeocoder) Resolve(ctx context.Context, text string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "ors.Resolve")(&err)

	key := Normalize(text)
	if key == "" {
		return domain.Place{}, fmt.Errorf("resolve location: empty text: %w", domain.ErrLocationNotFound)
	}

	if p, ok := g.fromCache(ctx, key); ok {
		return p, nil
	}

	p, err := g.search(ctx, key)
	if err != nil {
		return domain.Place{}, err
	}

	g.store(ctx, key, p, len(g.caches))
	return p, nil
}

func (g *ORSGeocoder) fromCache(ctx context.Context, key string) (domain.Place, bool) {
	for i, c := range g.caches {
		tier := strconv.Itoa(i)

		hits, err := c.GetMany(ctx, []string{key})
		if err != nil {
			// A broken cache must not fail the lookup.
			g.logger.Warn("geocode cache read failed", zap.Int("tier", i), zap.Error(err))
			metrics.GeocodeCacheLookups.WithLabelValues(tier, "error").Inc()
			continue
		}

		if p, ok := hits[key]; ok {
			metrics.GeocodeCacheLookups.WithLabelValues(tier, "hit").Inc()
			g.store(ctx, key, p, i)
			return p, true
		}
		metrics.GeocodeCacheLookups.WithLabelValues(tier, "miss").Inc()
	}

	return domain.Place{}, false
}

// store writes the place into the first n caches.
func (g *ORSGeocoder) store(ctx context.Context, key string, p domain.Place, n int) {
	for i := 0; i < n && i < len(g.caches); i++ {
		if err := g.caches[i].PutMany(ctx, map[string]domain.Place{key: p}); err != nil {
			g.logger.Warn("geocode cache write failed", zap.Int("tier", i), zap.Error(err))
		}
	}
}

func (g *ORSGeocoder) search(ctx context.Context, key string) (domain.Place, error) {
	endpoint := g.baseURL + "/geocode/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", key)
		if g.country != "" {
			q.Set("boundary.country", g.country)
		}
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("resolve location %q: execute request: %w", key, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Place{}, fmt.Errorf("resolve location %q: decode geocode response: %w", key, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Place{}, fmt.Errorf("resolve location %q: %w", key, domain.ErrLocationNotFound)
	}

	f := decoded.Features[0]
	coords := f.Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Place{}, fmt.Errorf("resolve location %q: invalid coordinate format", key)
	}

	return domain.Place{
		ID:          key,
		DisplayName: f.Properties.Label,
		Coordinates: domain.Coordinates{Lon: coords[0], Lat: coords[1]},
	}, nil
}
