package transit

import (
	"commute-tco-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedProvider spaces out calls to a RouteProvider. The engine fans
// out across destinations and candidates; this keeps the combined call rate
// under the upstream quota.
type RateLimitedProvider struct {
	next    ports.RouteProvider
	limiter *rate.Limiter
}

// NewRateLimitedProvider allows rps queries per second with the given burst.
// rps <= 0 disables limiting.
func NewRateLimitedProvider(next ports.RouteProvider, rps float64, burst int) (*RateLimitedProvider, error) {
	if next == nil {
		return nil, errors.New("rate limited provider: route provider is nil")
	}

	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	return &RateLimitedProvider{next: next, limiter: rate.NewLimiter(limit, burst)}, nil
}

func (p *RateLimitedProvider) Query(ctx context.Context, q ports.RouteQuery) ports.RouteOutcome {
	if err := p.limiter.Wait(ctx); err != nil {
		return ports.HardError(fmt.Sprintf("rate limiter: %v", err))
	}
	return p.next.Query(ctx, q)
}
