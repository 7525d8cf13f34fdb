package services

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/metrics"
	"commute-tco-service/internal/ports"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultPastBuffer = 10 * time.Minute
	DefaultTimeBucket = 5 * time.Minute
)

// RetryPolicy resolves a transit route by walking the four query tiers in
// order: strict departure, strict arrival, relaxed departure, relaxed arrival.
//
// Only a no_route outcome advances to the next tier. A hard error ends the
// walk at the tier that raised it. Tiers after the first success are never
// queried.
type RetryPolicy struct {
	provider   ports.RouteProvider
	now        func() time.Time
	pastBuffer time.Duration
	bucket     time.Duration
	logger     *zap.Logger
}

type RetryOption func(*RetryPolicy)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) RetryOption {
	return func(p *RetryPolicy) { p.now = now }
}

// WithPastBuffer sets how far ahead of now a past reference time is moved.
func WithPastBuffer(d time.Duration) RetryOption {
	return func(p *RetryPolicy) {
		if d >= 0 {
			p.pastBuffer = d
		}
	}
}

// WithTimeBucket sets the rounding granularity for query times.
func WithTimeBucket(d time.Duration) RetryOption {
	return func(p *RetryPolicy) {
		if d > 0 {
			p.bucket = d
		}
	}
}

func WithRetryLogger(l *zap.Logger) RetryOption {
	return func(p *RetryPolicy) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewRetryPolicy(provider ports.RouteProvider, opts ...RetryOption) (*RetryPolicy, error) {
	if provider == nil {
		return nil, errors.New("new retry policy: route provider is nil")
	}

	p := &RetryPolicy{
		provider:   provider,
		now:        time.Now,
		pastBuffer: DefaultPastBuffer,
		bucket:     DefaultTimeBucket,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// NormalizeTime floors reference to the bucket. A result in the past is
// replaced by now plus the past buffer, floored the same way.
func (p *RetryPolicy) NormalizeTime(reference time.Time) time.Time {
	t := reference.Truncate(p.bucket)

	now := p.now()
	if t.Before(now) {
		t = now.Add(p.pastBuffer).Truncate(p.bucket)
	}

	return t
}

// Resolve queries the provider tier by tier and returns the first
// successful or hard-error result, tagged with the tier that produced it.
func (p *RetryPolicy) Resolve(
	ctx context.Context,
	origin domain.Place,
	destination domain.Place,
	reference time.Time,
) domain.RouteResult {
	at := p.NormalizeTime(reference)

	last := domain.RouteNotFound("no tier attempted")
	for _, tier := range domain.RouteTiers {
		if err := ctx.Err(); err != nil {
			return domain.RouteFailed(err.Error()).WithTier(tier)
		}

		out := p.provider.Query(ctx, ports.RouteQuery{
			Origin:      origin,
			Destination: destination,
			At:          at,
			Mode:        tier.Mode(),
			Strict:      tier.Strict(),
		})

		res := out.Result().WithTier(tier)
		metrics.RouteAttempts.WithLabelValues(tier.String(), string(res.Status)).Inc()

		switch res.Status {
		case domain.RouteOK:
			return res
		case domain.RouteHardError:
			p.logger.Warn("route provider hard error",
				zap.String("origin", origin.Label()),
				zap.String("destination", destination.Label()),
				zap.String("tier", tier.String()),
				zap.String("message", res.Message),
			)
			return res
		}

		p.logger.Debug("no route at tier",
			zap.String("origin", origin.Label()),
			zap.String("destination", destination.Label()),
			zap.String("tier", tier.String()),
		)
		last = res
	}

	return last
}
