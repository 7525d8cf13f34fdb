package services

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/metrics"
	"commute-tco-service/internal/platform/obs"
	"commute-tco-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultConcurrency = 5

// Options are the per-request knobs of an evaluation.
type Options struct {
	// DepartAt is the reference departure time. Zero means now.
	DepartAt time.Time
	// TenancyMonths overrides every candidate's own tenancy when positive.
	TenancyMonths int
	// TimeValuePerHour enables the cash+time total when set.
	TimeValuePerHour *float64
	RankBy           domain.RankBy
}

func (o Options) Validate() error {
	switch o.RankBy {
	case "", domain.RankByCash:
	case domain.RankByCashTime:
		if o.TimeValuePerHour == nil {
			return fmt.Errorf("options: rank by %q requires a time value rate: %w", o.RankBy, domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("options: unknown rank by %q: %w", o.RankBy, domain.ErrInvalidInput)
	}

	if o.TimeValuePerHour != nil && *o.TimeValuePerHour < 0 {
		return fmt.Errorf("options: time value rate must be non-negative: %w", domain.ErrInvalidInput)
	}

	if o.TenancyMonths < 0 {
		return fmt.Errorf("options: tenancy override must be non-negative: %w", domain.ErrInvalidInput)
	}

	return nil
}

// Engine evaluates and compares candidates. It resolves locations and routes
// through its ports and computes everything else with the pure functions in
// this package. Safe for concurrent use.
type Engine struct {
	resolver    ports.LocationResolver
	policy      *RetryPolicy
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

type EngineOption func(*Engine)

func WithConcurrency(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

func WithEngineLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(resolver ports.LocationResolver, policy *RetryPolicy, opts ...EngineOption) (*Engine, error) {
	if resolver == nil {
		return nil, errors.New("new engine: location resolver is nil")
	}
	if policy == nil {
		return nil, errors.New("new engine: retry policy is nil")
	}

	e := &Engine{
		resolver:    resolver,
		policy:      policy,
		concurrency: DefaultConcurrency,
		now:         time.Now,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// resolvedPlace is a destination after geocoding. A non-nil err makes the
// destination's leg unusable for every candidate.
type resolvedPlace struct {
	place domain.Place
	err   error
}

// resolveDestinations geocodes every destination. Lookup failures stay
// scoped to their destination; only a cancelled context is returned.
func (e *Engine) resolveDestinations(ctx context.Context, dests []domain.Destination) ([]resolvedPlace, error) {
	out := make([]resolvedPlace, len(dests))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, d := range dests {
		wg.Add(1)
		go func(i int, d domain.Destination) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			place, err := e.resolver.Resolve(ctx, d.Location)
			if err != nil {
				out[i] = resolvedPlace{err: fmt.Errorf("resolve destination %q: %w", d.Label, err)}
				return
			}
			out[i] = resolvedPlace{place: place}
		}(i, d)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, p := range out {
		if p.err != nil && !errors.Is(p.err, domain.ErrLocationNotFound) {
			e.logger.Warn("destination lookup failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("destination", dests[i].Label),
				zap.Error(p.err),
			)
		}
	}

	return out, nil
}

// EvaluateCandidate prices one candidate against the destinations.
//
// Destination-scoped failures (a failed location lookup, no route on any
// tier) leave that leg unusable; a failed origin lookup leaves every leg
// unusable. A candidate without a single usable leg is still
// returned with NoCommuteData set. Provider hard errors and an invalid
// tenancy are returned as errors.
func (e *Engine) EvaluateCandidate(
	ctx context.Context,
	candidate domain.Candidate,
	destinations []domain.Destination,
	opts Options,
) (_ domain.CostBreakdown, err error) {
	defer obs.Time(ctx, "engine.EvaluateCandidate")(&err)

	if err := opts.Validate(); err != nil {
		return domain.CostBreakdown{}, fmt.Errorf("evaluate candidate: %w", err)
	}
	if err := validateInputs([]domain.Candidate{candidate}, destinations); err != nil {
		return domain.CostBreakdown{}, fmt.Errorf("evaluate candidate: %w", err)
	}

	places, err := e.resolveDestinations(ctx, destinations)
	if err != nil {
		return domain.CostBreakdown{}, fmt.Errorf("evaluate candidate %q: %w", candidate.ID, err)
	}

	b, err := e.evaluate(ctx, candidate, destinations, places, opts)
	recordOutcome(err)
	return b, err
}

func (e *Engine) evaluate(
	ctx context.Context,
	candidate domain.Candidate,
	destinations []domain.Destination,
	places []resolvedPlace,
	opts Options,
) (domain.CostBreakdown, error) {
	departAt := opts.DepartAt
	if departAt.IsZero() {
		departAt = e.now()
	}

	legs := make([]domain.CommuteLeg, len(destinations))
	for i, d := range destinations {
		legs[i] = domain.CommuteLeg{
			Destination:   d,
			MonthlyVisits: d.MonthlyVisits(),
			MonthlyTrips:  d.MonthlyTrips(),
			DirectionsURL: domain.TransitDirectionsURL(candidate.Location, d.Location),
		}
	}

	origin, err := e.resolver.Resolve(ctx, candidate.Location)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.CostBreakdown{}, fmt.Errorf("evaluate candidate %q: %w", candidate.ID, ctxErr)
		}
		for i := range legs {
			markUnusable(&legs[i], err)
		}
		e.logger.Info("candidate location unresolved",
			zap.String("candidate", candidate.ID),
			zap.String("location", candidate.Location),
			zap.String("code", domain.ErrorCode(err)),
		)
		return e.aggregate(candidate, legs, nil, opts)
	}

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i := range legs {
		if places[i].err != nil {
			markUnusable(&legs[i], places[i].err)
			continue
		}
		if legs[i].MonthlyVisits <= 0 {
			continue
		}

		wg.Add(1)
		go func(i int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			legs[i].Route = e.policy.Resolve(ctx, origin, places[i].place, departAt)
		}(i)
	}
	wg.Wait()

	routes := make([]domain.WeightedRoute, 0, len(legs))
	for i := range legs {
		leg := &legs[i]
		if leg.ErrorCode != "" || leg.MonthlyVisits <= 0 {
			continue
		}

		if err := leg.Route.Err(); err != nil {
			if errors.Is(err, domain.ErrProviderHard) {
				return domain.CostBreakdown{}, fmt.Errorf(
					"evaluate candidate %q: destination %q: %w", candidate.ID, leg.Destination.Label, err)
			}
			markUnusable(leg, err)
			continue
		}

		wr := domain.WeightedRoute{Route: leg.Route, Weight: leg.MonthlyVisits}
		commute, err := MergeCommutes([]domain.WeightedRoute{wr})
		if err != nil {
			markUnusable(leg, err)
			continue
		}

		leg.Usable = true
		leg.Commute = commute
		leg.Cost = PriceCommute(leg.Route.Fare, leg.MonthlyTrips, leg.Destination.PassPrice)
		routes = append(routes, wr)
	}

	var commute *domain.WeightedCommute
	merged, err := MergeCommutes(routes)
	switch {
	case err == nil:
		commute = &merged
	case !errors.Is(err, domain.ErrNoUsableCommuteData):
		return domain.CostBreakdown{}, fmt.Errorf("evaluate candidate %q: %w", candidate.ID, err)
	}

	return e.aggregate(candidate, legs, commute, opts)
}

func (e *Engine) aggregate(
	candidate domain.Candidate,
	legs []domain.CommuteLeg,
	commute *domain.WeightedCommute,
	opts Options,
) (domain.CostBreakdown, error) {
	tenancy := candidate.TenancyMonths
	if opts.TenancyMonths > 0 {
		tenancy = opts.TenancyMonths
	}

	return AggregateCosts(AggregateInput{
		Candidate:        candidate,
		Legs:             legs,
		Commute:          commute,
		TenancyMonths:    tenancy,
		TimeValuePerHour: opts.TimeValuePerHour,
	})
}

func markUnusable(leg *domain.CommuteLeg, err error) {
	leg.Usable = false
	leg.ErrorCode = domain.ErrorCode(err)
	leg.Error = err.Error()
}

func validateInputs(candidates []domain.Candidate, destinations []domain.Destination) error {
	for _, c := range candidates {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	labels := make(map[string]struct{}, len(destinations))
	for _, d := range destinations {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := labels[d.Label]; dup {
			return fmt.Errorf("destination label %q is not unique: %w", d.Label, domain.ErrInvalidInput)
		}
		labels[d.Label] = struct{}{}
	}

	return nil
}

func recordOutcome(err error) {
	outcome := "ok"
	if err != nil {
		outcome = domain.ErrorCode(err)
	}
	metrics.CandidateEvaluations.WithLabelValues(outcome).Inc()
}
