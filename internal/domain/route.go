package domain

import (
	"fmt"
)

// TimeMode says whether a route query's time is a departure or an arrival time.
type TimeMode string

const (
	DepartAt TimeMode = "departure"
	ArriveBy TimeMode = "arrival"
)

// RouteTier identifies which retry attempt produced a RouteResult.
// Tiers are tried in ascending order.
type RouteTier int

const (
	TierNone RouteTier = iota
	TierStrictDeparture
	TierStrictArrival
	TierRelaxedDeparture
	TierRelaxedArrival
)

// RouteTiers lists the tiers in precedence order.
var RouteTiers = []RouteTier{
	TierStrictDeparture,
	TierStrictArrival,
	TierRelaxedDeparture,
	TierRelaxedArrival,
}

// Strict reports whether the tier asks the provider to prefer rail and
// minimize transfers.
func (t RouteTier) Strict() bool {
	return t == TierStrictDeparture || t == TierStrictArrival
}

// Mode returns the time mode queried at this tier.
func (t RouteTier) Mode() TimeMode {
	if t == TierStrictArrival || t == TierRelaxedArrival {
		return ArriveBy
	}
	return DepartAt
}

func (t RouteTier) String() string {
	switch t {
	case TierStrictDeparture:
		return "strict_departure"
	case TierStrictArrival:
		return "strict_arrival"
	case TierRelaxedDeparture:
		return "relaxed_departure"
	case TierRelaxedArrival:
		return "relaxed_arrival"
	default:
		return "none"
	}
}

// RouteStatus is the three-valued outcome of a route query.
type RouteStatus string

const (
	RouteOK        RouteStatus = "ok"
	RouteNoRoute   RouteStatus = "no_route"
	RouteHardError RouteStatus = "hard_error"
)

// Represents the outcome of resolving one origin/destination pair.
//
// When OK is false DurationMinutes is zero and Fare is nil. When OK is true
// DurationMinutes is set; Fare may still be nil when the provider gave no
// pricing. Use the constructors below rather than building the struct by hand.
type RouteResult struct {
	OK              bool
	DurationMinutes int
	Fare            *float64
	Summary         string
	Tier            RouteTier
	Status          RouteStatus
	Message         string
}

// RouteFound builds a successful result. Negative durations are clamped to zero.
func RouteFound(minutes int, fare *float64, summary string) RouteResult {
	if minutes < 0 {
		minutes = 0
	}

	var f *float64
	if fare != nil {
		v := *fare
		f = &v
	}

	return RouteResult{
		OK:              true,
		DurationMinutes: minutes,
		Fare:            f,
		Summary:         summary,
		Status:          RouteOK,
	}
}

// RouteNotFound builds the soft "no route" failure.
func RouteNotFound(msg string) RouteResult {
	return RouteResult{Status: RouteNoRoute, Message: msg}
}

// RouteFailed builds a hard-error failure that must not be retried with another time mode.
func RouteFailed(msg string) RouteResult {
	return RouteResult{Status: RouteHardError, Message: msg}
}

// WithTier returns a copy of r tagged with the tier that produced it.
func (r RouteResult) WithTier(t RouteTier) RouteResult {
	r.Tier = t
	return r
}

// Err converts a failed result into its typed error. It returns nil on success.
func (r RouteResult) Err() error {
	switch {
	case r.OK:
		return nil
	case r.Status == RouteHardError:
		return &ProviderError{Tier: r.Tier, Message: r.Message}
	default:
		return fmt.Errorf("%w (tier=%s): %s", ErrNoRouteFound, r.Tier, r.Message)
	}
}
