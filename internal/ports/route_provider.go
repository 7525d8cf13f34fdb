package ports

import (
	"commute-tco-service/internal/domain"
	"context"
	"fmt"
	"time"
)

// A single transit query at one retry tier.
type RouteQuery struct {
	Origin      domain.Place
	Destination domain.Place
	At          time.Time
	Mode        domain.TimeMode
	// Strict asks the provider to prefer rail/subway and minimize transfers.
	Strict bool
}

// Tagged result of a RouteProvider call. Transport failures are reported as
// StatusHardError outcomes rather than returned errors.
type RouteOutcome struct {
	Status          domain.RouteStatus
	DurationMinutes int
	Fare            *float64
	Summary         string
	Message         string
}

func Success(minutes int, fare *float64, summary string) RouteOutcome {
	return RouteOutcome{Status: domain.RouteOK, DurationMinutes: minutes, Fare: fare, Summary: summary}
}

func NoRoute(msg string) RouteOutcome {
	return RouteOutcome{Status: domain.RouteNoRoute, Message: msg}
}

func HardError(msg string) RouteOutcome {
	return RouteOutcome{Status: domain.RouteHardError, Message: msg}
}

// Result converts the outcome to a domain route result. Unknown statuses are
// treated as hard errors.
func (o RouteOutcome) Result() domain.RouteResult {
	switch o.Status {
	case domain.RouteOK:
		return domain.RouteFound(o.DurationMinutes, o.Fare, o.Summary)
	case domain.RouteNoRoute:
		return domain.RouteNotFound(o.Message)
	case domain.RouteHardError:
		return domain.RouteFailed(o.Message)
	default:
		return domain.RouteFailed(fmt.Sprintf("unknown route status %q: %s", o.Status, o.Message))
	}
}

// Contract for querying a transit route between two resolved places.
type RouteProvider interface {
	Query(ctx context.Context, q RouteQuery) RouteOutcome
}
