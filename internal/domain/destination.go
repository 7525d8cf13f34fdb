package domain

import (
	"fmt"
	"strings"
)

// WeeksPerMonth converts weekly frequencies to monthly equivalents.
// It is applied exactly once, when a destination's weight is computed.
const WeeksPerMonth = 4.33

// Represents a recurring trip target such as a school or workplace.
//
// VisitsPerWeek may be fractional ("every other week" is 0.5). A visit is a
// round trip unless OneWay is set. PassPrice, when present and positive, is
// the flat monthly commuter pass for this destination only.
type Destination struct {
	Label         string
	Location      string
	VisitsPerWeek float64
	PassPrice     *float64
	OneWay        bool
}

// MonthlyVisits is the monthly-equivalent number of visits, used as the
// destination's weight when merging commutes.
func (d Destination) MonthlyVisits() float64 {
	return d.VisitsPerWeek * WeeksPerMonth
}

// TripsPerVisit is 2 for round trips and 1 for one-way destinations.
func (d Destination) TripsPerVisit() float64 {
	if d.OneWay {
		return 1
	}
	return 2
}

// MonthlyTrips is the number of one-way rides per month, round trips included.
func (d Destination) MonthlyTrips() float64 {
	return d.MonthlyVisits() * d.TripsPerVisit()
}

func (d Destination) Validate() error {
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("destination label must be non-empty: %w", ErrInvalidInput)
	}

	if strings.TrimSpace(d.Location) == "" {
		return fmt.Errorf("destination %q: location must be non-empty: %w", d.Label, ErrInvalidInput)
	}

	if d.VisitsPerWeek < 0 {
		return fmt.Errorf("destination %q: visits per week must be non-negative, got %v: %w", d.Label, d.VisitsPerWeek, ErrInvalidInput)
	}

	if d.PassPrice != nil && *d.PassPrice < 0 {
		return fmt.Errorf("destination %q: pass price must be non-negative: %w", d.Label, ErrInvalidInput)
	}

	return nil
}
