package services

import (
	"commute-tco-service/internal/domain"
	"fmt"
)

// MergeCommutes combines per-destination routes into one frequency-weighted
// one-way commute. Weights are monthly-equivalent visits.
//
// Failed routes and non-positive weights do not contribute. Fare is averaged
// only over contributing routes that carry a fare, so it can be nil even
// when Minutes is set.
func MergeCommutes(routes []domain.WeightedRoute) (domain.WeightedCommute, error) {
	var (
		totalWeight  float64
		weightedMins float64
		fareWeight   float64
		weightedFare float64
		contributing int
	)

	for _, wr := range routes {
		if !wr.Route.OK || wr.Weight <= 0 {
			continue
		}

		contributing++
		totalWeight += wr.Weight
		weightedMins += float64(wr.Route.DurationMinutes) * wr.Weight

		if wr.Route.Fare != nil {
			fareWeight += wr.Weight
			weightedFare += *wr.Route.Fare * wr.Weight
		}
	}

	if totalWeight == 0 {
		return domain.WeightedCommute{}, fmt.Errorf("merge commutes: %d routes: %w", len(routes), domain.ErrNoUsableCommuteData)
	}

	out := domain.WeightedCommute{
		Minutes:      weightedMins / totalWeight,
		TotalWeight:  totalWeight,
		FareWeight:   fareWeight,
		Contributing: contributing,
	}
	if fareWeight > 0 {
		f := weightedFare / fareWeight
		out.Fare = &f
	}

	return out, nil
}
