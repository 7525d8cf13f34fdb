package services

import (
	"commute-tco-service/internal/domain"
)

// PriceCommute returns the monthly cost of commuting to one destination.
//
// monthlyTrips is the number of one-way rides per month, round trips
// already doubled. A positive pass price caps the pay-per-ride cost; on a
// tie pay-per-ride wins. A missing fare is not an error: the pass is used if
// there is one, otherwise the cost is zero and Warning is set.
func PriceCommute(fare *float64, monthlyTrips float64, pass *float64) domain.PricedCommute {
	hasPass := pass != nil && *pass > 0

	if fare == nil {
		if hasPass {
			return domain.PricedCommute{
				Monthly:         *pass,
				Choice:          domain.Pass,
				FareUnavailable: true,
			}
		}
		return domain.PricedCommute{
			Choice:          domain.NoPricing,
			FareUnavailable: true,
			Warning:         true,
		}
	}

	payPerRide := *fare * monthlyTrips
	out := domain.PricedCommute{
		Monthly:    payPerRide,
		PayPerRide: payPerRide,
		Choice:     domain.PayPerRide,
	}

	if hasPass && *pass < payPerRide {
		out.Monthly = *pass
		out.Choice = domain.Pass
	}

	return out
}
