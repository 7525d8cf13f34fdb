package services

import (
	"commute-tco-service/internal/domain"
	"fmt"
)

// AggregateInput is everything AggregateCosts needs for one candidate.
// Legs carry the per-destination priced cost; only usable legs count.
type AggregateInput struct {
	Candidate        domain.Candidate
	Legs             []domain.CommuteLeg
	Commute          *domain.WeightedCommute
	TenancyMonths    int
	TimeValuePerHour *float64
}

// AggregateCosts folds fixed, commute and amortized one-time costs into a
// CostBreakdown. With a time-value rate it also prices the monthly hours
// spent commuting and fills the cash+time total.
//
// The result shares no memory with the input.
func AggregateCosts(in AggregateInput) (domain.CostBreakdown, error) {
	if in.TenancyMonths < 1 {
		return domain.CostBreakdown{}, fmt.Errorf(
			"aggregate costs: candidate %q: tenancy %d months: %w",
			in.Candidate.ID, in.TenancyMonths, domain.ErrInvalidTenancy,
		)
	}

	out := domain.CostBreakdown{
		Candidate:        in.Candidate,
		FixedMonthly:     in.Candidate.FixedMonthly(),
		AmortizedOneTime: in.Candidate.OneTimeTotal / float64(in.TenancyMonths),
		TenancyMonths:    in.TenancyMonths,
		Legs:             make([]domain.CommuteLeg, len(in.Legs)),
	}
	copy(out.Legs, in.Legs)

	if in.Commute != nil {
		c := *in.Commute
		out.Commute = &c
	} else {
		out.NoCommuteData = true
	}

	var monthlyMinutes float64
	for _, leg := range in.Legs {
		if !leg.Usable {
			continue
		}

		out.CommuteMonthly += leg.Cost.Monthly
		monthlyMinutes += float64(leg.Route.DurationMinutes) * leg.MonthlyTrips

		if leg.Cost.Warning {
			out.Warnings = append(out.Warnings,
				fmt.Sprintf("%s: no fare or pass price available, commute cost counted as 0", leg.Destination.Label))
		}
	}
	out.CommuteHours = monthlyMinutes / 60

	if out.NoCommuteData {
		out.Warnings = append(out.Warnings, "no usable commute data, commute cost counted as 0")
	}

	out.CashTotal = out.FixedMonthly + out.CommuteMonthly + out.AmortizedOneTime

	if in.TimeValuePerHour != nil {
		tv := out.CommuteHours * *in.TimeValuePerHour
		total := out.CashTotal + tv
		out.TimeValueMonthly = &tv
		out.CashTimeTotal = &total
	}

	return out, nil
}
