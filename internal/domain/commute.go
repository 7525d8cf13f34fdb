package domain

// WeightedRoute pairs a route result with its merge weight, the
// destination's monthly-equivalent visit count.
type WeightedRoute struct {
	Route  RouteResult
	Weight float64
}

// WeightedCommute is the frequency-weighted one-way commute of a candidate.
//
// Fare is nil when no contributing destination supplied a fare. The duration
// and fare averages may be computed over different subsets of destinations,
// so FareWeight can be smaller than TotalWeight.
type WeightedCommute struct {
	Minutes      float64
	Fare         *float64
	TotalWeight  float64
	FareWeight   float64
	Contributing int
}

// PricingChoice is the advisory label attached to a priced commute.
type PricingChoice string

const (
	PayPerRide PricingChoice = "pay_per_ride"
	Pass       PricingChoice = "pass"
	NoPricing  PricingChoice = "none"
)

// PricedCommute is the monthly cost of commuting to one destination.
//
// Warning is set when neither a fare nor a pass price was available, so the
// zero cost is a gap in the data rather than a free commute.
type PricedCommute struct {
	Monthly         float64
	PayPerRide      float64
	Choice          PricingChoice
	FareUnavailable bool
	Warning         bool
}
