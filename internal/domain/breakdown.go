package domain

// CommuteLeg is the per-destination part of a candidate's evaluation.
// Usable legs contribute to the commute cost and the time value; unusable
// legs keep their error code so callers can explain the gap.
type CommuteLeg struct {
	Destination   Destination
	Route         RouteResult
	Commute       WeightedCommute
	MonthlyVisits float64
	MonthlyTrips  float64
	Cost          PricedCommute
	DirectionsURL string
	Usable        bool
	ErrorCode     string
	Error         string
}

// CostBreakdown holds the derived monthly figures of one candidate.
// It is recomputed from scratch on every parameter change and never stored.
type CostBreakdown struct {
	Candidate Candidate

	FixedMonthly     float64
	CommuteMonthly   float64
	AmortizedOneTime float64
	TenancyMonths    int

	TimeValueMonthly *float64
	CommuteHours     float64

	CashTotal     float64
	CashTimeTotal *float64

	Commute       *WeightedCommute
	Legs          []CommuteLeg
	NoCommuteData bool
	Warnings      []string
}

// RankBy selects which grand total drives ranking.
type RankBy string

const (
	RankByCash     RankBy = "cash"
	RankByCashTime RankBy = "cash_time"
)

// Total returns the grand total selected by rankBy. A missing cash+time
// total falls back to the cash total.
func (b CostBreakdown) Total(rankBy RankBy) float64 {
	if rankBy == RankByCashTime && b.CashTimeTotal != nil {
		return *b.CashTimeTotal
	}
	return b.CashTotal
}

// RankedCandidate is a CostBreakdown with its 1-based position in a ranking.
type RankedCandidate struct {
	Rank      int
	Total     float64
	Breakdown CostBreakdown
}
