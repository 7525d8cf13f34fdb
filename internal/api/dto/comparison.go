package dto

type LegResponse struct {
	Destination   string   `json:"destination"`
	Usable        bool     `json:"usable"`
	Minutes       int      `json:"minutes"`
	Fare          *float64 `json:"fare"`
	Summary       string   `json:"summary,omitempty"`
	Tier          string   `json:"tier"`
	MonthlyTrips  float64  `json:"monthly_trips"`
	MonthlyCost   float64  `json:"monthly_cost"`
	Pricing       string   `json:"pricing"`
	Warning       bool     `json:"warning,omitempty"`
	DirectionsURL string   `json:"directions_url,omitempty"`
	ErrorCode     string   `json:"error_code,omitempty"`
	Error         string   `json:"error,omitempty"`
}

type CommuteResponse struct {
	Minutes      float64  `json:"minutes"`
	Fare         *float64 `json:"fare"`
	Contributing int      `json:"contributing"`
}

type RankedCandidateResponse struct {
	Rank             int              `json:"rank"`
	Total            float64          `json:"total"`
	CandidateID      string           `json:"candidate_id"`
	Name             string           `json:"name"`
	Location         string           `json:"location"`
	FixedMonthly     float64          `json:"fixed_monthly"`
	CommuteMonthly   float64          `json:"commute_monthly"`
	AmortizedOneTime float64          `json:"amortized_one_time"`
	TenancyMonths    int              `json:"tenancy_months"`
	CommuteHours     float64          `json:"commute_hours"`
	TimeValueMonthly *float64         `json:"time_value_monthly"`
	CashTotal        float64          `json:"cash_total"`
	CashTimeTotal    *float64         `json:"cash_time_total"`
	Commute          *CommuteResponse `json:"commute"`
	NoCommuteData    bool             `json:"no_commute_data"`
	Warnings         []string         `json:"warnings"`
	Legs             []LegResponse    `json:"legs"`
}

type FailureResponse struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Error       string `json:"error"`
}

type ComparisonResponse struct {
	RankBy   string                    `json:"rank_by"`
	Ranked   []RankedCandidateResponse `json:"ranked"`
	Failures []FailureResponse         `json:"failures"`
}
