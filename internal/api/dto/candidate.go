package dto

type CandidateResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Location      string  `json:"location"`
	Rent          float64 `json:"rent"`
	BuildingFee   float64 `json:"building_fee"`
	Utilities     float64 `json:"utilities"`
	Phone         float64 `json:"phone"`
	Food          float64 `json:"food"`
	Misc          float64 `json:"misc"`
	BaseLiving    float64 `json:"base_living"`
	OneTimeTotal  float64 `json:"one_time_total"`
	OneTimeNotes  string  `json:"one_time_notes,omitempty"`
	TenancyMonths int     `json:"tenancy_months"`
}

type ListCandidatesResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
}

type DestinationResponse struct {
	Label         string   `json:"label"`
	Location      string   `json:"location"`
	VisitsPerWeek float64  `json:"visits_per_week"`
	PassPrice     *float64 `json:"pass_price"`
	OneWay        bool     `json:"one_way"`
}

type ListDestinationsResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
}
