package domain

import (
	"fmt"
	"strings"
)

// Represents a single housing option under comparison.
// Recurring costs are monthly amounts in the local currency. OneTimeTotal is
// the sum of move-in costs (deposit, key money, agency fee...) which the
// aggregator spreads across TenancyMonths.
//
// A Candidate is a value: the engine never mutates it.
type Candidate struct {
	ID       string
	Name     string
	Location string

	Rent        float64
	BuildingFee float64
	Utilities   float64
	Phone       float64
	Food        float64
	Misc        float64
	BaseLiving  float64

	OneTimeTotal  float64
	OneTimeNotes  string
	TenancyMonths int
}

// FixedMonthly returns the sum of all recurring monthly cost fields.
func (c Candidate) FixedMonthly() float64 {
	return c.Rent + c.BuildingFee + c.Utilities + c.Phone + c.Food + c.Misc + c.BaseLiving
}

// DisplayName falls back to the location when no name was given.
func (c Candidate) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.Location
}

// Validate rejects negative amounts and empty locations.
// Tenancy is checked by the aggregator since it may be overridden per request.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Location) == "" {
		return fmt.Errorf("candidate %q: location must be non-empty: %w", c.ID, ErrInvalidInput)
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"rent", c.Rent},
		{"building_fee", c.BuildingFee},
		{"utilities", c.Utilities},
		{"phone", c.Phone},
		{"food", c.Food},
		{"misc", c.Misc},
		{"base_living", c.BaseLiving},
		{"one_time_cost", c.OneTimeTotal},
	}
	for _, a := range amounts {
		if a.value < 0 {
			return fmt.Errorf("candidate %q: %s must be non-negative, got %v: %w", c.ID, a.name, a.value, ErrInvalidInput)
		}
	}

	return nil
}
