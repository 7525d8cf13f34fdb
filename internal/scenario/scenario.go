// Package scenario reads comparison scenarios: housing candidates,
// recurring destinations and evaluation options in one YAML or JSON
// document.
package scenario

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/services"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Defaults applied to candidate fields left out of a document.
const (
	DefaultBaseLiving    = 60000.0
	DefaultBuildingFee   = 5000.0
	DefaultTenancyMonths = 24
)

type Document struct {
	Options      OptionsDoc       `json:"options"`
	Destinations []DestinationDoc `json:"destinations"`
	Candidates   []CandidateDoc   `json:"candidates"`
}

type OptionsDoc struct {
	DepartAt         string   `json:"depart_at,omitempty"`
	TenancyMonths    int      `json:"tenancy_months,omitempty"`
	TimeValuePerHour *float64 `json:"time_value_per_hour,omitempty"`
	RankBy           string   `json:"rank_by,omitempty"`
}

type DestinationDoc struct {
	Label         string   `json:"label"`
	Location      string   `json:"location"`
	VisitsPerWeek float64  `json:"visits_per_week"`
	PassPrice     *float64 `json:"pass_price,omitempty"`
	OneWay        bool     `json:"one_way,omitempty"`
}

type CandidateDoc struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name,omitempty"`
	Location      string   `json:"location"`
	Rent          float64  `json:"rent"`
	BuildingFee   *float64 `json:"building_fee,omitempty"`
	Utilities     float64  `json:"utilities,omitempty"`
	Phone         float64  `json:"phone,omitempty"`
	Food          float64  `json:"food,omitempty"`
	Misc          float64  `json:"misc,omitempty"`
	BaseLiving    *float64 `json:"base_living,omitempty"`
	OneTimeTotal  float64  `json:"one_time_total,omitempty"`
	OneTimeNotes  string   `json:"one_time_notes,omitempty"`
	TenancyMonths *int     `json:"tenancy_months,omitempty"`
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	return schema, schemaErr
}

// Parse decodes a YAML or JSON document and validates it against the
// scenario schema. Validation failures wrap domain.ErrInvalidInput.
func Parse(data []byte) (*Document, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scenario: decode: %v: %w", err, domain.ErrInvalidInput)
	}
	if raw == nil {
		return nil, fmt.Errorf("parse scenario: empty document: %w", domain.ErrInvalidInput)
	}

	if err := validate(raw); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scenario: re-encode: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse scenario: decode document: %v: %w", err, domain.ErrInvalidInput)
	}

	return &doc, nil
}

func validate(raw interface{}) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return fmt.Errorf("validation error: %v: %w", err, domain.ErrInvalidInput)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("document validation failed: %s: %w", strings.Join(errs, "; "), domain.ErrInvalidInput)
	}

	return nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", path, err)
	}
	return Parse(data)
}

// CandidateList converts the candidates, filling defaults for omitted fields
// and generated IDs for anonymous candidates.
func (d *Document) CandidateList() []domain.Candidate {
	out := make([]domain.Candidate, len(d.Candidates))
	for i, c := range d.Candidates {
		out[i] = c.toDomain(i)
	}
	return out
}

func (c CandidateDoc) toDomain(i int) domain.Candidate {
	id := strings.TrimSpace(c.ID)
	if id == "" {
		id = fmt.Sprintf("candidate-%d", i+1)
	}

	buildingFee := DefaultBuildingFee
	if c.BuildingFee != nil {
		buildingFee = *c.BuildingFee
	}

	baseLiving := DefaultBaseLiving
	if c.BaseLiving != nil {
		baseLiving = *c.BaseLiving
	}

	tenancy := DefaultTenancyMonths
	if c.TenancyMonths != nil {
		tenancy = *c.TenancyMonths
	}

	return domain.Candidate{
		ID:            id,
		Name:          c.Name,
		Location:      strings.TrimSpace(c.Location),
		Rent:          c.Rent,
		BuildingFee:   buildingFee,
		Utilities:     c.Utilities,
		Phone:         c.Phone,
		Food:          c.Food,
		Misc:          c.Misc,
		BaseLiving:    baseLiving,
		OneTimeTotal:  c.OneTimeTotal,
		OneTimeNotes:  c.OneTimeNotes,
		TenancyMonths: tenancy,
	}
}

func (d *Document) DestinationList() []domain.Destination {
	out := make([]domain.Destination, len(d.Destinations))
	for i, dd := range d.Destinations {
		var pass *float64
		if dd.PassPrice != nil {
			v := *dd.PassPrice
			pass = &v
		}
		out[i] = domain.Destination{
			Label:         strings.TrimSpace(dd.Label),
			Location:      strings.TrimSpace(dd.Location),
			VisitsPerWeek: dd.VisitsPerWeek,
			PassPrice:     pass,
			OneWay:        dd.OneWay,
		}
	}
	return out
}

// EngineOptions converts the options block. An empty depart_at leaves the
// engine to use the current time.
func (d *Document) EngineOptions() (services.Options, error) {
	opts := services.Options{
		TenancyMonths: d.Options.TenancyMonths,
		RankBy:        domain.RankBy(d.Options.RankBy),
	}

	if d.Options.TimeValuePerHour != nil {
		v := *d.Options.TimeValuePerHour
		opts.TimeValuePerHour = &v
	}

	if d.Options.DepartAt != "" {
		t, err := time.Parse(time.RFC3339, d.Options.DepartAt)
		if err != nil {
			return services.Options{}, fmt.Errorf("scenario options: depart_at: %v: %w", err, domain.ErrInvalidInput)
		}
		opts.DepartAt = t
	}

	return opts, nil
}

// Request builds the comparison request described by the document.
func (d *Document) Request() (services.ComparisonRequest, error) {
	opts, err := d.EngineOptions()
	if err != nil {
		return services.ComparisonRequest{}, err
	}

	return services.ComparisonRequest{
		Candidates:   d.CandidateList(),
		Destinations: d.DestinationList(),
		Options:      opts,
	}, nil
}
