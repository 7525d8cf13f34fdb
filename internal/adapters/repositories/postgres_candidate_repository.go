package repositories

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the CandidateRepository port.
type PostgresCandidateRepository struct{ DB *sql.DB }

func NewPostgresCandidateRepository(db *sql.DB) *PostgresCandidateRepository {
	return &PostgresCandidateRepository{DB: db}
}

// Return all candidates ordered by id.
func (r *PostgresCandidateRepository) ListCandidates(ctx context.Context) (_ []domain.Candidate, err error) {
	defer obs.Time(ctx, "repo.ListCandidates")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres candidate repository: DB is nil")
	}

	query := `
	SELECT
		id, name, location, rent, building_fee, utilities, phone, food, misc,
		base_living, one_time_total, one_time_notes, tenancy_months
	FROM candidates
	ORDER BY id;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list candidates: query candidates table: %w", err)
	}
	defer rows.Close()

	candidates := make([]domain.Candidate, 0, 16)
	for rows.Next() {
		var c domain.Candidate
		err := rows.Scan(
			&c.ID, &c.Name, &c.Location, &c.Rent, &c.BuildingFee, &c.Utilities, &c.Phone, &c.Food, &c.Misc,
			&c.BaseLiving, &c.OneTimeTotal, &c.OneTimeNotes, &c.TenancyMonths,
		)
		if err != nil {
			return nil, fmt.Errorf("list candidates: scan row: %w", err)
		}
		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list candidates: row iteration: %w", err)
	}

	return candidates, nil
}

// Return all destinations ordered by label.
func (r *PostgresCandidateRepository) ListDestinations(ctx context.Context) (_ []domain.Destination, err error) {
	defer obs.Time(ctx, "repo.ListDestinations")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres candidate repository: DB is nil")
	}

	query := `
	SELECT label, location, visits_per_week, pass_price, one_way
	FROM destinations
	ORDER BY label;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list destinations: query destinations table: %w", err)
	}
	defer rows.Close()

	destinations := make([]domain.Destination, 0, 8)
	for rows.Next() {
		var d domain.Destination
		var pass sql.NullFloat64
		if err := rows.Scan(&d.Label, &d.Location, &d.VisitsPerWeek, &pass, &d.OneWay); err != nil {
			return nil, fmt.Errorf("list destinations: scan row: %w", err)
		}
		if pass.Valid {
			v := pass.Float64
			d.PassPrice = &v
		}
		destinations = append(destinations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list destinations: row iteration: %w", err)
	}

	return destinations, nil
}
