package repositories

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/scenario"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCandidatesQuery := `
	CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL,
		rent DOUBLE PRECISION NOT NULL DEFAULT 0,
		building_fee DOUBLE PRECISION NOT NULL DEFAULT 0,
		utilities DOUBLE PRECISION NOT NULL DEFAULT 0,
		phone DOUBLE PRECISION NOT NULL DEFAULT 0,
		food DOUBLE PRECISION NOT NULL DEFAULT 0,
		misc DOUBLE PRECISION NOT NULL DEFAULT 0,
		base_living DOUBLE PRECISION NOT NULL DEFAULT 0,
		one_time_total DOUBLE PRECISION NOT NULL DEFAULT 0,
		one_time_notes TEXT NOT NULL DEFAULT '',
		tenancy_months INTEGER NOT NULL
	);
	`

	createDestinationsQuery := `
	CREATE TABLE IF NOT EXISTS destinations (
		label TEXT PRIMARY KEY,
		location TEXT NOT NULL,
		visits_per_week DOUBLE PRECISION NOT NULL CHECK (visits_per_week >= 0),
		pass_price DOUBLE PRECISION,
		one_way BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		location_key TEXT PRIMARY KEY,
		display_name TEXT NOT NULL DEFAULT '',
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	statements := []string{
		createCandidatesQuery,
		createDestinationsQuery,
		createGeocodeCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate candidates and destinations from a scenario file.
func SeedFromFile(ctx context.Context, db *sql.DB, path string) error {
	doc, err := scenario.LoadFile(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	return Seed(ctx, db, doc.CandidateList(), doc.DestinationList())
}

// Upsert candidates and destinations in one transaction.
func Seed(ctx context.Context, db *sql.DB, candidates []domain.Candidate, destinations []domain.Destination) error {
	if db == nil {
		return errors.New("seed: DB is nil")
	}

	for i, c := range candidates {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("seed: candidate at index %d: %w", i+1, err)
		}
	}
	for i, d := range destinations {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("seed: destination at index %d: %w", i+1, err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	candStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO candidates (
		id, name, location, rent, building_fee, utilities, phone, food, misc,
		base_living, one_time_total, one_time_notes, tenancy_months
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (id) DO UPDATE
	SET name = EXCLUDED.name,
		location = EXCLUDED.location,
		rent = EXCLUDED.rent,
		building_fee = EXCLUDED.building_fee,
		utilities = EXCLUDED.utilities,
		phone = EXCLUDED.phone,
		food = EXCLUDED.food,
		misc = EXCLUDED.misc,
		base_living = EXCLUDED.base_living,
		one_time_total = EXCLUDED.one_time_total,
		one_time_notes = EXCLUDED.one_time_notes,
		tenancy_months = EXCLUDED.tenancy_months;
	`)
	if err != nil {
		return fmt.Errorf("seed candidates: prepare insert: %w", err)
	}
	defer candStmt.Close()

	for _, c := range candidates {
		if _, err := candStmt.ExecContext(ctx,
			c.ID, c.Name, c.Location, c.Rent, c.BuildingFee, c.Utilities, c.Phone, c.Food, c.Misc,
			c.BaseLiving, c.OneTimeTotal, c.OneTimeNotes, c.TenancyMonths,
		); err != nil {
			return fmt.Errorf("seed candidates: insert id=%q: %w", c.ID, err)
		}
	}

	destStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO destinations (label, location, visits_per_week, pass_price, one_way)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (label) DO UPDATE
	SET location = EXCLUDED.location,
		visits_per_week = EXCLUDED.visits_per_week,
		pass_price = EXCLUDED.pass_price,
		one_way = EXCLUDED.one_way;
	`)
	if err != nil {
		return fmt.Errorf("seed destinations: prepare insert: %w", err)
	}
	defer destStmt.Close()

	for _, d := range destinations {
		var pass sql.NullFloat64
		if d.PassPrice != nil {
			pass = sql.NullFloat64{Float64: *d.PassPrice, Valid: true}
		}
		if _, err := destStmt.ExecContext(ctx, d.Label, d.Location, d.VisitsPerWeek, pass, d.OneWay); err != nil {
			return fmt.Errorf("seed destinations: insert label=%q: %w", d.Label, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}
