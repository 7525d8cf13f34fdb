package repositories

import (
	"commute-tco-service/internal/domain"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS candidates`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS destinations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS geocode_cache`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS candidates`).WillReturnError(errors.New("permission denied"))
	mock.ExpectRollback()

	err = InitSchema(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement #1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pass := 10850.0
	candidates := []domain.Candidate{{
		ID: "candidate-1", Name: "Warabi", Location: "蕨駅",
		Rent: 62000, BuildingFee: 5000, BaseLiving: 60000, TenancyMonths: 24,
	}}
	destinations := []domain.Destination{
		{Label: "school", Location: "新宿駅", VisitsPerWeek: 5, PassPrice: &pass},
		{Label: "juku", Location: "池袋駅", VisitsPerWeek: 1},
	}

	mock.ExpectBegin()
	candPrep := mock.ExpectPrepare(`INSERT INTO candidates`)
	candPrep.ExpectExec().
		WithArgs("candidate-1", "Warabi", "蕨駅", 62000.0, 5000.0, 0.0, 0.0, 0.0, 0.0, 60000.0, 0.0, "", 24).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destPrep := mock.ExpectPrepare(`INSERT INTO destinations`)
	destPrep.ExpectExec().
		WithArgs("school", "新宿駅", 5.0, 10850.0, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destPrep.ExpectExec().
		WithArgs("juku", "池袋駅", 1.0, nil, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, Seed(context.Background(), db, candidates, destinations))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRejectsInvalidRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Seed(context.Background(), db, []domain.Candidate{{ID: "bad", Location: "蕨駅", Rent: -1}}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFromFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	doc := `
destinations:
  - label: school
    location: 新宿駅
    visits_per_week: 5
candidates:
  - name: Warabi
    location: 蕨駅
    rent: 62000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	mock.ExpectBegin()
	candPrep := mock.ExpectPrepare(`INSERT INTO candidates`)
	candPrep.ExpectExec().
		WithArgs("candidate-1", "Warabi", "蕨駅", 62000.0, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	destPrep := mock.ExpectPrepare(`INSERT INTO destinations`)
	destPrep.ExpectExec().
		WithArgs("school", "新宿駅", 5.0, nil, false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedFromFile(context.Background(), db, path))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedFromFileMissing(t *testing.T) {
	err := SeedFromFile(context.Background(), nil, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
