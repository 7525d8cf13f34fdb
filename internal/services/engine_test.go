package services

import (
	"commute-tco-service/internal/adapters/geocode"
	"commute-tco-service/internal/adapters/transit"
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/ports"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testNow = time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, resolver ports.LocationResolver, provider ports.RouteProvider) *Engine {
	t.Helper()

	policy, err := NewRetryPolicy(provider, WithClock(fixedClock(testNow)))
	require.NoError(t, err)

	engine, err := NewEngine(resolver, policy,
		WithEngineClock(fixedClock(testNow)),
		WithConcurrency(2),
		WithEngineLogger(zaptest.NewLogger(t)),
	)
	require.NoError(t, err)
	return engine
}

func schoolDestination() domain.Destination {
	return domain.Destination{Label: "school", Location: "Shinjuku", VisitsPerWeek: 5}
}

func TestEvaluateCandidateEndToEnd(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: ptr(200), Summary: "JR Saikyo Line"},
	})
	engine := newTestEngine(t, resolver, provider)

	got, err := engine.EvaluateCandidate(context.Background(), scenarioCandidate(),
		[]domain.Destination{schoolDestination()}, Options{})
	require.NoError(t, err)

	assert.InDelta(t, 171660.0, got.CashTotal, 1e-6)
	require.Len(t, got.Legs, 1)

	leg := got.Legs[0]
	assert.True(t, leg.Usable)
	assert.Equal(t, "JR Saikyo Line", leg.Route.Summary)
	assert.Equal(t, domain.TierStrictDeparture, leg.Route.Tier)
	assert.Contains(t, leg.DirectionsURL, "travelmode=transit")
	require.NotNil(t, got.Commute)
	assert.InDelta(t, 30.0, got.Commute.Minutes, 1e-9)
}

func TestEvaluateCandidatePartialDestinations(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku", "Ikebukuro")
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: ptr(200)},
	})
	engine := newTestEngine(t, resolver, provider)

	dests := []domain.Destination{
		schoolDestination(),
		{Label: "juku", Location: "Ikebukuro", VisitsPerWeek: 1},
		{Label: "gym", Location: "Atlantis", VisitsPerWeek: 2},
	}

	got, err := engine.EvaluateCandidate(context.Background(), scenarioCandidate(), dests, Options{})
	require.NoError(t, err)

	require.Len(t, got.Legs, 3)
	assert.True(t, got.Legs[0].Usable)
	assert.Equal(t, domain.CodeNoRouteFound, got.Legs[1].ErrorCode)
	assert.Equal(t, domain.CodeLocationNotFound, got.Legs[2].ErrorCode)
	assert.InDelta(t, 171660.0, got.CashTotal, 1e-6)
	assert.False(t, got.NoCommuteData)

	// juku walked all four tiers, school stopped at the first.
	assert.Equal(t, 5, provider.CallCount())
}

func TestEvaluateCandidateUnknownOriginHasNoCommuteData(t *testing.T) {
	resolver := geocode.NewStaticResolver("Shinjuku")
	provider := transit.NewMockRouteProvider(nil)
	engine := newTestEngine(t, resolver, provider)

	c := scenarioCandidate()
	c.Location = "Nowhere-machi"

	got, err := engine.EvaluateCandidate(context.Background(), c, []domain.Destination{schoolDestination()}, Options{})
	require.NoError(t, err)

	assert.True(t, got.NoCommuteData)
	assert.Equal(t, domain.CodeLocationNotFound, got.Legs[0].ErrorCode)
	assert.InDelta(t, 163000.0, got.CashTotal, 1e-9)
	assert.Equal(t, 0, provider.CallCount())
}

func TestEvaluateCandidateHardErrorHalts(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	provider := transit.NewMockRouteProvider(nil)
	provider.Script("Nishi-Kawaguchi", "Shinjuku", ports.HardError("quota exceeded"))
	engine := newTestEngine(t, resolver, provider)

	_, err := engine.EvaluateCandidate(context.Background(), scenarioCandidate(),
		[]domain.Destination{schoolDestination()}, Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderHard)
	assert.Equal(t, domain.CodeProviderHardError, domain.ErrorCode(err))
}

func TestEvaluateCandidateTenancyOverride(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	provider := transit.NewMockRouteProvider(nil)
	engine := newTestEngine(t, resolver, provider)

	c := scenarioCandidate()
	c.OneTimeTotal = 240000
	c.TenancyMonths = 0

	_, err := engine.EvaluateCandidate(context.Background(), c, nil, Options{})
	assert.ErrorIs(t, err, domain.ErrInvalidTenancy)

	got, err := engine.EvaluateCandidate(context.Background(), c, nil, Options{TenancyMonths: 24})
	require.NoError(t, err)
	assert.Equal(t, 10000.0, got.AmortizedOneTime)
	assert.Equal(t, 24, got.TenancyMonths)
}

func TestEvaluateCandidateDestinationLookupFailureIsScoped(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku", "Ikebukuro")
	resolver.Failures = map[string]error{"Ikebukuro": errors.New("geocoder unavailable")}
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: ptr(200)},
	})
	engine := newTestEngine(t, resolver, provider)

	dests := []domain.Destination{
		schoolDestination(),
		{Label: "juku", Location: "Ikebukuro", VisitsPerWeek: 1},
	}

	got, err := engine.EvaluateCandidate(context.Background(), scenarioCandidate(), dests, Options{})
	require.NoError(t, err)

	assert.True(t, got.Legs[0].Usable)
	assert.False(t, got.Legs[1].Usable)
	assert.Equal(t, domain.CodeInternal, got.Legs[1].ErrorCode)
	assert.Contains(t, got.Legs[1].Error, "geocoder unavailable")
	assert.InDelta(t, 171660.0, got.CashTotal, 1e-6)
	assert.Equal(t, 1, provider.CallCount())
}

func TestEvaluateCandidateOriginLookupFailureKeepsCandidate(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	resolver.Failures = map[string]error{"Nishi-Kawaguchi": errors.New("HTTP 503")}
	provider := transit.NewMockRouteProvider(nil)
	engine := newTestEngine(t, resolver, provider)

	got, err := engine.EvaluateCandidate(context.Background(), scenarioCandidate(),
		[]domain.Destination{schoolDestination()}, Options{})
	require.NoError(t, err)

	assert.True(t, got.NoCommuteData)
	assert.Equal(t, domain.CodeInternal, got.Legs[0].ErrorCode)
	assert.Equal(t, 0, provider.CallCount())
}

func TestCompareSurvivesDestinationLookupFailure(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	resolver.Failures = map[string]error{"Shinjuku": errors.New("geocoder unavailable")}
	engine := newTestEngine(t, resolver, transit.NewMockRouteProvider(nil))

	got, err := engine.Compare(context.Background(), ComparisonRequest{
		Candidates:   []domain.Candidate{scenarioCandidate()},
		Destinations: []domain.Destination{schoolDestination()},
	})
	require.NoError(t, err)

	require.Len(t, got.Ranked, 1)
	assert.Empty(t, got.Failures)
	assert.True(t, got.Ranked[0].Breakdown.NoCommuteData)
}

func TestEvaluateCandidateCancelledContext(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Shinjuku")
	engine := newTestEngine(t, resolver, transit.NewMockRouteProvider(nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.EvaluateCandidate(ctx, scenarioCandidate(), []domain.Destination{schoolDestination()}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareRanksAndReportsFailures(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Warabi", "Akabane", "Shinjuku")
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: ptr(200)},
		{From: "Warabi", To: "Shinjuku", Minutes: 40, Fare: ptr(300)},
	})
	provider.Script("Akabane", "Shinjuku", ports.HardError("provider down"))
	engine := newTestEngine(t, resolver, provider)

	kawaguchi := scenarioCandidate()

	warabi := scenarioCandidate()
	warabi.ID = "warabi"
	warabi.Location = "Warabi"
	warabi.Rent = 80000

	akabane := scenarioCandidate()
	akabane.ID = "akabane"
	akabane.Location = "Akabane"

	got, err := engine.Compare(context.Background(), ComparisonRequest{
		Candidates:   []domain.Candidate{kawaguchi, akabane, warabi},
		Destinations: []domain.Destination{schoolDestination()},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RankByCash, got.RankBy)
	require.Len(t, got.Ranked, 2)
	// warabi: 153,000 fixed + 300*43.3 = 165,990
	assert.Equal(t, []string{"warabi", "kawaguchi"}, ids(got.Ranked))
	assert.InDelta(t, 165990.0, got.Ranked[0].Total, 1e-6)
	assert.InDelta(t, 171660.0, got.Ranked[1].Total, 1e-6)

	require.Len(t, got.Failures, 1)
	assert.Equal(t, "akabane", got.Failures[0].Candidate.ID)
	assert.Equal(t, domain.CodeProviderHardError, got.Failures[0].Code)
}

func TestCompareByCashTime(t *testing.T) {
	resolver := geocode.NewStaticResolver("Nishi-Kawaguchi", "Warabi", "Shinjuku")
	provider := transit.NewMockRouteProvider([]transit.MockRoute{
		{From: "Nishi-Kawaguchi", To: "Shinjuku", Minutes: 30, Fare: ptr(200)},
		{From: "Warabi", To: "Shinjuku", Minutes: 90, Fare: ptr(200)},
	})
	engine := newTestEngine(t, resolver, provider)

	near := scenarioCandidate()
	far := scenarioCandidate()
	far.ID = "warabi"
	far.Location = "Warabi"
	far.Rent = 85000

	req := ComparisonRequest{
		Candidates:   []domain.Candidate{near, far},
		Destinations: []domain.Destination{schoolDestination()},
		Options:      Options{TimeValuePerHour: ptr(1000), RankBy: domain.RankByCashTime},
	}

	got, err := engine.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"kawaguchi", "warabi"}, ids(got.Ranked))

	req.Options.RankBy = domain.RankByCash
	got, err = engine.Compare(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"warabi", "kawaguchi"}, ids(got.Ranked))
}

func TestCompareRejectsInvalidRequests(t *testing.T) {
	engine := newTestEngine(t, geocode.NewStaticResolver(), transit.NewMockRouteProvider(nil))

	cases := map[string]ComparisonRequest{
		"no candidates": {},
		"cash_time without rate": {
			Candidates: []domain.Candidate{scenarioCandidate()},
			Options:    Options{RankBy: domain.RankByCashTime},
		},
		"unknown rank by": {
			Candidates: []domain.Candidate{scenarioCandidate()},
			Options:    Options{RankBy: "vibes"},
		},
		"negative frequency": {
			Candidates:   []domain.Candidate{scenarioCandidate()},
			Destinations: []domain.Destination{{Label: "x", Location: "y", VisitsPerWeek: -1}},
		},
		"duplicate labels": {
			Candidates:   []domain.Candidate{scenarioCandidate()},
			Destinations: []domain.Destination{schoolDestination(), schoolDestination()},
		},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := engine.Compare(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNewEngineRequiresCollaborators(t *testing.T) {
	policy, err := NewRetryPolicy(transit.NewMockRouteProvider(nil))
	require.NoError(t, err)

	_, err = NewEngine(nil, policy)
	assert.Error(t, err)

	_, err = NewEngine(geocode.NewStaticResolver(), nil)
	assert.Error(t, err)
}
