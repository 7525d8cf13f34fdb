package main

import (
	"bytes"
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/services"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestYen(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{171660, "171,660"},
		{1234567.6, "1,234,568"},
		{-8660, "-8,660"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, yen(tt.in))
	}
}

func TestRenderComparison(t *testing.T) {
	color.NoColor = true

	fare := 200.0
	cmp := services.Comparison{
		RankBy: domain.RankByCash,
		Ranked: []domain.RankedCandidate{
			{
				Rank:  1,
				Total: 171660,
				Breakdown: domain.CostBreakdown{
					Candidate:      domain.Candidate{ID: "nk", Name: "Nishi-Kawaguchi"},
					FixedMonthly:   163000,
					CommuteMonthly: 8660,
					CashTotal:      171660,
					Commute:        &domain.WeightedCommute{Minutes: 30},
					Legs: []domain.CommuteLeg{{
						Destination:  domain.Destination{Label: "school"},
						Route:        domain.RouteFound(30, &fare, "JR Saikyo Line"),
						MonthlyTrips: 43.3,
						Cost:         domain.PricedCommute{Monthly: 8660, Choice: domain.PayPerRide},
						Usable:       true,
					}},
				},
			},
			{
				Rank:  2,
				Total: 180000,
				Breakdown: domain.CostBreakdown{
					Candidate:     domain.Candidate{ID: "wr", Location: "Warabi"},
					CashTotal:     180000,
					NoCommuteData: true,
				},
			},
		},
		Failures: []services.CandidateFailure{
			{Candidate: domain.Candidate{ID: "bad", Name: "Akabane"}, Code: domain.CodeInvalidTenancy, Error: "tenancy 0 months"},
		},
	}

	var buf bytes.Buffer
	renderComparison(&buf, cmp, true)
	out := buf.String()

	assert.Contains(t, out, "Ranking by cash")
	assert.Contains(t, out, "171,660")
	assert.Contains(t, out, "Nishi-Kawaguchi")
	assert.Contains(t, out, "Warabi: no usable commute data")
	assert.Contains(t, out, "JR Saikyo Line")
	assert.Contains(t, out, "Akabane [INVALID_TENANCY]")

	lines := strings.Split(out, "\n")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(lines[3]), "1"))
}

func TestRenderRoute(t *testing.T) {
	color.NoColor = true

	origin := domain.Place{ID: "a", DisplayName: "西川口駅"}
	dest := domain.Place{ID: "b", DisplayName: "新宿駅"}

	var buf bytes.Buffer
	renderRoute(&buf, origin, dest, domain.RouteNotFound("no trains").WithTier(domain.TierRelaxedArrival))

	assert.Contains(t, buf.String(), "no route on any tier: no trains")
	assert.Contains(t, buf.String(), "travelmode=transit")
}
