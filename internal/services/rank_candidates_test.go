package services

import (
	"commute-tco-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func breakdown(id string, cash float64, cashTime *float64) domain.CostBreakdown {
	return domain.CostBreakdown{
		Candidate:     domain.Candidate{ID: id},
		CashTotal:     cash,
		CashTimeTotal: cashTime,
	}
}

func ids(ranked []domain.RankedCandidate) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Breakdown.Candidate.ID
	}
	return out
}

func TestRankCandidatesAscending(t *testing.T) {
	ranked := RankCandidates([]domain.CostBreakdown{
		breakdown("first", 171660, nil),
		breakdown("second", 165000, nil),
	}, domain.RankByCash)

	require.Len(t, ranked, 2)
	assert.Equal(t, []string{"second", "first"}, ids(ranked))
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 165000.0, ranked[0].Total)
}

func TestRankCandidatesStableOnTies(t *testing.T) {
	ranked := RankCandidates([]domain.CostBreakdown{
		breakdown("a", 150000, nil),
		breakdown("b", 120000, nil),
		breakdown("c", 150000, nil),
		breakdown("d", 150000, nil),
	}, domain.RankByCash)

	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(ranked))
}

func TestRankCandidatesByCashTime(t *testing.T) {
	ranked := RankCandidates([]domain.CostBreakdown{
		breakdown("cheap-but-far", 150000, ptr(200000)),
		breakdown("close", 160000, ptr(170000)),
	}, domain.RankByCashTime)

	assert.Equal(t, []string{"close", "cheap-but-far"}, ids(ranked))

	ranked = RankCandidates([]domain.CostBreakdown{
		breakdown("cheap-but-far", 150000, ptr(200000)),
		breakdown("close", 160000, ptr(170000)),
	}, domain.RankByCash)

	assert.Equal(t, []string{"cheap-but-far", "close"}, ids(ranked))
}

func TestRankCandidatesKeepsEveryone(t *testing.T) {
	noData := breakdown("no-data", 100000, nil)
	noData.NoCommuteData = true

	ranked := RankCandidates([]domain.CostBreakdown{
		breakdown("x", 130000, nil),
		noData,
	}, domain.RankByCash)

	require.Len(t, ranked, 2)
	assert.True(t, ranked[0].Breakdown.NoCommuteData)
	assert.Empty(t, RankCandidates(nil, domain.RankByCash))
}
