package services

import (
	"commute-tco-service/internal/domain"
	"sort"
)

// RankCandidates orders breakdowns by ascending total. Equal totals keep
// their input order. Every breakdown is returned, including those flagged
// NoCommuteData.
func RankCandidates(breakdowns []domain.CostBreakdown, rankBy domain.RankBy) []domain.RankedCandidate {
	ranked := make([]domain.RankedCandidate, len(breakdowns))
	for i, b := range breakdowns {
		ranked[i] = domain.RankedCandidate{Total: b.Total(rankBy), Breakdown: b}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total < ranked[j].Total
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked
}
