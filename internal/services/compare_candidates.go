package services

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/obs"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type ComparisonRequest struct {
	Candidates   []domain.Candidate
	Destinations []domain.Destination
	Options      Options
}

// CandidateFailure is a candidate that could not be priced, with the
// stable error code explaining why.
type CandidateFailure struct {
	Candidate domain.Candidate
	Code      string
	Error     string
}

type Comparison struct {
	RankBy   domain.RankBy
	Ranked   []domain.RankedCandidate
	Failures []CandidateFailure
}

// Compare evaluates every candidate against the same destinations and ranks
// the ones that could be priced. Candidates halted by a provider hard error
// or an invalid tenancy are listed in Failures, in input order.
func (e *Engine) Compare(ctx context.Context, req ComparisonRequest) (_ Comparison, err error) {
	defer obs.Time(ctx, "engine.Compare")(&err)

	opts := req.Options
	if err := opts.Validate(); err != nil {
		return Comparison{}, fmt.Errorf("compare candidates: %w", err)
	}
	if opts.RankBy == "" {
		opts.RankBy = domain.RankByCash
	}
	if opts.DepartAt.IsZero() {
		opts.DepartAt = e.now()
	}

	if len(req.Candidates) == 0 {
		return Comparison{}, fmt.Errorf("compare candidates: no candidates: %w", domain.ErrInvalidInput)
	}
	if err := validateInputs(req.Candidates, req.Destinations); err != nil {
		return Comparison{}, fmt.Errorf("compare candidates: %w", err)
	}

	places, err := e.resolveDestinations(ctx, req.Destinations)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare candidates: %w", err)
	}

	breakdowns := make([]domain.CostBreakdown, len(req.Candidates))
	errs := make([]error, len(req.Candidates))

	sem := make(chan struct{}, e.concurrency)
	var wg sync.WaitGroup

	for i, c := range req.Candidates {
		wg.Add(1)
		go func(i int, c domain.Candidate) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			breakdowns[i], errs[i] = e.evaluate(ctx, c, req.Destinations, places, opts)
			recordOutcome(errs[i])
		}(i, c)
	}
	wg.Wait()

	out := Comparison{RankBy: opts.RankBy}
	priced := make([]domain.CostBreakdown, 0, len(breakdowns))
	for i, c := range req.Candidates {
		if errs[i] != nil {
			e.logger.Warn("candidate evaluation failed",
				zap.String("req_id", obs.RequestID(ctx)),
				zap.String("candidate", c.ID),
				zap.Error(errs[i]),
			)
			out.Failures = append(out.Failures, CandidateFailure{
				Candidate: c,
				Code:      domain.ErrorCode(errs[i]),
				Error:     errs[i].Error(),
			})
			continue
		}
		priced = append(priced, breakdowns[i])
	}

	out.Ranked = RankCandidates(priced, opts.RankBy)

	return out, nil
}
