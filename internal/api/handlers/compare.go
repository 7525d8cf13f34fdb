package handlers

import (
	"commute-tco-service/internal/api/dto"
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/ports"
	"commute-tco-service/internal/scenario"
	"commute-tco-service/internal/services"
	"context"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const maxScenarioBytes = 1 << 20

type Comparer interface {
	Compare(ctx context.Context, req services.ComparisonRequest) (services.Comparison, error)
}

type CompareHandler struct {
	Repo   ports.CandidateRepository
	Engine Comparer
	Logger *zap.Logger
}

// Compare ranks the candidates of a scenario document (JSON or YAML body).
// Candidates or destinations left out of the body are loaded from the
// repository when one is configured.
func (h *CompareHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	logger := loggerOrGlobal(h.Logger)

	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxScenarioBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, domain.CodeInvalidInput, "scenario body too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, domain.CodeInvalidInput, "could not read body")
		return
	}

	doc, err := scenario.Parse(body)
	if err != nil {
		writeDomainError(w, r, logger, "parse scenario", err)
		return
	}

	req, err := doc.Request()
	if err != nil {
		writeDomainError(w, r, logger, "build comparison request", err)
		return
	}

	if h.Repo != nil {
		if len(req.Candidates) == 0 {
			if req.Candidates, err = h.Repo.ListCandidates(r.Context()); err != nil {
				writeDomainError(w, r, logger, "load candidates", err)
				return
			}
		}
		if len(req.Destinations) == 0 {
			if req.Destinations, err = h.Repo.ListDestinations(r.Context()); err != nil {
				writeDomainError(w, r, logger, "load destinations", err)
				return
			}
		}
	}

	cmp, err := h.Engine.Compare(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, logger, "compare candidates", err)
		return
	}

	writeJSON(w, r, http.StatusOK, comparisonResponse(cmp))
}

func comparisonResponse(cmp services.Comparison) dto.ComparisonResponse {
	res := dto.ComparisonResponse{
		RankBy:   string(cmp.RankBy),
		Ranked:   make([]dto.RankedCandidateResponse, 0, len(cmp.Ranked)),
		Failures: make([]dto.FailureResponse, 0, len(cmp.Failures)),
	}

	for _, rc := range cmp.Ranked {
		b := rc.Breakdown

		legs := make([]dto.LegResponse, 0, len(b.Legs))
		for _, l := range b.Legs {
			legs = append(legs, dto.LegResponse{
				Destination:   l.Destination.Label,
				Usable:        l.Usable,
				Minutes:       l.Route.DurationMinutes,
				Fare:          l.Route.Fare,
				Summary:       l.Route.Summary,
				Tier:          l.Route.Tier.String(),
				MonthlyTrips:  l.MonthlyTrips,
				MonthlyCost:   l.Cost.Monthly,
				Pricing:       string(l.Cost.Choice),
				Warning:       l.Cost.Warning,
				DirectionsURL: l.DirectionsURL,
				ErrorCode:     l.ErrorCode,
				Error:         l.Error,
			})
		}

		var commute *dto.CommuteResponse
		if b.Commute != nil {
			commute = &dto.CommuteResponse{
				Minutes:      b.Commute.Minutes,
				Fare:         b.Commute.Fare,
				Contributing: b.Commute.Contributing,
			}
		}

		warnings := b.Warnings
		if warnings == nil {
			warnings = []string{}
		}

		res.Ranked = append(res.Ranked, dto.RankedCandidateResponse{
			Rank:             rc.Rank,
			Total:            rc.Total,
			CandidateID:      b.Candidate.ID,
			Name:             b.Candidate.DisplayName(),
			Location:         b.Candidate.Location,
			FixedMonthly:     b.FixedMonthly,
			CommuteMonthly:   b.CommuteMonthly,
			AmortizedOneTime: b.AmortizedOneTime,
			TenancyMonths:    b.TenancyMonths,
			CommuteHours:     b.CommuteHours,
			TimeValueMonthly: b.TimeValueMonthly,
			CashTotal:        b.CashTotal,
			CashTimeTotal:    b.CashTimeTotal,
			Commute:          commute,
			NoCommuteData:    b.NoCommuteData,
			Warnings:         warnings,
			Legs:             legs,
		})
	}

	for _, f := range cmp.Failures {
		res.Failures = append(res.Failures, dto.FailureResponse{
			CandidateID: f.Candidate.ID,
			Name:        f.Candidate.DisplayName(),
			Code:        f.Code,
			Error:       f.Error,
		})
	}

	return res
}
