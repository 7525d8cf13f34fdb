package handlers

import (
	"commute-tco-service/internal/api/dto"
	"commute-tco-service/internal/ports"
	"net/http"

	"go.uber.org/zap"
)

// CandidateHandler exposes the stored candidates and destinations read-only.
type CandidateHandler struct {
	Repo   ports.CandidateRepository
	Logger *zap.Logger
}

func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "candidate storage is not configured")
		return
	}

	cands, err := h.Repo.ListCandidates(r.Context())
	if err != nil {
		writeDomainError(w, r, loggerOrGlobal(h.Logger), "list candidates", err)
		return
	}

	res := dto.ListCandidatesResponse{
		Candidates: make([]dto.CandidateResponse, 0, len(cands)),
	}
	for _, c := range cands {
		res.Candidates = append(res.Candidates, dto.CandidateResponse{
			ID:            c.ID,
			Name:          c.Name,
			Location:      c.Location,
			Rent:          c.Rent,
			BuildingFee:   c.BuildingFee,
			Utilities:     c.Utilities,
			Phone:         c.Phone,
			Food:          c.Food,
			Misc:          c.Misc,
			BaseLiving:    c.BaseLiving,
			OneTimeTotal:  c.OneTimeTotal,
			OneTimeNotes:  c.OneTimeNotes,
			TenancyMonths: c.TenancyMonths,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *CandidateHandler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "UNAVAILABLE", "candidate storage is not configured")
		return
	}

	dests, err := h.Repo.ListDestinations(r.Context())
	if err != nil {
		writeDomainError(w, r, loggerOrGlobal(h.Logger), "list destinations", err)
		return
	}

	res := dto.ListDestinationsResponse{
		Destinations: make([]dto.DestinationResponse, 0, len(dests)),
	}
	for _, d := range dests {
		res.Destinations = append(res.Destinations, dto.DestinationResponse{
			Label:         d.Label,
			Location:      d.Location,
			VisitsPerWeek: d.VisitsPerWeek,
			PassPrice:     d.PassPrice,
			OneWay:        d.OneWay,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
