package ports

import (
	"commute-tco-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving stored candidates and destinations.
type CandidateRepository interface {
	// Retrieve all stored housing candidates.
	ListCandidates(ctx context.Context) ([]domain.Candidate, error)
	// Retrieve all stored recurring destinations.
	ListDestinations(ctx context.Context) ([]domain.Destination, error)
}
