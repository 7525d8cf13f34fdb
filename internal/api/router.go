package api

import (
	"commute-tco-service/internal/api/handlers"
	"commute-tco-service/internal/platform/logging"
	"commute-tco-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// repo may be nil, in which case /candidates and /destinations answer 503 and
// /compare requires complete scenario bodies.
func NewRouter(repo ports.CandidateRepository, engine handlers.Comparer, logger *zap.Logger) http.Handler {
	logger = logging.OrNop(logger)

	mux := http.NewServeMux()

	candHandler := &handlers.CandidateHandler{Repo: repo, Logger: logger}
	cmpHandler := &handlers.CompareHandler{
		Repo:   repo,
		Engine: engine,
		Logger: logger,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/candidates", candHandler.ListCandidates)
	mux.HandleFunc("/destinations", candHandler.ListDestinations)
	mux.HandleFunc("/compare", cmpHandler.Compare)
	mux.Handle("/metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(logger, mux))
}
