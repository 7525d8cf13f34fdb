package handlers

import (
	"commute-tco-service/internal/domain"
	"commute-tco-service/internal/platform/obs"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("encode response failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg, "code": code})
}

// writeDomainError maps err to a status by its stable code. Internal errors
// are logged and hidden from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, op string, err error) {
	code := domain.ErrorCode(err)

	var status int
	switch code {
	case domain.CodeInvalidInput, domain.CodeInvalidTenancy:
		status = http.StatusBadRequest
	case domain.CodeLocationNotFound:
		status = http.StatusUnprocessableEntity
	case domain.CodeProviderHardError:
		status = http.StatusBadGateway
	default:
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
			break
		}
		logger.Error(op+" failed",
			zap.String("req_id", obs.RequestID(r.Context())),
			zap.Error(err),
		)
		writeError(w, r, http.StatusInternalServerError, domain.CodeInternal, "internal server error")
		return
	}

	writeError(w, r, status, code, err.Error())
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

func loggerOrGlobal(l *zap.Logger) *zap.Logger {
	if l != nil {
		return l
	}
	return zap.L()
}
