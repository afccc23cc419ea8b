package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vncsmyrnk/pollvote/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg, code string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeError maps engine errors onto HTTP statuses. Unknown errors are logged
// and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeMessage(w, status, domain.ErrInternal.Error(), domain.ErrorCode(err))
		return
	}
	writeMessage(w, status, err.Error(), domain.ErrorCode(err))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrPollNotFound), errors.Is(err, domain.ErrDidNotVote):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidPollID),
		errors.Is(err, domain.ErrInvalidPollInput),
		errors.Is(err, domain.ErrNoOptionsSelected),
		errors.Is(err, domain.ErrMultipleNotAllowed),
		errors.Is(err, domain.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrPollClosed),
		errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrStorageConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrResultsHidden), errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
