package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// ActorHeader names the caller recorded on audit entries and journals.
const ActorHeader = "X-Actor"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes err with the status of its error class.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	resp := dto.ErrorResponse{
		Error:   message,
		Message: err.Error(),
		Class:   errorClass(err),
	}

	var lineErr *domain.LineError
	if errors.As(err, &lineErr) {
		resp.LineNumber = lineErr.LineNumber
	}

	writeJSON(w, mapDomainError(err), resp)
}

// mapDomainError maps domain error classes to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrIntegrityViolation):
		return http.StatusConflict
	case errors.Is(err, domain.ErrConsistencyViolation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrStateConflict):
		return "state_conflict"
	case errors.Is(err, domain.ErrIntegrityViolation):
		return "integrity_violation"
	case errors.Is(err, domain.ErrConsistencyViolation):
		return "consistency_violation"
	default:
		return ""
	}
}

// decodeRequest decodes a JSON body into req and runs its validation tags.
// It writes the 400 response itself and reports whether the caller should go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := dto.Validate(req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed", err.Error())
		return false
	}
	return true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// actor returns the caller named in the X-Actor header, or "" so the use case
// applies its default.
func actor(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(ActorHeader))
}

// runMutation runs fn through retrier when one is configured. Whole
// operations are retried, each attempt in a fresh transaction.
func runMutation(ctx context.Context, retrier usecase.Retrier, fn func() error) error {
	if retrier == nil {
		return fn()
	}
	return retrier.Retry(ctx, fn)
}
