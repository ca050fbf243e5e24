package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"period not found", domain.NewNotFound(domain.ResourcePeriod, "p-1"), http.StatusNotFound},
		{"invalid line amounts", domain.ErrInvalidLineAmounts, http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", domain.ErrInvalidCurrency), http.StatusBadRequest},
		{"already posted", domain.ErrAlreadyPosted, http.StatusConflict},
		{"locked period", domain.ErrLockedPeriod, http.StatusConflict},
		{"duplicate reference", domain.ErrDuplicateReference, http.StatusConflict},
		{"non sequential period", domain.ErrNonSequentialPeriod, http.StatusConflict},
		{"unbalanced", &domain.UnbalancedError{Err: domain.ErrUnbalanced}, http.StatusUnprocessableEntity},
		{"drafts remain", &domain.RemainingError{Count: 2, Err: domain.ErrDraftJournalsRemain}, http.StatusUnprocessableEntity},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainErrorCarriesLineNumber(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, "failed to post journal", &domain.LineError{LineNumber: 3, Err: domain.ErrUnbalancedLine})

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.LineNumber != 3 || resp.Class != "consistency_violation" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestParseDateQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/reports?from=2024-01-31&to=31-01-2024", nil)

	from, err := parseDateQuery(req, "from")
	if err != nil || from == nil || from.Day() != 31 || from.Location() != time.UTC {
		t.Fatalf("unexpected from=%v err=%v", from, err)
	}
	if _, err := parseDateQuery(req, "to"); err == nil {
		t.Fatalf("expected error for malformed date")
	}
	if missing, err := parseDateQuery(req, "as_of"); missing != nil || err != nil {
		t.Fatalf("expected nil for missing date, got %v %v", missing, err)
	}
}

type retrierStub struct {
	attempts int
}

func (s *retrierStub) Retry(ctx context.Context, operation func() error) error {
	var err error
	for s.attempts < 3 {
		s.attempts++
		if err = operation(); err == nil {
			return nil
		}
	}
	return err
}

func TestRunMutation(t *testing.T) {
	calls := 0
	if err := runMutation(context.Background(), nil, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Fatalf("expected a single direct call, got calls=%d err=%v", calls, err)
	}

	retrier := &retrierStub{}
	calls = 0
	err := runMutation(context.Background(), retrier, func() error {
		calls++
		if calls < 2 {
			return errors.New("serialization failure")
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Fatalf("expected success on second attempt, got calls=%d err=%v", calls, err)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
