package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	TrialBalance(ctx context.Context, periodID string) (*domain.TrialBalance, error)
	GeneralLedger(ctx context.Context, filter domain.GeneralLedgerFilter) ([]domain.GeneralLedgerRow, error)
	CheckConsistency(ctx context.Context) (domain.LedgerTotals, error)
}

// ReportHandler serves read-only ledger reports.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// TrialBalance reports a period; without period_id the latest period is used.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	tb, err := h.reportUC.TrialBalance(r.Context(), r.URL.Query().Get("period_id"))
	if err != nil {
		writeDomainError(w, "failed to build trial balance", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(tb))
}

// GeneralLedger lists posted lines with running balances.
func (h *ReportHandler) GeneralLedger(w http.ResponseWriter, r *http.Request) {
	var filter domain.GeneralLedgerFilter

	if accountID := r.URL.Query().Get("account_id"); accountID != "" {
		filter.AccountID = &accountID
	}

	var err error
	if filter.FromDate, err = parseDateQuery(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	if filter.ToDate, err = parseDateQuery(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}

	rows, err := h.reportUC.GeneralLedger(r.Context(), filter)
	if err != nil {
		writeDomainError(w, "failed to build general ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.GeneralLedgerFromDomain(rows))
}

// Consistency reports ledger-wide posted totals. An imbalance answers 422
// with the totals in the body.
func (h *ReportHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	totals, err := h.reportUC.CheckConsistency(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, dto.ConsistencyFromDomain(totals, true))
	case errors.Is(err, domain.ErrConsistencyViolation):
		writeJSON(w, http.StatusUnprocessableEntity, dto.ConsistencyFromDomain(totals, false))
	default:
		writeDomainError(w, "failed to check consistency", err)
	}
}
