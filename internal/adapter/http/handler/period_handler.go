package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// PeriodService defines the behavior needed by PeriodHandler.
type PeriodService interface {
	CreatePeriod(ctx context.Context, input usecase.CreatePeriodInput) (*domain.Period, error)
	ClosePeriod(ctx context.Context, periodID, actor string) (*domain.Period, error)
	GetPeriod(ctx context.Context, id string) (*domain.Period, error)
	LatestPeriod(ctx context.Context) (*domain.Period, error)
	ListPeriods(ctx context.Context, limit, offset int) ([]*domain.Period, error)
}

// RateLocker locks the rates of a period.
type RateLocker interface {
	LockPeriodRates(ctx context.Context, periodID, actor string) (int64, error)
}

// PeriodHandler handles period HTTP requests.
type PeriodHandler struct {
	periodUC PeriodService
	rateUC   RateLocker
	retrier  usecase.Retrier
}

// NewPeriodHandler creates a new PeriodHandler. retrier may be nil.
func NewPeriodHandler(periodUC PeriodService, rateUC RateLocker, retrier usecase.Retrier) *PeriodHandler {
	return &PeriodHandler{periodUC: periodUC, rateUC: rateUC, retrier: retrier}
}

// Create opens the next period.
func (h *PeriodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePeriodRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var period *domain.Period
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		period, err = h.periodUC.CreatePeriod(r.Context(), req.ToUseCaseInput(actor(r)))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to create period", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.PeriodFromDomain(period))
}

// Get retrieves a period by ID.
func (h *PeriodHandler) Get(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodUC.GetPeriod(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get period", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(period))
}

// Latest returns the chronologically latest period.
func (h *PeriodHandler) Latest(w http.ResponseWriter, r *http.Request) {
	period, err := h.periodUC.LatestPeriod(r.Context())
	if err != nil {
		writeDomainError(w, "failed to get latest period", err)
		return
	}
	if period == nil {
		writeError(w, http.StatusNotFound, "no periods yet", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(period))
}

// List lists periods, newest first.
func (h *PeriodHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	periods, err := h.periodUC.ListPeriods(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list periods", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.PeriodResponse]{
		Items:  dto.PeriodsFromDomain(periods),
		Limit:  limit,
		Offset: offset,
	})
}

// Close locks a period once its drafts are gone and its rates are locked.
func (h *PeriodHandler) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var period *domain.Period
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		period, err = h.periodUC.ClosePeriod(r.Context(), id, actor(r))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to close period", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PeriodFromDomain(period))
}

// LockRates locks every rate effective inside the period.
func (h *PeriodHandler) LockRates(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var locked int64
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		locked, err = h.rateUC.LockPeriodRates(r.Context(), id, actor(r))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to lock period rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LockRatesResponse{PeriodID: id, Locked: locked})
}
