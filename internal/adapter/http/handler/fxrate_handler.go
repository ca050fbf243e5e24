package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// FxRateService defines the behavior needed by FxRateHandler.
type FxRateService interface {
	CreateFxRate(ctx context.Context, input usecase.CreateFxRateInput) (*domain.FxRate, error)
	LatestRate(ctx context.Context, from, to string, asOf time.Time) (*domain.FxRate, error)
	GetFxRate(ctx context.Context, id string) (*domain.FxRate, error)
	ListFxRates(ctx context.Context, from, to string, limit, offset int) ([]*domain.FxRate, error)
}

// FxRateHandler handles exchange rate HTTP requests.
type FxRateHandler struct {
	rateUC  FxRateService
	retrier usecase.Retrier
	now     func() time.Time
}

// NewFxRateHandler creates a new FxRateHandler. retrier may be nil.
func NewFxRateHandler(rateUC FxRateService, retrier usecase.Retrier) *FxRateHandler {
	return &FxRateHandler{rateUC: rateUC, retrier: retrier, now: time.Now}
}

// Create records a rate.
func (h *FxRateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateFxRateRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	input, err := req.ToUseCaseInput(actor(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var rate *domain.FxRate
	err = runMutation(r.Context(), h.retrier, func() error {
		var err error
		rate, err = h.rateUC.CreateFxRate(r.Context(), input)
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to create fx rate", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.FxRateFromDomain(rate))
}

// Get retrieves a rate by ID.
func (h *FxRateHandler) Get(w http.ResponseWriter, r *http.Request) {
	rate, err := h.rateUC.GetFxRate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get fx rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FxRateFromDomain(rate))
}

// Latest returns the rate for from/to in effect on as_of (default today).
func (h *FxRateHandler) Latest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, to := q.Get("from"), q.Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to are required", "")
		return
	}

	asOf, err := parseDateQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	if asOf == nil {
		today := domain.DateOnly(h.now())
		asOf = &today
	}

	rate, err := h.rateUC.LatestRate(r.Context(), from, to, *asOf)
	if err != nil {
		writeDomainError(w, "failed to get latest fx rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FxRateFromDomain(rate))
}

// List lists rates, optionally filtered by currency.
func (h *FxRateHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)
	q := r.URL.Query()

	rates, err := h.rateUC.ListFxRates(r.Context(), q.Get("from"), q.Get("to"), limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list fx rates", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.FxRateResponse]{
		Items:  dto.FxRatesFromDomain(rates),
		Limit:  limit,
		Offset: offset,
	})
}
