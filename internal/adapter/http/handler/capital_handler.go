package handler

import (
	"context"
	"net/http"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// CapitalService defines the behavior needed by CapitalHandler.
type CapitalService interface {
	RecordCapitalMovement(ctx context.Context, input usecase.RecordCapitalMovementInput) (*domain.CapitalMovement, error)
	ListCapitalMovements(ctx context.Context, partnerID string, limit, offset int) ([]*domain.CapitalMovement, error)
}

// CapitalHandler handles partner capital movement requests.
type CapitalHandler struct {
	capitalUC CapitalService
	retrier   usecase.Retrier
}

// NewCapitalHandler creates a new CapitalHandler. retrier may be nil.
func NewCapitalHandler(capitalUC CapitalService, retrier usecase.Retrier) *CapitalHandler {
	return &CapitalHandler{capitalUC: capitalUC, retrier: retrier}
}

// Record records a contribution or draw against a posted journal.
func (h *CapitalHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordCapitalMovementRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	input, err := req.ToUseCaseInput(actor(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var movement *domain.CapitalMovement
	err = runMutation(r.Context(), h.retrier, func() error {
		var err error
		movement, err = h.capitalUC.RecordCapitalMovement(r.Context(), input)
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to record capital movement", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CapitalMovementFromDomain(movement))
}

// List lists a partner's movements, newest first.
func (h *CapitalHandler) List(w http.ResponseWriter, r *http.Request) {
	partnerID := r.URL.Query().Get("partner_id")
	if partnerID == "" {
		writeError(w, http.StatusBadRequest, "partner_id is required", "")
		return
	}
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	movements, err := h.capitalUC.ListCapitalMovements(r.Context(), partnerID, limit, offset)
	if err != nil {
		writeDomainError(w, "failed to list capital movements", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.CapitalMovementResponse]{
		Items:  dto.CapitalMovementsFromDomain(movements),
		Limit:  limit,
		Offset: offset,
	})
}
