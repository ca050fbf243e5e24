package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	CreateJournal(ctx context.Context, input usecase.CreateJournalInput) (*domain.Journal, error)
	AddJournalLine(ctx context.Context, input usecase.AddJournalLineInput) (*domain.JournalLine, error)
	GetJournal(ctx context.Context, id string) (*domain.Journal, error)
	ListJournals(ctx context.Context, filter usecase.JournalFilter) ([]*domain.Journal, error)
}

// JournalPoster posts draft journals.
type JournalPoster interface {
	PostJournal(ctx context.Context, journalID, actor string) (*domain.Journal, error)
}

// JournalHandler handles journal HTTP requests.
type JournalHandler struct {
	journalUC JournalService
	postingUC JournalPoster
	retrier   usecase.Retrier
}

// NewJournalHandler creates a new JournalHandler. retrier may be nil.
func NewJournalHandler(journalUC JournalService, postingUC JournalPoster, retrier usecase.Retrier) *JournalHandler {
	return &JournalHandler{journalUC: journalUC, postingUC: postingUC, retrier: retrier}
}

// Create creates a draft journal.
func (h *JournalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateJournalRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	input, err := req.ToUseCaseInput(actor(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var journal *domain.Journal
	err = runMutation(r.Context(), h.retrier, func() error {
		var err error
		journal, err = h.journalUC.CreateJournal(r.Context(), input)
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to create journal", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.JournalFromDomain(journal))
}

// AddLine appends a line to a draft journal.
func (h *JournalHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	var req dto.AddJournalLineRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	input := req.ToUseCaseInput(chi.URLParam(r, "id"), actor(r))

	var line *domain.JournalLine
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		line, err = h.journalUC.AddJournalLine(r.Context(), input)
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to add journal line", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.JournalLineFromDomain(line))
}

// Post posts a draft journal.
func (h *JournalHandler) Post(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var journal *domain.Journal
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		journal, err = h.postingUC.PostJournal(r.Context(), id, actor(r))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to post journal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// Get retrieves a journal with its lines.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	journal, err := h.journalUC.GetJournal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get journal", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}

// List lists journals, optionally by period and status.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := usecase.JournalFilter{
		PeriodID: q.Get("period_id"),
		Status:   domain.JournalStatus(q.Get("status")),
		Limit:    parseIntQuery(r, "limit", 50),
		Offset:   parseIntQuery(r, "offset", 0),
	}

	journals, err := h.journalUC.ListJournals(r.Context(), filter)
	if err != nil {
		writeDomainError(w, "failed to list journals", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.JournalResponse]{
		Items:  dto.JournalsFromDomain(journals),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}
