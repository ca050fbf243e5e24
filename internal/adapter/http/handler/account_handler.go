package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	SetAccountParent(ctx context.Context, accountID string, parentID *string, actor string) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	retrier   usecase.Retrier
}

// NewAccountHandler creates a new AccountHandler. retrier may be nil.
func NewAccountHandler(accountUC AccountService, retrier usecase.Retrier) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, retrier: retrier}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var account *domain.Account
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		account, err = h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput(actor(r)))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// SetParent moves an account under another one, or detaches it.
func (h *AccountHandler) SetParent(w http.ResponseWriter, r *http.Request) {
	var req dto.SetAccountParentRequest
	if !decodeRequest(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")

	var account *domain.Account
	err := runMutation(r.Context(), h.retrier, func() error {
		var err error
		account, err = h.accountUC.SetAccountParent(r.Context(), id, req.ParentID, actor(r))
		return err
	})
	if err != nil {
		writeDomainError(w, "failed to set account parent", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts ordered by code.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListResponse[*dto.AccountResponse]{
		Items:  dto.AccountsFromDomain(accounts),
		Limit:  limit,
		Offset: offset,
	})
}
