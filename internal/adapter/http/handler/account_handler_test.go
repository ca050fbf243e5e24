package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxledger/internal/adapter/http/dto"
	"github.com/iho/fxledger/internal/domain"
	"github.com/iho/fxledger/internal/usecase"
)

type accountServiceStub struct {
	createFn    func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	setParentFn func(ctx context.Context, accountID string, parentID *string, actor string) (*domain.Account, error)
	getFn       func(ctx context.Context, id string) (*domain.Account, error)
	listFn      func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) SetAccountParent(ctx context.Context, accountID string, parentID *string, actor string) (*domain.Account, error) {
	return s.setParentFn(ctx, accountID, parentID, actor)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{ID: "acc-1", Code: input.Code, Name: input.Name, AccountType: input.AccountType, Currency: "USD", Flags: input.Flags, IsActive: true}, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code:        "1100",
		Name:        "Bank USD",
		AccountType: "Asset",
		Currency:    "USD",
		IsBank:      true,
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	req.Header.Set(ActorHeader, " treasurer ")
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Code != "1100" || !captured.Flags.IsBank || captured.Actor != "treasurer" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || !resp.IsBank || resp.AccountType != "Asset" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Create_ValidationFailure(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatalf("use case must not run for an invalid request")
			return nil, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString(`{"code":"1100","name":"Bank","account_type":"Revenue","currency":"USD"}`))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "validation failed" || resp.Message == "" {
		t.Fatalf("unexpected error body %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_Duplicate(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateAccountCode
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: "Asset", Currency: "PKR"})
	rec := httptest.NewRecorder()
	handler.Create(rec, httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_SetParent_Cycle(t *testing.T) {
	var gotParent *string
	handler := NewAccountHandler(&accountServiceStub{
		setParentFn: func(ctx context.Context, accountID string, parentID *string, actor string) (*domain.Account, error) {
			gotParent = parentID
			return nil, domain.ErrAccountHierarchyCycle
		},
	}, nil)

	req := httptest.NewRequest(http.MethodPut, "/accounts/root/parent", bytes.NewBufferString(`{"parent_id":"leaf"}`))
	req = setChiURLParam(req, "id", "root")
	rec := httptest.NewRecorder()

	handler.SetParent(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a cycle, got %d", rec.Code)
	}
	if gotParent == nil || *gotParent != "leaf" {
		t.Fatalf("expected parent leaf, got %v", gotParent)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.NewNotFound(domain.ResourceAccount, id)
		},
	}, nil)

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List_Success(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 5 || input.Offset != 10 {
				t.Fatalf("unexpected pagination: %+v", input)
			}
			return []*domain.Account{{ID: "a"}, {ID: "b"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=10", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListResponse[*dto.AccountResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(resp.Items))
	}
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}
