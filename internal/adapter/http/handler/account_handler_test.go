package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
)

type accountServiceStub struct {
	createFn     func(ctx context.Context, input domain.NewAccount) (*domain.Account, error)
	getFn        func(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	getByCodeFn  func(ctx context.Context, code string) (*domain.Account, error)
	listFn       func(ctx context.Context) ([]*domain.Account, error)
	listByTypeFn func(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	updateFn     func(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error)
	deactivateFn func(ctx context.Context, id domain.AccountID) error
	seedFn       func(ctx context.Context) (int, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input domain.NewAccount) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.getByCodeFn(ctx, code)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *accountServiceStub) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	return s.listByTypeFn(ctx, accountType)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error) {
	return s.updateFn(ctx, id, update)
}

func (s *accountServiceStub) DeactivateAccount(ctx context.Context, id domain.AccountID) error {
	return s.deactivateFn(ctx, id)
}

func (s *accountServiceStub) SeedChart(ctx context.Context) (int, error) {
	return s.seedFn(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Code:     "6200",
		Name:     "Versicherungen",
		Type:     domain.AccountTypeExpense,
		IsActive: true,
	}

	var captured domain.NewAccount
	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input domain.NewAccount) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "6200",
		Name: "Versicherungen",
		Type: "expense",
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Code != "6200" || captured.Name != "Versicherungen" || captured.Type != domain.AccountTypeExpense {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || resp.Code != "6200" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input domain.NewAccount) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_ValidationErrorCarriesFields(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input domain.NewAccount) (*domain.Account, error) {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{
				{Field: "code", Message: "account code must be 4 digits", Code: "INVALID_CODE_FORMAT"},
			}}
		},
	})

	body, _ := json.Marshal(dto.CreateAccountRequest{Code: "62", Name: "x", Type: "expense"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Fields) != 1 || resp.Fields[0].Code != "INVALID_CODE_FORMAT" {
		t.Fatalf("expected field errors in response, got %+v", resp)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
			return nil, nil
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List_FiltersByType(t *testing.T) {
	var capturedType domain.AccountType
	h := NewAccountHandler(&accountServiceStub{
		listByTypeFn: func(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
			capturedType = accountType
			return []*domain.Account{{ID: "acc-1", Code: "6000", Type: accountType}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts?type=expense", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if capturedType != domain.AccountTypeExpense {
		t.Fatalf("expected type filter to be passed through, got %s", capturedType)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected one account, got %d", resp.Total)
	}
}

func TestAccountHandler_SeedChart(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		seedFn: func(ctx context.Context) (int, error) { return 12, nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/accounts/seed", nil)
	rec := httptest.NewRecorder()

	h.SeedChart(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["created"] != 12 {
		t.Fatalf("expected 12 created, got %d", resp["created"])
	}
}

func TestAccountHandler_Deactivate_ServiceError(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		deactivateFn: func(ctx context.Context, id domain.AccountID) error {
			return errors.New("db error")
		},
	})

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/accounts/acc-1", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	h.Deactivate(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
