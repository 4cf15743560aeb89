package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input domain.NewAccount) (*domain.Account, error)
	GetAccount(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	GetAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	UpdateAccount(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, id domain.AccountID) error
	SeedChart(ctx context.Context) (int, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, err, "failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), domain.AccountID(id))
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}
	if account == nil {
		writeError(w, http.StatusNotFound, "account not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByCode retrieves an account by its chart code.
func (h *AccountHandler) GetByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	account, err := h.accountUC.GetAccountByCode(r.Context(), code)
	if err != nil {
		writeDomainError(w, err, "failed to get account")
		return
	}
	if account == nil {
		writeError(w, http.StatusNotFound, "account not found", code)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists accounts, optionally filtered by type.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		accounts []*domain.Account
		err      error
	)

	if accountType := r.URL.Query().Get("type"); accountType != "" {
		accounts, err = h.accountUC.ListAccountsByType(r.Context(), domain.AccountType(accountType))
	} else {
		accounts, err = h.accountUC.ListAccounts(r.Context())
	}
	if err != nil {
		writeDomainError(w, err, "failed to list accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    len(accounts),
	})
}

// Update applies a partial update to an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), domain.AccountID(id), req.ToDomain())
	if err != nil {
		writeDomainError(w, err, "failed to update account")
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// Deactivate marks an account inactive. Accounts are never deleted.
func (h *AccountHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.accountUC.DeactivateAccount(r.Context(), domain.AccountID(id)); err != nil {
		writeDomainError(w, err, "failed to deactivate account")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deactivated", "id": id})
}

// SeedChart creates any missing accounts from the default chart.
func (h *AccountHandler) SeedChart(w http.ResponseWriter, r *http.Request) {
	created, err := h.accountUC.SeedChart(r.Context())
	if err != nil {
		writeDomainError(w, err, "failed to seed chart of accounts")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"created": created})
}
