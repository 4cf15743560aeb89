package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	GetBalance(ctx context.Context, accountID domain.AccountID, asOf *time.Time) (domain.Money, error)
	GetAccountLedger(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]usecase.LedgerLine, error)
	GetAccountLedgerWithRunningBalance(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]usecase.LedgerLineWithBalance, error)
}

// TrialBalanceService defines the behavior needed for the trial balance
// report.
type TrialBalanceService interface {
	Generate(ctx context.Context, asOf time.Time) (*usecase.TrialBalance, error)
}

// LedgerHandler handles balance, ledger and trial balance requests.
type LedgerHandler struct {
	ledgerUC       LedgerService
	trialBalanceUC TrialBalanceService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, trialBalanceUC TrialBalanceService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, trialBalanceUC: trialBalanceUC}
}

// GetBalance returns one account's balance, optionally as of a date.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	asOf := parseDateQuery(r, "as_of")

	balance, err := h.ledgerUC.GetBalance(r.Context(), domain.AccountID(id), asOf)
	if err != nil {
		writeDomainError(w, err, "failed to get balance")
		return
	}

	resp := dto.BalanceResponse{
		AccountID: id,
		Balance:   balance.String(),
		Currency:  balance.Currency(),
	}
	if asOf != nil {
		resp.AsOf = asOf.Format(dto.DateFormat)
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetLedger returns an account's posting history. With ?running=true each
// line carries the balance after applying it.
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dateRange := domain.DateRange{
		Start: parseDateQuery(r, "from"),
		End:   parseDateQuery(r, "to"),
	}

	var (
		lines []dto.LedgerLineResponse
		err   error
	)

	if r.URL.Query().Get("running") == "true" {
		var withBalance []usecase.LedgerLineWithBalance
		withBalance, err = h.ledgerUC.GetAccountLedgerWithRunningBalance(r.Context(), domain.AccountID(id), dateRange)
		lines = dto.LedgerLinesWithBalanceFromDomain(withBalance)
	} else {
		var plain []usecase.LedgerLine
		plain, err = h.ledgerUC.GetAccountLedger(r.Context(), domain.AccountID(id), dateRange)
		lines = dto.LedgerLinesFromDomain(plain)
	}
	if err != nil {
		writeDomainError(w, err, "failed to get ledger")
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerResponse{
		AccountID: id,
		Lines:     lines,
	})
}

// GetTrialBalance returns the trial balance as of a date, defaulting to
// today.
func (h *LedgerHandler) GetTrialBalance(w http.ResponseWriter, r *http.Request) {
	asOf := time.Now().UTC()
	if parsed := parseDateQuery(r, "as_of"); parsed != nil {
		asOf = *parsed
	}

	report, err := h.trialBalanceUC.Generate(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, err, "failed to generate trial balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromDomain(report))
}
