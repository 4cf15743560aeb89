package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/adapter/http/dto"
	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/domain/allocation"
	"github.com/iho/hausledger/internal/usecase"
)

// AllocationService defines the behavior needed by AllocationHandler.
type AllocationService interface {
	Strategies() []allocation.Strategy
	Calculate(strategyType string, total domain.Money, units []allocation.UnitInput, opts allocation.Options) (*allocation.Result, error)
	CreateAllocationEntry(ctx context.Context, input usecase.CreateAllocationEntryInput) (*domain.JournalEntry, error)
	GetAllocationForEntry(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, []domain.AllocationItem, error)
}

// UnitInputSource supplies registered units as allocation input.
type UnitInputSource interface {
	AllocationInputs(ctx context.Context) ([]allocation.UnitInput, error)
}

// AllocationHandler handles cost allocation HTTP requests.
type AllocationHandler struct {
	allocationUC AllocationService
	units        UnitInputSource
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationUC AllocationService, units UnitInputSource) *AllocationHandler {
	return &AllocationHandler{allocationUC: allocationUC, units: units}
}

// ListStrategies lists the registered allocation strategies.
func (h *AllocationHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"strategies": dto.StrategiesFromDomain(h.allocationUC.Strategies()),
	})
}

// Preview calculates an allocation without persisting anything.
func (h *AllocationHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	total, err := domain.NewMoney(req.TotalAmount, req.Currency)
	if err != nil {
		writeDomainError(w, err, "invalid total amount")
		return
	}

	units, err := h.unitInputs(r.Context(), req.Units, total.Currency())
	if err != nil {
		writeDomainError(w, err, "failed to load units")
		return
	}

	result, err := h.allocationUC.Calculate(req.StrategyType, total, units, allocationOptions(req.Options))
	if err != nil {
		writeDomainError(w, err, "allocation failed")
		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationPreviewFromResult(req.StrategyType, result))
}

// Create calculates an allocation and books it as a journal entry.
func (h *AllocationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAllocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	total, err := domain.NewMoney(req.TotalAmount, req.Currency)
	if err != nil {
		writeDomainError(w, err, "invalid total amount")
		return
	}

	date, err := time.Parse(dto.DateFormat, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	units, err := h.unitInputs(r.Context(), req.Units, total.Currency())
	if err != nil {
		writeDomainError(w, err, "failed to load units")
		return
	}

	entry, err := h.allocationUC.CreateAllocationEntry(r.Context(), usecase.CreateAllocationEntryInput{
		Date:                date,
		StrategyType:        req.StrategyType,
		Description:         req.Description,
		Reference:           req.Reference,
		CreatedBy:           req.CreatedBy,
		Total:               total,
		Units:               units,
		Options:             allocationOptions(req.Options),
		ExpenseAccountID:    domain.AccountID(req.ExpenseAccountID),
		ReceivableAccountID: domain.AccountID(req.ReceivableAccountID),
	})
	if err != nil {
		writeDomainError(w, err, "failed to create allocation")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// GetForEntry returns the allocation behind a journal entry.
func (h *AllocationHandler) GetForEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, items, err := h.allocationUC.GetAllocationForEntry(r.Context(), domain.JournalEntryID(id))
	if err != nil {
		writeDomainError(w, err, "failed to get allocation")
		return
	}
	if record == nil {
		writeError(w, http.StatusNotFound, "allocation not found", id)
		return
	}

	writeJSON(w, http.StatusOK, dto.AllocationFromDomain(record, items))
}

// unitInputs loads the registered units and merges per-unit strategy input
// from the request by unit ID.
func (h *AllocationHandler) unitInputs(ctx context.Context, overrides []dto.AllocationUnitRequest, currency string) ([]allocation.UnitInput, error) {
	units, err := h.units.AllocationInputs(ctx)
	if err != nil {
		return nil, err
	}

	if len(overrides) == 0 {
		return units, nil
	}

	byID := make(map[domain.UnitID]dto.AllocationUnitRequest, len(overrides))
	for _, o := range overrides {
		byID[domain.UnitID(o.UnitID)] = o
	}

	for i, u := range units {
		o, ok := byID[u.UnitID]
		if !ok {
			continue
		}
		if o.UsageValue != nil {
			usage, err := decimal.NewFromString(*o.UsageValue)
			if err != nil {
				return nil, &domain.InvalidAmountError{Value: *o.UsageValue}
			}
			units[i].UsageValue = &usage
		}
		if o.FixedAmount != nil {
			fixed, err := domain.NewMoney(*o.FixedAmount, currency)
			if err != nil {
				return nil, err
			}
			units[i].FixedAmount = &fixed
		}
	}

	return units, nil
}

func allocationOptions(opts *dto.AllocationOptionsRequest) allocation.Options {
	if opts == nil {
		return allocation.Options{}
	}

	return allocation.Options{
		Precision:        opts.Precision,
		ApplyRemainderTo: opts.ApplyRemainderTo,
	}
}
