package usecase

import (
	"context"
	"time"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/domain/allocation"
	"github.com/iho/hausledger/internal/infrastructure/metrics"
)

// AllocationUseCase distributes shared costs across units and books the
// result as a journal entry plus an itemized allocation record.
type AllocationUseCase struct {
	txManager      TransactionManager
	journalRepo    JournalRepository
	postingRepo    PostingRepository
	allocationRepo AllocationRepository
	idGen          IDGenerator
	registry       *allocation.Registry
	cache          Cache
	metrics        *metrics.Metrics
}

// NewAllocationUseCase creates a new AllocationUseCase with the built-in
// strategies registered.
func NewAllocationUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	postingRepo PostingRepository,
	allocationRepo AllocationRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *AllocationUseCase {
	return &AllocationUseCase{
		txManager:      txManager,
		journalRepo:    journalRepo,
		postingRepo:    postingRepo,
		allocationRepo: allocationRepo,
		idGen:          idGen,
		registry:       allocation.NewRegistry(),
		metrics:        metrics,
	}
}

// WithCache makes allocation bookings invalidate cached balances for the
// expense and receivable accounts.
func (uc *AllocationUseCase) WithCache(cache Cache) *AllocationUseCase {
	uc.cache = cache

	return uc
}

// RegisterStrategy adds a custom strategy to the registry.
func (uc *AllocationUseCase) RegisterStrategy(s allocation.Strategy) {
	uc.registry.Register(s)
}

// Strategies returns all registered strategies.
func (uc *AllocationUseCase) Strategies() []allocation.Strategy {
	return uc.registry.All()
}

// Strategy looks up a strategy by type.
func (uc *AllocationUseCase) Strategy(strategyType string) (allocation.Strategy, bool) {
	return uc.registry.Get(strategyType)
}

// Calculate runs a strategy without persisting anything.
func (uc *AllocationUseCase) Calculate(strategyType string, total domain.Money, units []allocation.UnitInput, opts allocation.Options) (*allocation.Result, error) {
	strategy, ok := uc.registry.Get(strategyType)
	if !ok {
		return nil, &domain.AllocationError{Reason: "unknown allocation strategy: " + strategyType}
	}

	return strategy.Calculate(total, units, opts)
}

// CreateAllocationEntryInput represents input for booking an allocation.
type CreateAllocationEntryInput struct {
	Date                time.Time
	StrategyType        string
	Description         string
	Reference           string
	CreatedBy           string
	Total               domain.Money
	Units               []allocation.UnitInput
	Options             allocation.Options
	ExpenseAccountID    domain.AccountID
	ReceivableAccountID domain.AccountID
}

// CreateAllocationEntry calculates the allocation and persists, in one
// transaction: the journal entry (one debit to the expense account for the
// full total, one credit to the receivable account per unit, which keeps
// the entry balanced by construction), the allocation header and its
// items. Unknown strategies and calculation failures surface before any
// write happens.
func (uc *AllocationUseCase) CreateAllocationEntry(ctx context.Context, input CreateAllocationEntryInput) (*domain.JournalEntry, error) {
	strategy, ok := uc.registry.Get(input.StrategyType)
	if !ok {
		return nil, &domain.AllocationError{Reason: "unknown allocation strategy: " + input.StrategyType}
	}

	calc, err := strategy.Calculate(input.Total, input.Units, input.Options)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	entry := &domain.JournalEntry{
		ID:          domain.JournalEntryID(uc.idGen.Generate()),
		Date:        input.Date,
		Description: input.Description,
		Reference:   input.Reference,
		CreatedBy:   input.CreatedBy,
		CreatedAt:   now,
	}

	if err := uc.journalRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	postings := make([]*domain.Posting, 0, len(calc.Items)+1)
	postings = append(postings, &domain.Posting{
		ID:             domain.PostingID(uc.idGen.Generate()),
		JournalEntryID: entry.ID,
		AccountID:      input.ExpenseAccountID,
		Amount:         input.Total.String(),
		Side:           domain.Debit,
		Memo:           "Allocation using " + strategy.Name(),
		CreatedAt:      now,
	})

	for _, item := range calc.Items {
		postings = append(postings, &domain.Posting{
			ID:             domain.PostingID(uc.idGen.Generate()),
			JournalEntryID: entry.ID,
			AccountID:      input.ReceivableAccountID,
			Amount:         item.Allocated.String(),
			Side:           domain.Credit,
			Memo:           "Unit " + item.UnitIdentifier,
			CreatedAt:      now,
		})
	}

	if err := uc.postingRepo.CreateBatch(txCtx, tx, postings); err != nil {
		return nil, err
	}

	metadata := map[string]any{
		"strategyName": strategy.Name(),
		"description":  strategy.Description(),
	}
	if calc.RemainderUnitID != "" {
		metadata["appliedRemainderTo"] = calc.RemainderUnitID.String()
	}

	record := &domain.CostAllocation{
		ID:             domain.AllocationID(uc.idGen.Generate()),
		JournalEntryID: entry.ID,
		StrategyType:   input.StrategyType,
		TotalAmount:    input.Total.String(),
		Currency:       input.Total.Currency(),
		Metadata:       metadata,
		CreatedAt:      now,
	}

	if err := uc.allocationRepo.Create(txCtx, tx, record); err != nil {
		return nil, err
	}

	items := make([]*domain.AllocationItem, 0, len(calc.Items))
	for _, item := range calc.Items {
		built := &domain.AllocationItem{
			ID:              domain.AllocationItemID(uc.idGen.Generate()),
			AllocationID:    record.ID,
			UnitID:          item.UnitID,
			UnitIdentifier:  item.UnitIdentifier,
			AllocatedAmount: item.Allocated.String(),
			CreatedAt:       now,
		}

		if item.ShareValue != nil {
			built.ShareValue = item.ShareValue.String()
		}

		if item.UsageValue != nil {
			built.UsageValue = item.UsageValue.String()
		}

		items = append(items, built)
	}

	if err := uc.allocationRepo.CreateItems(txCtx, tx, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	invalidateBalanceCache(ctx, uc.cache, []domain.AccountID{input.ExpenseAccountID, input.ReceivableAccountID})

	if uc.metrics != nil {
		uc.metrics.AllocationsCreated.Inc()
	}

	return entry, nil
}

// GetAllocationForEntry returns the allocation header and items booked
// for a journal entry, or (nil, nil, nil) when the entry carries none.
func (uc *AllocationUseCase) GetAllocationForEntry(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, []domain.AllocationItem, error) {
	record, err := uc.allocationRepo.GetByJournalEntry(ctx, entryID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil, nil
		}

		return nil, nil, err
	}

	items, err := uc.allocationRepo.ListItems(ctx, record.ID)
	if err != nil {
		return nil, nil, err
	}

	return record, items, nil
}
