package usecase

import (
	"context"
	"time"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/infrastructure/metrics"
)

// JournalUseCase handles journal entry business logic. Entries are never
// edited or deleted in place; reversal is the only correction mechanism.
type JournalUseCase struct {
	txManager   TransactionManager
	journalRepo JournalRepository
	postingRepo PostingRepository
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
}

// NewJournalUseCase creates a new JournalUseCase.
func NewJournalUseCase(
	txManager TransactionManager,
	journalRepo JournalRepository,
	postingRepo PostingRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *JournalUseCase {
	return &JournalUseCase{
		txManager:   txManager,
		journalRepo: journalRepo,
		postingRepo: postingRepo,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// WithCache makes entry writers invalidate cached balances for the
// accounts they touch.
func (uc *JournalUseCase) WithCache(cache Cache) *JournalUseCase {
	uc.cache = cache

	return uc
}

// CreateEntryInput represents input for creating a journal entry.
type CreateEntryInput struct {
	Entry    domain.NewJournalEntry
	Postings []domain.NewPosting
}

// CreateEntry validates and persists an entry with its postings as one
// atomic unit. Validation failures return a *domain.ValidationError with
// the full error list; nothing is written on failure.
func (uc *JournalUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.JournalEntry, error) {
	if err := domain.ValidateJournalEntry(input.Entry, input.Postings).Err(); err != nil {
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
		Date:        input.Entry.Date,
		Description: input.Entry.Description,
		Reference:   input.Entry.Reference,
		CreatedBy:   input.Entry.CreatedBy,
		CreatedAt:   now,
	}

	if err := uc.journalRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.postingRepo.CreateBatch(txCtx, tx, uc.buildPostings(entry.ID, input.Postings, now)); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	accountIDs := make([]domain.AccountID, 0, len(input.Postings))
	for _, p := range input.Postings {
		accountIDs = append(accountIDs, p.AccountID)
	}
	invalidateBalanceCache(ctx, uc.cache, accountIDs)

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.Inc()
	}

	return entry, nil
}

// ReverseEntryInput represents input for reversing a journal entry.
type ReverseEntryInput struct {
	Date      *time.Time
	EntryID   domain.JournalEntryID
	Reason    string
	CreatedBy string
}

// ReverseEntry creates a mirror entry with every posting side flipped and
// marks the original as reversed, all within one transaction. An entry
// that is already reversed may be reversed again; each reversal starts a
// new correction chain.
func (uc *JournalUseCase) ReverseEntry(ctx context.Context, input ReverseEntryInput) (*domain.JournalEntry, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	original, err := uc.journalRepo.GetByIDTx(txCtx, tx, input.EntryID)
	if err != nil {
		return nil, err
	}

	originalPostings, err := uc.postingRepo.ListByJournalEntryTx(txCtx, tx, input.EntryID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	date := now
	if input.Date != nil {
		date = *input.Date
	}

	createdBy := input.CreatedBy
	if createdBy == "" {
		createdBy = original.CreatedBy
	}

	originalRef := original.Reference
	if originalRef == "" {
		originalRef = original.ID.String()
	}

	reversal := &domain.JournalEntry{
		ID:           domain.JournalEntryID(uc.idGen.Generate()),
		Date:         date,
		Description:  "REVERSAL: " + input.Reason,
		Reference:    "REV-" + originalRef,
		CreatedBy:    createdBy,
		ReversalOfID: &original.ID,
		CreatedAt:    now,
	}

	if err := uc.journalRepo.Create(txCtx, tx, reversal); err != nil {
		return nil, err
	}

	mirrored := make([]*domain.Posting, 0, len(originalPostings))
	for _, p := range originalPostings {
		mirrored = append(mirrored, &domain.Posting{
			ID:             domain.PostingID(uc.idGen.Generate()),
			JournalEntryID: reversal.ID,
			AccountID:      p.AccountID,
			Amount:         p.Amount,
			Side:           p.Side.Opposite(),
			Memo:           "Reversal of " + originalRef,
			CreatedAt:      now,
		})
	}

	if err := uc.postingRepo.CreateBatch(txCtx, tx, mirrored); err != nil {
		return nil, err
	}

	if err := uc.journalRepo.MarkReversed(txCtx, tx, original.ID, reversal.ID); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	accountIDs := make([]domain.AccountID, 0, len(originalPostings))
	for _, p := range originalPostings {
		accountIDs = append(accountIDs, p.AccountID)
	}
	invalidateBalanceCache(ctx, uc.cache, accountIDs)

	if uc.metrics != nil {
		uc.metrics.EntriesReversed.Inc()
	}

	return reversal, nil
}

// GetEntryWithPostings returns an entry joined with its postings, or
// (nil, nil) when the entry does not exist: absence is an expected lookup
// outcome, not an error.
func (uc *JournalUseCase) GetEntryWithPostings(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntryWithPostings, error) {
	entry, err := uc.journalRepo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	postings, err := uc.postingRepo.ListByJournalEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	return &domain.JournalEntryWithPostings{JournalEntry: *entry, Postings: postings}, nil
}

// ListEntries lists journal entries with pagination.
func (uc *JournalUseCase) ListEntries(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	return uc.journalRepo.List(ctx, clampOptions(opts))
}

// ListEntriesByDateRange lists journal entries between two dates.
func (uc *JournalUseCase) ListEntriesByDateRange(ctx context.Context, start, end time.Time) ([]*domain.JournalEntry, error) {
	return uc.journalRepo.ListByDateRange(ctx, start, end)
}

// ListEntriesByAccount lists entries that post to an account.
func (uc *JournalUseCase) ListEntriesByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	return uc.journalRepo.ListByAccount(ctx, accountID, clampOptions(opts))
}

func (uc *JournalUseCase) buildPostings(entryID domain.JournalEntryID, postings []domain.NewPosting, now time.Time) []*domain.Posting {
	built := make([]*domain.Posting, 0, len(postings))
	for _, p := range postings {
		built = append(built, &domain.Posting{
			ID:             domain.PostingID(uc.idGen.Generate()),
			JournalEntryID: entryID,
			AccountID:      p.AccountID,
			Amount:         p.Amount,
			Side:           p.Side,
			Memo:           p.Memo,
			CreatedAt:      now,
		})
	}

	return built
}

func clampOptions(opts domain.QueryOptions) domain.QueryOptions {
	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}

	if opts.Limit > MaxPageSize {
		opts.Limit = MaxPageSize
	}

	if opts.Offset < 0 {
		opts.Offset = 0
	}

	return opts
}
