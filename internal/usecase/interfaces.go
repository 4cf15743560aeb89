package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	GetByCode(ctx context.Context, code string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	ListActive(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error)
	Deactivate(ctx context.Context, id domain.AccountID) error
}

// JournalRepository defines data access for journal entry headers.
type JournalRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.JournalEntry) error
	GetByID(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntry, error)
	// GetByIDTx reads inside an open transaction, used by reversal to load
	// the original entry atomically with the writes that follow.
	GetByIDTx(ctx context.Context, tx Transaction, id domain.JournalEntryID) (*domain.JournalEntry, error)
	List(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.JournalEntry, error)
	ListByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	MarkReversed(ctx context.Context, tx Transaction, id, reversedByID domain.JournalEntryID) error
}

// PostingRepository defines data access for posting lines.
type PostingRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, postings []*domain.Posting) error
	ListByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) ([]domain.Posting, error)
	ListByJournalEntryTx(ctx context.Context, tx Transaction, entryID domain.JournalEntryID) ([]domain.Posting, error)
	ListByAccount(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]domain.Posting, error)
}

// AllocationRepository defines data access for cost allocations.
type AllocationRepository interface {
	Create(ctx context.Context, tx Transaction, allocation *domain.CostAllocation) error
	CreateItems(ctx context.Context, tx Transaction, items []*domain.AllocationItem) error
	GetByID(ctx context.Context, id domain.AllocationID) (*domain.CostAllocation, error)
	GetByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, error)
	ListItems(ctx context.Context, allocationID domain.AllocationID) ([]domain.AllocationItem, error)
}

// UnitRepository defines data access for units.
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id domain.UnitID) (*domain.Unit, error)
	GetByUnitNumber(ctx context.Context, unitNumber string) (*domain.Unit, error)
	List(ctx context.Context) ([]*domain.Unit, error)
	TotalShares(ctx context.Context) (decimal.Decimal, error)
	Update(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache is a TTL key-value store for derived read models.
type Cache interface {
	// Get returns the value and whether the key was present. A missing
	// key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
