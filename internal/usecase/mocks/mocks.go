package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]*domain.Account

	CreateFunc     func(ctx context.Context, account *domain.Account) error
	CreateTxFunc   func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc    func(ctx context.Context, id domain.AccountID) (*domain.Account, error)
	GetByCodeFunc  func(ctx context.Context, code string) (*domain.Account, error)
	ListFunc       func(ctx context.Context) ([]*domain.Account, error)
	ListByTypeFunc func(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error)
	ListActiveFunc func(ctx context.Context) ([]*domain.Account, error)
	UpdateFunc     func(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error)
	DeactivateFunc func(ctx context.Context, id domain.AccountID) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[domain.AccountID]*domain.Account),
	}
}

// Seed inserts accounts directly into the in-memory store.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acc := range accounts {
		m.accounts[acc.ID] = acc
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	return m.Create(ctx, account)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.NotFound("account", id)
}

func (m *MockAccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.Code == code {
			return acc, nil
		}
	}
	return nil, &domain.EntityNotFoundError{Entity: "account", ID: code}
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	return accounts, nil
}

func (m *MockAccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	if m.ListByTypeFunc != nil {
		return m.ListByTypeFunc(ctx, accountType)
	}
	all, _ := m.List(ctx)
	var accounts []*domain.Account
	for _, acc := range all {
		if acc.Type == accountType {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	all, _ := m.List(ctx)
	var accounts []*domain.Account
	for _, acc := range all {
		if acc.IsActive {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, domain.NotFound("account", id)
	}
	if update.Name != nil {
		acc.Name = *update.Name
	}
	if update.ParentID != nil {
		acc.ParentID = update.ParentID
	}
	if update.IsActive != nil {
		acc.IsActive = *update.IsActive
	}
	return acc, nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id domain.AccountID) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.NotFound("account", id)
	}
	acc.IsActive = false
	return nil
}

// MockJournalRepository is a mock implementation of JournalRepository.
type MockJournalRepository struct {
	mu      sync.RWMutex
	entries map[domain.JournalEntryID]*domain.JournalEntry

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error
	GetByIDFunc         func(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntry, error)
	GetByIDTxFunc       func(ctx context.Context, tx usecase.Transaction, id domain.JournalEntryID) (*domain.JournalEntry, error)
	ListFunc            func(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	ListByDateRangeFunc func(ctx context.Context, start, end time.Time) ([]*domain.JournalEntry, error)
	ListByAccountFunc   func(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error)
	MarkReversedFunc    func(ctx context.Context, tx usecase.Transaction, id, reversedByID domain.JournalEntryID) error
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{
		entries: make(map[domain.JournalEntryID]*domain.JournalEntry),
	}
}

func (m *MockJournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockJournalRepository) GetByID(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.NotFound("journal entry", id)
}

func (m *MockJournalRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id domain.JournalEntryID) (*domain.JournalEntry, error) {
	if m.GetByIDTxFunc != nil {
		return m.GetByIDTxFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockJournalRepository) List(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, opts)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.JournalEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date.Before(entries[j].Date) })
	return entries, nil
}

func (m *MockJournalRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.JournalEntry, error) {
	if m.ListByDateRangeFunc != nil {
		return m.ListByDateRangeFunc(ctx, start, end)
	}
	all, _ := m.List(ctx, domain.QueryOptions{})
	var entries []*domain.JournalEntry
	for _, e := range all {
		if !e.Date.Before(start) && !e.Date.After(end) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockJournalRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, opts)
	}
	return nil, nil
}

func (m *MockJournalRepository) MarkReversed(ctx context.Context, tx usecase.Transaction, id, reversedByID domain.JournalEntryID) error {
	if m.MarkReversedFunc != nil {
		return m.MarkReversedFunc(ctx, tx, id, reversedByID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return domain.NotFound("journal entry", id)
	}
	e.IsReversed = true
	e.ReversedByID = &reversedByID
	return nil
}

// MockPostingRepository is a mock implementation of PostingRepository.
type MockPostingRepository struct {
	mu       sync.RWMutex
	postings []domain.Posting

	CreateBatchFunc          func(ctx context.Context, tx usecase.Transaction, postings []*domain.Posting) error
	ListByJournalEntryFunc   func(ctx context.Context, entryID domain.JournalEntryID) ([]domain.Posting, error)
	ListByJournalEntryTxFunc func(ctx context.Context, tx usecase.Transaction, entryID domain.JournalEntryID) ([]domain.Posting, error)
	ListByAccountFunc        func(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]domain.Posting, error)
}

func NewMockPostingRepository() *MockPostingRepository {
	return &MockPostingRepository{}
}

// Seed inserts postings directly into the in-memory store.
func (m *MockPostingRepository) Seed(postings ...domain.Posting) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postings = append(m.postings, postings...)
}

func (m *MockPostingRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, postings []*domain.Posting) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, postings)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range postings {
		m.postings = append(m.postings, *p)
	}
	return nil
}

func (m *MockPostingRepository) ListByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) ([]domain.Posting, error) {
	if m.ListByJournalEntryFunc != nil {
		return m.ListByJournalEntryFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var postings []domain.Posting
	for _, p := range m.postings {
		if p.JournalEntryID == entryID {
			postings = append(postings, p)
		}
	}
	return postings, nil
}

func (m *MockPostingRepository) ListByJournalEntryTx(ctx context.Context, tx usecase.Transaction, entryID domain.JournalEntryID) ([]domain.Posting, error) {
	if m.ListByJournalEntryTxFunc != nil {
		return m.ListByJournalEntryTxFunc(ctx, tx, entryID)
	}
	return m.ListByJournalEntry(ctx, entryID)
}

func (m *MockPostingRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]domain.Posting, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, dateRange)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var postings []domain.Posting
	for _, p := range m.postings {
		if p.AccountID == accountID {
			postings = append(postings, p)
		}
	}
	return postings, nil
}

// MockAllocationRepository is a mock implementation of AllocationRepository.
type MockAllocationRepository struct {
	mu          sync.RWMutex
	allocations map[domain.AllocationID]*domain.CostAllocation
	items       map[domain.AllocationID][]domain.AllocationItem

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, allocation *domain.CostAllocation) error
	CreateItemsFunc       func(ctx context.Context, tx usecase.Transaction, items []*domain.AllocationItem) error
	GetByIDFunc           func(ctx context.Context, id domain.AllocationID) (*domain.CostAllocation, error)
	GetByJournalEntryFunc func(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, error)
	ListItemsFunc         func(ctx context.Context, allocationID domain.AllocationID) ([]domain.AllocationItem, error)
}

func NewMockAllocationRepository() *MockAllocationRepository {
	return &MockAllocationRepository{
		allocations: make(map[domain.AllocationID]*domain.CostAllocation),
		items:       make(map[domain.AllocationID][]domain.AllocationItem),
	}
}

func (m *MockAllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.CostAllocation) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, allocation)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocations[allocation.ID] = allocation
	return nil
}

func (m *MockAllocationRepository) CreateItems(ctx context.Context, tx usecase.Transaction, items []*domain.AllocationItem) error {
	if m.CreateItemsFunc != nil {
		return m.CreateItemsFunc(ctx, tx, items)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, item := range items {
		m.items[item.AllocationID] = append(m.items[item.AllocationID], *item)
	}
	return nil
}

func (m *MockAllocationRepository) GetByID(ctx context.Context, id domain.AllocationID) (*domain.CostAllocation, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.allocations[id]; ok {
		return a, nil
	}
	return nil, domain.NotFound("allocation", id)
}

func (m *MockAllocationRepository) GetByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, error) {
	if m.GetByJournalEntryFunc != nil {
		return m.GetByJournalEntryFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.allocations {
		if a.JournalEntryID == entryID {
			return a, nil
		}
	}
	return nil, domain.NotFound("allocation", entryID)
}

func (m *MockAllocationRepository) ListItems(ctx context.Context, allocationID domain.AllocationID) ([]domain.AllocationItem, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, allocationID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.items[allocationID], nil
}

// MockUnitRepository is a mock implementation of UnitRepository.
type MockUnitRepository struct {
	mu    sync.RWMutex
	units map[domain.UnitID]*domain.Unit

	CreateFunc          func(ctx context.Context, unit *domain.Unit) error
	GetByIDFunc         func(ctx context.Context, id domain.UnitID) (*domain.Unit, error)
	GetByUnitNumberFunc func(ctx context.Context, unitNumber string) (*domain.Unit, error)
	ListFunc            func(ctx context.Context) ([]*domain.Unit, error)
	TotalSharesFunc     func(ctx context.Context) (decimal.Decimal, error)
	UpdateFunc          func(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error)
}

func NewMockUnitRepository() *MockUnitRepository {
	return &MockUnitRepository{
		units: make(map[domain.UnitID]*domain.Unit),
	}
}

// Seed inserts units directly into the in-memory store.
func (m *MockUnitRepository) Seed(units ...*domain.Unit) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range units {
		m.units[u.ID] = u
	}
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, unit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[unit.ID] = unit
	return nil
}

func (m *MockUnitRepository) GetByID(ctx context.Context, id domain.UnitID) (*domain.Unit, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.units[id]; ok {
		return u, nil
	}
	return nil, domain.NotFound("unit", id)
}

func (m *MockUnitRepository) GetByUnitNumber(ctx context.Context, unitNumber string) (*domain.Unit, error) {
	if m.GetByUnitNumberFunc != nil {
		return m.GetByUnitNumberFunc(ctx, unitNumber)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.units {
		if u.UnitNumber == unitNumber {
			return u, nil
		}
	}
	return nil, &domain.EntityNotFoundError{Entity: "unit", ID: unitNumber}
}

func (m *MockUnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	units := make([]*domain.Unit, 0, len(m.units))
	for _, u := range m.units {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool { return units[i].UnitNumber < units[j].UnitNumber })
	return units, nil
}

func (m *MockUnitRepository) TotalShares(ctx context.Context) (decimal.Decimal, error) {
	if m.TotalSharesFunc != nil {
		return m.TotalSharesFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := decimal.Zero
	for _, u := range m.units {
		total = total.Add(u.OwnershipShares)
	}
	return total, nil
}

func (m *MockUnitRepository) Update(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.units[id]
	if !ok {
		return nil, domain.NotFound("unit", id)
	}
	if update.UnitNumber != nil {
		u.UnitNumber = *update.UnitNumber
	}
	if update.OwnerID != nil {
		u.OwnerID = *update.OwnerID
	}
	if update.OwnershipShares != nil {
		u.OwnershipShares = *update.OwnershipShares
	}
	return u, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockCache is an in-memory mock implementation of Cache. It ignores
// TTLs and records every key passed to Delete.
type MockCache struct {
	mu      sync.Mutex
	values  map[string]string
	Deleted []string

	GetFunc    func(ctx context.Context, key string) (string, bool, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, keys ...string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		values: make(map[string]string),
	}
}

// Seed inserts values directly into the in-memory store.
func (m *MockCache) Seed(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MockCache) Get(ctx context.Context, key string) (string, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, keys...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	m.Deleted = append(m.Deleted, keys...)
	return nil
}
