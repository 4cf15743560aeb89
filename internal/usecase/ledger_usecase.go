package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/iho/hausledger/internal/domain"
)

// LedgerUseCase derives account balances and ledger histories from
// postings. It is read-only; callers needing a consistent snapshot across
// reads must arrange one at the repository layer.
type LedgerUseCase struct {
	accountRepo AccountRepository
	journalRepo JournalRepository
	postingRepo PostingRepository
	cache       Cache
	cacheTTL    time.Duration
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	postingRepo PostingRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		postingRepo: postingRepo,
	}
}

// WithCache caches current-balance reads. Historical asOf reads bypass
// the cache; writers invalidate affected accounts through the same cache.
func (uc *LedgerUseCase) WithCache(cache Cache, ttl time.Duration) *LedgerUseCase {
	if ttl <= 0 {
		ttl = DefaultBalanceCacheTTL
	}

	uc.cache = cache
	uc.cacheTTL = ttl

	return uc
}

// LedgerLine is one posting joined with its entry's context. Exactly one
// of Debit and Credit is set.
type LedgerLine struct {
	Date           time.Time
	Debit          *domain.Money
	Credit         *domain.Money
	Description    string
	Reference      string
	Memo           string
	JournalEntryID domain.JournalEntryID
}

// LedgerLineWithBalance is a ledger line carrying the running balance
// after applying it.
type LedgerLineWithBalance struct {
	LedgerLine

	Balance domain.Money
}

// GetBalance folds an account's postings up to asOf (unbounded when nil)
// into a signed balance using the account type's balance-effect rule.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, accountID domain.AccountID, asOf *time.Time) (domain.Money, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return domain.Money{}, err
	}

	if asOf == nil {
		if cached, ok := uc.cachedBalance(ctx, accountID); ok {
			return cached, nil
		}
	}

	postings, err := uc.postingRepo.ListByAccount(ctx, accountID, domain.DateRange{End: asOf})
	if err != nil {
		return domain.Money{}, err
	}

	balance := domain.ZeroMoney(domain.DefaultCurrency)

	for _, p := range postings {
		amount, err := domain.NewMoney(p.Amount, domain.DefaultCurrency)
		if err != nil {
			return domain.Money{}, err
		}

		balance, err = balance.Add(account.Type.BalanceEffect(p.Side, amount))
		if err != nil {
			return domain.Money{}, err
		}
	}

	if asOf == nil {
		uc.storeBalance(ctx, accountID, balance)
	}

	return balance, nil
}

func (uc *LedgerUseCase) cachedBalance(ctx context.Context, accountID domain.AccountID) (domain.Money, bool) {
	if uc.cache == nil {
		return domain.Money{}, false
	}

	raw, ok, err := uc.cache.Get(ctx, balanceCacheKey(accountID))
	if err != nil || !ok {
		return domain.Money{}, false
	}

	var balance domain.Money
	if err := json.Unmarshal([]byte(raw), &balance); err != nil {
		return domain.Money{}, false
	}

	return balance, true
}

func (uc *LedgerUseCase) storeBalance(ctx context.Context, accountID domain.AccountID, balance domain.Money) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(balance)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, balanceCacheKey(accountID), string(raw), uc.cacheTTL); err != nil {
		slog.Warn("balance cache write failed", "error", err, "account_id", accountID.String())
	}
}

// GetAccountLedger returns an account's postings joined with their parent
// entries, in posting order.
func (uc *LedgerUseCase) GetAccountLedger(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]LedgerLine, error) {
	postings, err := uc.postingRepo.ListByAccount(ctx, accountID, dateRange)
	if err != nil {
		return nil, err
	}

	lines := make([]LedgerLine, 0, len(postings))

	for _, p := range postings {
		entry, err := uc.journalRepo.GetByID(ctx, p.JournalEntryID)
		if err != nil {
			// An orphaned posting cannot happen through validated writes;
			// skip rather than fail the whole ledger.
			if domain.IsNotFound(err) {
				continue
			}

			return nil, err
		}

		amount, err := domain.NewMoney(p.Amount, domain.DefaultCurrency)
		if err != nil {
			return nil, err
		}

		line := LedgerLine{
			Date:           entry.Date,
			Description:    entry.Description,
			Reference:      entry.Reference,
			Memo:           p.Memo,
			JournalEntryID: p.JournalEntryID,
		}

		if p.Side == domain.Debit {
			line.Debit = &amount
		} else {
			line.Credit = &amount
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// GetAccountLedgerWithRunningBalance is GetAccountLedger with the
// balance-effect rule folded cumulatively across the lines.
func (uc *LedgerUseCase) GetAccountLedgerWithRunningBalance(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]LedgerLineWithBalance, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.GetAccountLedger(ctx, accountID, dateRange)
	if err != nil {
		return nil, err
	}

	running := domain.ZeroMoney(domain.DefaultCurrency)
	withBalance := make([]LedgerLineWithBalance, 0, len(lines))

	for _, line := range lines {
		side := domain.Debit
		amount := line.Debit

		if amount == nil {
			side = domain.Credit
			amount = line.Credit
		}

		running, err = running.Add(account.Type.BalanceEffect(side, *amount))
		if err != nil {
			return nil, err
		}

		withBalance = append(withBalance, LedgerLineWithBalance{LedgerLine: line, Balance: running})
	}

	return withBalance, nil
}
