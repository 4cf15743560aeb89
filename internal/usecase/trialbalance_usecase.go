package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/hausledger/internal/domain"
)

// TrialBalanceUseCase aggregates every active account's balance into a
// balanced two-column report.
type TrialBalanceUseCase struct {
	accountRepo AccountRepository
	ledger      *LedgerUseCase
}

// NewTrialBalanceUseCase creates a new TrialBalanceUseCase.
func NewTrialBalanceUseCase(accountRepo AccountRepository, ledger *LedgerUseCase) *TrialBalanceUseCase {
	return &TrialBalanceUseCase{accountRepo: accountRepo, ledger: ledger}
}

// TrialBalanceRow is one account's contribution to the report. Exactly one
// of DebitBalance and CreditBalance is set.
type TrialBalanceRow struct {
	Account       domain.Account
	DebitBalance  *domain.Money
	CreditBalance *domain.Money
}

// TrialBalance is the complete report as of a date. IsBalanced holds for
// any ledger state reachable through validated entry creation and
// reversal; false signals data corruption, not a business condition.
type TrialBalance struct {
	AsOf         time.Time
	Rows         []TrialBalanceRow
	TotalDebits  domain.Money
	TotalCredits domain.Money
	IsBalanced   bool
}

// Generate computes the trial balance as of a date. Zero-balance accounts
// are omitted. A positive balance lands in the column of the account's
// normal side; a negative balance lands in the opposite column as its
// absolute value, so an account running against its normal side still
// feeds the correct aggregate.
func (uc *TrialBalanceUseCase) Generate(ctx context.Context, asOf time.Time) (*TrialBalance, error) {
	accounts, err := uc.accountRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	totalDebits := domain.ZeroMoney(domain.DefaultCurrency)
	totalCredits := domain.ZeroMoney(domain.DefaultCurrency)

	var rows []TrialBalanceRow

	for _, account := range accounts {
		balance, err := uc.ledger.GetBalance(ctx, account.ID, &asOf)
		if err != nil {
			return nil, err
		}

		if balance.IsZero() {
			continue
		}

		row := TrialBalanceRow{Account: *account}

		debitSide := account.Type.DebitNormal()
		if balance.IsNegative() {
			balance = balance.Abs()
			debitSide = !debitSide
		}

		if debitSide {
			row.DebitBalance = &balance

			if totalDebits, err = totalDebits.Add(balance); err != nil {
				return nil, err
			}
		} else {
			row.CreditBalance = &balance

			if totalCredits, err = totalCredits.Add(balance); err != nil {
				return nil, err
			}
		}

		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Account.Code < rows[j].Account.Code
	})

	return &TrialBalance{
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  totalDebits,
		TotalCredits: totalCredits,
		IsBalanced:   totalDebits.Equal(totalCredits),
	}, nil
}
