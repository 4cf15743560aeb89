package domain

import "time"

// AccountType classifies an account and determines its normal balance side.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeIncome    AccountType = "income"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeIncome, AccountTypeExpense:
		return true
	default:
		return false
	}
}

// DebitNormal reports whether debits increase this account type.
// Assets and expenses are debit-normal; liabilities, equity and income are
// credit-normal.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// BalanceEffect returns the signed effect of a posting on an account of
// this type: for debit-normal accounts a debit adds and a credit subtracts,
// inverted for credit-normal accounts. This rule is the single source of
// truth for ledger balances and the trial balance.
func (t AccountType) BalanceEffect(side PostingSide, amount Money) Money {
	if t.DebitNormal() == (side == Debit) {
		return amount
	}

	return amount.Neg()
}

// Account is one row in the chart of accounts. Accounts are never
// hard-deleted, only deactivated.
type Account struct {
	CreatedAt time.Time
	ID        AccountID
	Code      string
	Name      string
	Type      AccountType
	ParentID  *AccountID
	IsActive  bool
}

// NewAccount holds the fields for creating an account.
type NewAccount struct {
	Code     string
	Name     string
	Type     AccountType
	ParentID *AccountID
}

// AccountUpdate is a partial update; nil fields are left unchanged.
type AccountUpdate struct {
	Name     *string
	ParentID *AccountID
	IsActive *bool
}
