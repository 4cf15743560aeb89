package dto

import (
	"time"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/domain/allocation"
	"github.com/iho/hausledger/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	ParentID  *string   `json:"parent_id,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	resp := &AccountResponse{
		ID:        a.ID.String(),
		Code:      a.Code,
		Name:      a.Name,
		Type:      string(a.Type),
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt,
	}
	if a.ParentID != nil {
		id := a.ParentID.String()
		resp.ParentID = &id
	}

	return resp
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps an account listing.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int                `json:"total"`
}

// PostingResponse represents one posting line in API responses.
type PostingResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Amount    string    `json:"amount"`
	Side      string    `json:"side"`
	Memo      string    `json:"memo,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PostingFromDomain converts a domain posting to a response.
func PostingFromDomain(p domain.Posting) PostingResponse {
	return PostingResponse{
		ID:        p.ID.String(),
		AccountID: p.AccountID.String(),
		Amount:    p.Amount,
		Side:      string(p.Side),
		Memo:      p.Memo,
		CreatedAt: p.CreatedAt,
	}
}

// EntryResponse represents a journal entry header in API responses.
type EntryResponse struct {
	ID           string    `json:"id"`
	Date         string    `json:"date"`
	Description  string    `json:"description"`
	Reference    string    `json:"reference,omitempty"`
	CreatedBy    string    `json:"created_by"`
	IsReversed   bool      `json:"is_reversed"`
	ReversedByID *string   `json:"reversed_by_id,omitempty"`
	ReversalOfID *string   `json:"reversal_of_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	resp := &EntryResponse{
		ID:          e.ID.String(),
		Date:        e.Date.Format(DateFormat),
		Description: e.Description,
		Reference:   e.Reference,
		CreatedBy:   e.CreatedBy,
		IsReversed:  e.IsReversed,
		CreatedAt:   e.CreatedAt,
	}
	if e.ReversedByID != nil {
		id := e.ReversedByID.String()
		resp.ReversedByID = &id
	}
	if e.ReversalOfID != nil {
		id := e.ReversalOfID.String()
		resp.ReversalOfID = &id
	}

	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// EntryWithPostingsResponse is an entry joined with its posting lines.
type EntryWithPostingsResponse struct {
	EntryResponse

	Postings []PostingResponse `json:"postings"`
}

// EntryWithPostingsFromDomain converts an entry with postings to a response.
func EntryWithPostingsFromDomain(e *domain.JournalEntryWithPostings) *EntryWithPostingsResponse {
	postings := make([]PostingResponse, len(e.Postings))
	for i, p := range e.Postings {
		postings[i] = PostingFromDomain(p)
	}

	return &EntryWithPostingsResponse{
		EntryResponse: *EntryFromDomain(&e.JournalEntry),
		Postings:      postings,
	}
}

// ListEntriesResponse wraps an entry listing.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int              `json:"total"`
}

// BalanceResponse represents an account balance as of a date.
type BalanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   string `json:"balance"`
	Currency  string `json:"currency"`
	AsOf      string `json:"as_of,omitempty"`
}

// LedgerLineResponse is one posting with its entry context. Exactly one of
// Debit and Credit is set.
type LedgerLineResponse struct {
	Date           string  `json:"date"`
	JournalEntryID string  `json:"journal_entry_id"`
	Description    string  `json:"description"`
	Reference      string  `json:"reference,omitempty"`
	Memo           string  `json:"memo,omitempty"`
	Debit          *string `json:"debit,omitempty"`
	Credit         *string `json:"credit,omitempty"`
	Balance        *string `json:"balance,omitempty"`
}

// LedgerLinesFromDomain converts plain ledger lines to responses.
func LedgerLinesFromDomain(lines []usecase.LedgerLine) []LedgerLineResponse {
	result := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		result[i] = ledgerLineFromDomain(l)
	}
	return result
}

// LedgerLinesWithBalanceFromDomain converts running-balance lines to
// responses.
func LedgerLinesWithBalanceFromDomain(lines []usecase.LedgerLineWithBalance) []LedgerLineResponse {
	result := make([]LedgerLineResponse, len(lines))
	for i, l := range lines {
		result[i] = ledgerLineFromDomain(l.LedgerLine)
		balance := l.Balance.String()
		result[i].Balance = &balance
	}
	return result
}

func ledgerLineFromDomain(l usecase.LedgerLine) LedgerLineResponse {
	resp := LedgerLineResponse{
		Date:           l.Date.Format(DateFormat),
		JournalEntryID: l.JournalEntryID.String(),
		Description:    l.Description,
		Reference:      l.Reference,
		Memo:           l.Memo,
	}
	if l.Debit != nil {
		amount := l.Debit.String()
		resp.Debit = &amount
	}
	if l.Credit != nil {
		amount := l.Credit.String()
		resp.Credit = &amount
	}

	return resp
}

// LedgerResponse wraps an account ledger listing.
type LedgerResponse struct {
	AccountID string               `json:"account_id"`
	Lines     []LedgerLineResponse `json:"lines"`
}

// TrialBalanceRowResponse is one account's row in the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string  `json:"account_id"`
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	AccountType string  `json:"account_type"`
	Debit       *string `json:"debit,omitempty"`
	Credit      *string `json:"credit,omitempty"`
}

// TrialBalanceResponse represents the trial balance report.
type TrialBalanceResponse struct {
	AsOf         string                    `json:"as_of"`
	Rows         []TrialBalanceRowResponse `json:"rows"`
	TotalDebits  string                    `json:"total_debits"`
	TotalCredits string                    `json:"total_credits"`
	IsBalanced   bool                      `json:"is_balanced"`
}

// TrialBalanceFromDomain converts the report to a response.
func TrialBalanceFromDomain(tb *usecase.TrialBalance) *TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(tb.Rows))
	for i, row := range tb.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountID:   row.Account.ID.String(),
			AccountCode: row.Account.Code,
			AccountName: row.Account.Name,
			AccountType: string(row.Account.Type),
		}
		if row.DebitBalance != nil {
			amount := row.DebitBalance.String()
			rows[i].Debit = &amount
		}
		if row.CreditBalance != nil {
			amount := row.CreditBalance.String()
			rows[i].Credit = &amount
		}
	}

	return &TrialBalanceResponse{
		AsOf:         tb.AsOf.Format(DateFormat),
		Rows:         rows,
		TotalDebits:  tb.TotalDebits.String(),
		TotalCredits: tb.TotalCredits.String(),
		IsBalanced:   tb.IsBalanced,
	}
}

// UnitResponse represents a unit in API responses.
type UnitResponse struct {
	ID              string    `json:"id"`
	UnitNumber      string    `json:"unit_number"`
	OwnerID         string    `json:"owner_id,omitempty"`
	OwnershipShares string    `json:"ownership_shares"`
	CreatedAt       time.Time `json:"created_at"`
}

// UnitFromDomain converts a domain unit to a response.
func UnitFromDomain(u *domain.Unit) *UnitResponse {
	return &UnitResponse{
		ID:              u.ID.String(),
		UnitNumber:      u.UnitNumber,
		OwnerID:         u.OwnerID,
		OwnershipShares: u.OwnershipShares.String(),
		CreatedAt:       u.CreatedAt,
	}
}

// UnitsFromDomain converts domain units to responses.
func UnitsFromDomain(units []*domain.Unit) []*UnitResponse {
	result := make([]*UnitResponse, len(units))
	for i, u := range units {
		result[i] = UnitFromDomain(u)
	}
	return result
}

// ListUnitsResponse wraps a unit listing with the share total.
type ListUnitsResponse struct {
	Units       []*UnitResponse `json:"units"`
	Total       int             `json:"total"`
	TotalShares string          `json:"total_shares"`
}

// StrategyResponse describes one registered allocation strategy.
type StrategyResponse struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StrategiesFromDomain converts registered strategies to responses.
func StrategiesFromDomain(strategies []allocation.Strategy) []StrategyResponse {
	result := make([]StrategyResponse, len(strategies))
	for i, s := range strategies {
		result[i] = StrategyResponse{
			Type:        s.Type(),
			Name:        s.Name(),
			Description: s.Description(),
		}
	}
	return result
}

// AllocationItemResponse is one unit's share in an allocation result.
type AllocationItemResponse struct {
	UnitID         string  `json:"unit_id"`
	UnitIdentifier string  `json:"unit_identifier"`
	ShareValue     *string `json:"share_value,omitempty"`
	UsageValue     *string `json:"usage_value,omitempty"`
	Amount         string  `json:"amount"`
}

// AllocationPreviewResponse is a dry-run allocation calculation.
type AllocationPreviewResponse struct {
	StrategyType    string                   `json:"strategy_type"`
	TotalAmount     string                   `json:"total_amount"`
	Currency        string                   `json:"currency"`
	Items           []AllocationItemResponse `json:"items"`
	RemainderUnitID string                   `json:"remainder_unit_id,omitempty"`
}

// AllocationPreviewFromResult converts a calculation result to a response.
func AllocationPreviewFromResult(strategyType string, result *allocation.Result) *AllocationPreviewResponse {
	items := make([]AllocationItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = AllocationItemResponse{
			UnitID:         item.UnitID.String(),
			UnitIdentifier: item.UnitIdentifier,
			Amount:         item.Allocated.String(),
		}
		if item.ShareValue != nil {
			v := item.ShareValue.String()
			items[i].ShareValue = &v
		}
		if item.UsageValue != nil {
			v := item.UsageValue.String()
			items[i].UsageValue = &v
		}
	}

	return &AllocationPreviewResponse{
		StrategyType:    strategyType,
		TotalAmount:     result.TotalAmount.String(),
		Currency:        result.TotalAmount.Currency(),
		Items:           items,
		RemainderUnitID: result.RemainderUnitID.String(),
	}
}

// AllocationResponse is a persisted allocation with its items.
type AllocationResponse struct {
	ID             string                   `json:"id"`
	JournalEntryID string                   `json:"journal_entry_id"`
	StrategyType   string                   `json:"strategy_type"`
	TotalAmount    string                   `json:"total_amount"`
	Currency       string                   `json:"currency"`
	Metadata       map[string]any           `json:"metadata,omitempty"`
	Items          []AllocationItemResponse `json:"items"`
	CreatedAt      time.Time                `json:"created_at"`
}

// AllocationFromDomain converts a persisted allocation to a response.
func AllocationFromDomain(a *domain.CostAllocation, items []domain.AllocationItem) *AllocationResponse {
	respItems := make([]AllocationItemResponse, len(items))
	for i, item := range items {
		respItems[i] = AllocationItemResponse{
			UnitID:         item.UnitID.String(),
			UnitIdentifier: item.UnitIdentifier,
			Amount:         item.AllocatedAmount,
		}
		if item.ShareValue != "" {
			v := item.ShareValue
			respItems[i].ShareValue = &v
		}
		if item.UsageValue != "" {
			v := item.UsageValue
			respItems[i].UsageValue = &v
		}
	}

	return &AllocationResponse{
		ID:             a.ID.String(),
		JournalEntryID: a.JournalEntryID.String(),
		StrategyType:   a.StrategyType,
		TotalAmount:    a.TotalAmount,
		Currency:       a.Currency,
		Metadata:       a.Metadata,
		Items:          respItems,
		CreatedAt:      a.CreatedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}
