package dto

import (
	"time"

	"github.com/iho/hausledger/internal/domain"
)

// DateFormat is the wire format for transaction dates.
const DateFormat = "2006-01-02"

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentID *string `json:"parent_id,omitempty"`
}

// ToDomain converts to the domain creation input.
func (r *CreateAccountRequest) ToDomain() domain.NewAccount {
	input := domain.NewAccount{
		Code: r.Code,
		Name: r.Name,
		Type: domain.AccountType(r.Type),
	}
	if r.ParentID != nil {
		id := domain.AccountID(*r.ParentID)
		input.ParentID = &id
	}

	return input
}

// UpdateAccountRequest represents a partial account update. Omitted fields
// are left unchanged.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parent_id,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ToDomain converts to the domain update input.
func (r *UpdateAccountRequest) ToDomain() domain.AccountUpdate {
	update := domain.AccountUpdate{
		Name:     r.Name,
		IsActive: r.IsActive,
	}
	if r.ParentID != nil {
		id := domain.AccountID(*r.ParentID)
		update.ParentID = &id
	}

	return update
}

// PostingRequest is one debit or credit line in an entry request. The
// amount stays a string all the way to the domain.
type PostingRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
	Side      string `json:"side"`
	Memo      string `json:"memo,omitempty"`
}

// CreateEntryRequest represents a request to create a journal entry.
type CreateEntryRequest struct {
	Date        string           `json:"date"`
	Description string           `json:"description"`
	Reference   string           `json:"reference,omitempty"`
	CreatedBy   string           `json:"created_by"`
	Postings    []PostingRequest `json:"postings"`
}

// ToDomain converts to the domain entry and posting inputs. An unparsable
// date comes back as the zero time so validation reports it as missing.
func (r *CreateEntryRequest) ToDomain() (domain.NewJournalEntry, []domain.NewPosting) {
	date, _ := time.Parse(DateFormat, r.Date)

	entry := domain.NewJournalEntry{
		Date:        date,
		Description: r.Description,
		Reference:   r.Reference,
		CreatedBy:   r.CreatedBy,
	}

	postings := make([]domain.NewPosting, len(r.Postings))
	for i, p := range r.Postings {
		postings[i] = domain.NewPosting{
			AccountID: domain.AccountID(p.AccountID),
			Amount:    p.Amount,
			Side:      domain.PostingSide(p.Side),
			Memo:      p.Memo,
		}
	}

	return entry, postings
}

// ReverseEntryRequest represents a request to reverse a journal entry.
type ReverseEntryRequest struct {
	Date      string `json:"date,omitempty"`
	Reason    string `json:"reason,omitempty"`
	CreatedBy string `json:"created_by"`
}

// CreateUnitRequest represents a request to create a unit.
type CreateUnitRequest struct {
	UnitNumber      string `json:"unit_number"`
	OwnerID         string `json:"owner_id,omitempty"`
	OwnershipShares string `json:"ownership_shares"`
}

// UpdateUnitRequest represents a partial unit update.
type UpdateUnitRequest struct {
	UnitNumber      *string `json:"unit_number,omitempty"`
	OwnerID         *string `json:"owner_id,omitempty"`
	OwnershipShares *string `json:"ownership_shares,omitempty"`
}

// AllocationUnitRequest carries per-unit strategy input. UsageValue feeds
// by_usage; FixedAmount feeds specific_units.
type AllocationUnitRequest struct {
	UnitID      string  `json:"unit_id"`
	UsageValue  *string `json:"usage_value,omitempty"`
	FixedAmount *string `json:"fixed_amount,omitempty"`
}

// AllocationOptionsRequest tunes rounding and remainder placement.
type AllocationOptionsRequest struct {
	Precision        int32  `json:"precision,omitempty"`
	ApplyRemainderTo string `json:"apply_remainder_to,omitempty"`
}

// CreateAllocationRequest represents a request to calculate an allocation
// and book it as a journal entry.
type CreateAllocationRequest struct {
	Date                string                    `json:"date"`
	StrategyType        string                    `json:"strategy_type"`
	Description         string                    `json:"description"`
	Reference           string                    `json:"reference,omitempty"`
	CreatedBy           string                    `json:"created_by"`
	TotalAmount         string                    `json:"total_amount"`
	Currency            string                    `json:"currency,omitempty"`
	ExpenseAccountID    string                    `json:"expense_account_id"`
	ReceivableAccountID string                    `json:"receivable_account_id"`
	Units               []AllocationUnitRequest   `json:"units,omitempty"`
	Options             *AllocationOptionsRequest `json:"options,omitempty"`
}

// PreviewAllocationRequest represents a dry-run allocation calculation.
type PreviewAllocationRequest struct {
	StrategyType string                    `json:"strategy_type"`
	TotalAmount  string                    `json:"total_amount"`
	Currency     string                    `json:"currency,omitempty"`
	Units        []AllocationUnitRequest   `json:"units,omitempty"`
	Options      *AllocationOptionsRequest `json:"options,omitempty"`
}
