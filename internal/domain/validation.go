package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validation error codes.
const (
	CodeEmptyPostings        = "EMPTY_POSTINGS"
	CodeInsufficientPostings = "INSUFFICIENT_POSTINGS"
	CodeNegativeAmount       = "NEGATIVE_AMOUNT"
	CodeInvalidAmount        = "INVALID_AMOUNT"
	CodeInvalidType          = "INVALID_TYPE"
	CodeUnbalancedEntry      = "UNBALANCED_ENTRY"
	CodeEmptyCode            = "EMPTY_CODE"
	CodeInvalidCodeFormat    = "INVALID_CODE_FORMAT"
	CodeDuplicateCode        = "DUPLICATE_CODE"
	CodeEmptyName            = "EMPTY_NAME"
	CodeEmptyDescription     = "EMPTY_DESCRIPTION"
	CodeEmptyDate            = "EMPTY_DATE"
	CodeEmptyCreator         = "EMPTY_CREATOR"
	CodeFutureDate           = "FUTURE_DATE"
)

// ValidationResult is the outcome of a structural or balance check.
// Expected input problems land in Errors; nothing here panics or returns a
// Go error for bad user input.
type ValidationResult struct {
	Errors []FieldError
	Valid  bool
}

// Err converts a failed result into a *ValidationError, or nil when valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}

	return &ValidationError{Errors: r.Errors}
}

func validResult(errs []FieldError) ValidationResult {
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// Account codes follow the 4-digit SKR 04 convention.
var accountCodePattern = regexp.MustCompile(`^\d{4}$`)

// ValidateEntryBalance checks that a posting set is structurally sound and
// that debits equal credits. Errors accumulate; only the empty and
// single-posting cases return early.
func ValidateEntryBalance(postings []NewPosting) ValidationResult {
	if len(postings) == 0 {
		return validResult([]FieldError{{
			Field:   "postings",
			Message: "at least one posting is required",
			Code:    CodeEmptyPostings,
		}})
	}

	if len(postings) < 2 {
		return validResult([]FieldError{{
			Field:   "postings",
			Message: "at least two postings (one debit and one credit) are required",
			Code:    CodeInsufficientPostings,
		}})
	}

	var errs []FieldError

	totalDebits := ZeroMoney(DefaultCurrency)
	totalCredits := ZeroMoney(DefaultCurrency)

	for _, p := range postings {
		amount, err := NewMoney(p.Amount, DefaultCurrency)
		if err != nil {
			errs = append(errs, FieldError{
				Field:   "amount",
				Message: fmt.Sprintf("invalid amount format: %s", p.Amount),
				Code:    CodeInvalidAmount,
			})

			continue
		}

		if amount.IsNegative() {
			errs = append(errs, FieldError{
				Field:   "amount",
				Message: fmt.Sprintf("posting amount cannot be negative: %s", p.Amount),
				Code:    CodeNegativeAmount,
			})

			continue
		}

		if amount.IsZero() {
			errs = append(errs, FieldError{
				Field:   "amount",
				Message: "posting amount must be positive",
				Code:    CodeInvalidAmount,
			})

			continue
		}

		switch p.Side {
		case Debit:
			totalDebits, _ = totalDebits.Add(amount)
		case Credit:
			totalCredits, _ = totalCredits.Add(amount)
		default:
			errs = append(errs, FieldError{
				Field:   "side",
				Message: fmt.Sprintf("invalid posting side: %s", p.Side),
				Code:    CodeInvalidType,
			})
		}
	}

	if !totalDebits.Equal(totalCredits) {
		errs = append(errs, FieldError{
			Field:   "balance",
			Message: fmt.Sprintf("entry does not balance: debits=%s, credits=%s", totalDebits, totalCredits),
			Code:    CodeUnbalancedEntry,
		})
	}

	return validResult(errs)
}

// ValidateAccountCode checks the 4-digit account code format.
func ValidateAccountCode(code string) ValidationResult {
	if strings.TrimSpace(code) == "" {
		return validResult([]FieldError{{
			Field:   "code",
			Message: "account code is required",
			Code:    CodeEmptyCode,
		}})
	}

	var errs []FieldError

	if !accountCodePattern.MatchString(code) {
		errs = append(errs, FieldError{
			Field:   "code",
			Message: "account code must be a 4-digit number",
			Code:    CodeInvalidCodeFormat,
		})
	}

	return validResult(errs)
}

// ValidateJournalEntry checks entry fields and merges in the posting
// balance check.
func ValidateJournalEntry(entry NewJournalEntry, postings []NewPosting) ValidationResult {
	var errs []FieldError

	if strings.TrimSpace(entry.Description) == "" {
		errs = append(errs, FieldError{
			Field:   "description",
			Message: "description is required",
			Code:    CodeEmptyDescription,
		})
	}

	if entry.Date.IsZero() {
		errs = append(errs, FieldError{
			Field:   "date",
			Message: "date is required",
			Code:    CodeEmptyDate,
		})
	}

	if strings.TrimSpace(entry.CreatedBy) == "" {
		errs = append(errs, FieldError{
			Field:   "createdBy",
			Message: "creator identifier is required",
			Code:    CodeEmptyCreator,
		})
	}

	errs = append(errs, ValidateEntryBalance(postings).Errors...)

	return validResult(errs)
}

// ValidateNotFutureDate rejects dates strictly after now. Callers opt in;
// it is not applied to every write.
func ValidateNotFutureDate(date time.Time) ValidationResult {
	var errs []FieldError

	if date.After(time.Now()) {
		errs = append(errs, FieldError{
			Field:   "date",
			Message: "date cannot be in the future",
			Code:    CodeFutureDate,
		})
	}

	return validResult(errs)
}
