package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDivisionByZero is returned by Money.Div for a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// FieldError describes one validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ValidationError carries the full list of validation failures for a
// rejected write. It is produced from a ValidationResult, never thrown for
// expected input problems mid-validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}

	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Message
	}

	return "validation failed: " + strings.Join(msgs, "; ")
}

// BalanceError reports a journal entry whose debits do not equal credits.
type BalanceError struct {
	Debits  string
	Credits string
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("entry does not balance: debits=%s, credits=%s", e.Debits, e.Credits)
}

// CurrencyMismatchError reports arithmetic between different currencies.
type CurrencyMismatchError struct {
	Expected string
	Actual   string
}

func (e *CurrencyMismatchError) Error() string {
	return fmt.Sprintf("currency mismatch: expected %s, got %s", e.Expected, e.Actual)
}

// InvalidAmountError reports a string that does not parse as a decimal.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount format: %q", e.Value)
}

// EntityNotFoundError reports a lookup that found nothing where existence
// was required.
type EntityNotFoundError struct {
	Entity string
	ID     string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// NotFound creates an EntityNotFoundError for the given entity kind.
func NotFound(entity string, id fmt.Stringer) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: id.String()}
}

// IsNotFound reports whether err is an EntityNotFoundError.
func IsNotFound(err error) bool {
	var nf *EntityNotFoundError

	return errors.As(err, &nf)
}

// AllocationError reports an unknown strategy or a calculation-time
// invariant violation (e.g. fixed amounts not summing to the total).
type AllocationError struct {
	Reason string
}

func (e *AllocationError) Error() string {
	return "allocation failed: " + e.Reason
}
