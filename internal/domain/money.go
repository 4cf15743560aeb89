package domain

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is assumed when no currency code is given.
const DefaultCurrency = "EUR"

func init() {
	// Monetary division must not lose precision before explicit rounding.
	decimal.DivisionPrecision = 20
}

// RoundingMode selects how Round and Div resolve fractional currency units.
type RoundingMode int

const (
	RoundHalfUp RoundingMode = iota
	RoundDown
	RoundUp
)

// Money is an immutable exact-decimal amount tagged with a currency code.
// All operations return new values; arithmetic between two Money values
// requires matching currencies.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// NewMoney parses a decimal literal into Money. An empty currency defaults
// to DefaultCurrency.
func NewMoney(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, &InvalidAmountError{Value: amount}
	}

	return NewMoneyFromDecimal(d, currency), nil
}

// NewMoneyFromDecimal wraps an already-parsed decimal.
func NewMoneyFromDecimal(d decimal.Decimal, currency string) Money {
	return Money{amount: d, currency: normalizeCurrency(currency)}
}

// ZeroMoney returns a zero value in the given currency.
func ZeroMoney(currency string) Money {
	return Money{currency: normalizeCurrency(currency)}
}

// SumMoney adds a sequence of values, failing on the first currency mismatch.
// An empty sequence sums to zero in the default currency.
func SumMoney(values []Money) (Money, error) {
	if len(values) == 0 {
		return ZeroMoney(DefaultCurrency), nil
	}

	total := ZeroMoney(values[0].currency)
	for _, v := range values {
		var err error

		total, err = total.Add(v)
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	if m.currency == "" {
		return DefaultCurrency
	}

	return m.currency
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}

	return Money{amount: m.amount.Add(other.amount), currency: m.Currency()}, nil
}

// Sub returns m - other.
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}

	return Money{amount: m.amount.Sub(other.amount), currency: m.Currency()}, nil
}

// Mul returns m scaled by factor. The result keeps m's currency and full
// precision; callers round explicitly.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(factor), currency: m.Currency()}
}

// Div returns m divided by divisor, rounded to the currency's decimal
// places under the given mode.
func (m Money) Div(divisor decimal.Decimal, mode RoundingMode) (Money, error) {
	if divisor.IsZero() {
		return Money{}, ErrDivisionByZero
	}

	q := Money{amount: m.amount.Div(divisor), currency: m.Currency()}

	return q.Round(m.places(), mode), nil
}

// Abs returns the absolute value.
func (m Money) Abs() Money {
	return Money{amount: m.amount.Abs(), currency: m.Currency()}
}

// Neg returns the negated value.
func (m Money) Neg() Money {
	return Money{amount: m.amount.Neg(), currency: m.Currency()}
}

// Round rounds to places decimal places under mode.
func (m Money) Round(places int32, mode RoundingMode) Money {
	var d decimal.Decimal

	switch mode {
	case RoundDown:
		d = m.amount.RoundDown(places)
	case RoundUp:
		d = m.amount.RoundUp(places)
	default:
		d = m.amount.Round(places)
	}

	return Money{amount: d, currency: m.Currency()}
}

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Equal reports whether both currency and amount match.
func (m Money) Equal(other Money) bool {
	return m.Currency() == other.Currency() && m.amount.Equal(other.amount)
}

// GreaterThan compares two values of the same currency.
func (m Money) GreaterThan(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}

	return m.amount.GreaterThan(other.amount), nil
}

// LessThan compares two values of the same currency.
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.checkCurrency(other); err != nil {
		return false, err
	}

	return m.amount.LessThan(other.amount), nil
}

// String renders the amount with the currency's decimal places (two for
// every currently supported currency).
func (m Money) String() string {
	return m.amount.StringFixed(m.places())
}

type moneyJSON struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MarshalJSON encodes as {"amount": "...", "currency": "..."}.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{Amount: m.String(), Currency: m.Currency()})
}

// UnmarshalJSON decodes the {amount, currency} form.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw moneyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := NewMoney(raw.Amount, raw.Currency)
	if err != nil {
		return err
	}

	*m = parsed

	return nil
}

// places is the decimal-place count for the currency. Fixed at two until a
// currency table with per-currency exponents is needed.
func (m Money) places() int32 {
	return 2
}

func (m Money) checkCurrency(other Money) error {
	if m.Currency() != other.Currency() {
		return &CurrencyMismatchError{Expected: m.Currency(), Actual: other.Currency()}
	}

	return nil
}

func normalizeCurrency(currency string) string {
	if currency == "" {
		return DefaultCurrency
	}

	return strings.ToUpper(currency)
}
