package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func money(t *testing.T, s string) Money {
	t.Helper()

	m, err := NewMoney(s, "EUR")
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}

	return m
}

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		currency    string
		expectError bool
		want        string
	}{
		{name: "plain amount", amount: "100.00", currency: "EUR", want: "100.00"},
		{name: "negative amount", amount: "-0.01", currency: "EUR", want: "-0.01"},
		{name: "high precision kept", amount: "33.333333", currency: "EUR", want: "33.33"},
		{name: "default currency", amount: "10", currency: "", want: "10.00"},
		{name: "lowercase currency normalized", amount: "10", currency: "eur", want: "10.00"},
		{name: "empty string", amount: "", expectError: true},
		{name: "not a number", amount: "ten", expectError: true},
		{name: "float artifact rejected", amount: "1,000.00", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)

			if tt.expectError {
				var ierr *InvalidAmountError
				if !errors.As(err, &ierr) {
					t.Fatalf("expected *InvalidAmountError, got %T: %v", err, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, m)
			}
			if m.Currency() != "EUR" {
				t.Errorf("expected EUR, got %s", m.Currency())
			}
		})
	}
}

func TestMoney_ExactArithmetic(t *testing.T) {
	// The classic binary-float trap: 0.1 + 0.2 must be exactly 0.3.
	a := money(t, "0.1")
	b := money(t, "0.2")

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !sum.Equal(money(t, "0.3")) {
		t.Errorf("expected exactly 0.30, got %s", sum)
	}
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	eur := money(t, "10.00")
	usd, err := NewMoney("10.00", "USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := eur.Add(usd); err == nil {
		t.Fatal("expected currency mismatch error")
	} else {
		var cerr *CurrencyMismatchError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected *CurrencyMismatchError, got %T", err)
		}
		if cerr.Expected != "EUR" || cerr.Actual != "USD" {
			t.Errorf("unexpected mismatch detail: %+v", cerr)
		}
	}

	if _, err := eur.Sub(usd); err == nil {
		t.Error("Sub should also reject mixed currencies")
	}
	if _, err := eur.GreaterThan(usd); err == nil {
		t.Error("GreaterThan should also reject mixed currencies")
	}
}

func TestMoney_Div(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		divisor int64
		mode    RoundingMode
		want    string
	}{
		{name: "truncate for allocation", amount: "100.00", divisor: 3, mode: RoundDown, want: "33.33"},
		{name: "half-up display rounding", amount: "100.00", divisor: 3, mode: RoundHalfUp, want: "33.33"},
		{name: "round up", amount: "100.00", divisor: 3, mode: RoundUp, want: "33.34"},
		{name: "exact division", amount: "100.00", divisor: 4, mode: RoundDown, want: "25.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money(t, tt.amount).Div(decimal.NewFromInt(tt.divisor), tt.mode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	if _, err := money(t, "100.00").Div(decimal.Zero, RoundDown); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestMoney_RoundHalfUp(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{amount: "2.345", want: "2.35"},
		{amount: "2.344", want: "2.34"},
		{amount: "-2.345", want: "-2.35"},
	}

	for _, tt := range tests {
		got := money(t, tt.amount).Round(2, RoundHalfUp)
		if got.String() != tt.want {
			t.Errorf("Round(%s) = %s, expected %s", tt.amount, got, tt.want)
		}
	}
}

func TestSumMoney(t *testing.T) {
	sum, err := SumMoney([]Money{money(t, "1.10"), money(t, "2.20"), money(t, "3.30")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.String() != "6.60" {
		t.Errorf("expected 6.60, got %s", sum)
	}

	empty, err := SumMoney(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !empty.IsZero() {
		t.Errorf("expected zero sum for no amounts, got %s", empty)
	}
}

func TestMoney_JSON(t *testing.T) {
	m := money(t, "1234.56")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Money
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !decoded.Equal(m) || decoded.Currency() != "EUR" {
		t.Errorf("round trip changed the value: %s -> %s", m, decoded)
	}
}
