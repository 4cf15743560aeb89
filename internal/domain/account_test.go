package domain

import "testing"

func TestAccountType_DebitNormal(t *testing.T) {
	tests := []struct {
		accountType AccountType
		debitNormal bool
	}{
		{AccountTypeAsset, true},
		{AccountTypeExpense, true},
		{AccountTypeLiability, false},
		{AccountTypeEquity, false},
		{AccountTypeIncome, false},
	}

	for _, tt := range tests {
		if got := tt.accountType.DebitNormal(); got != tt.debitNormal {
			t.Errorf("%s: expected DebitNormal=%v, got %v", tt.accountType, tt.debitNormal, got)
		}
	}
}

func TestAccountType_BalanceEffect(t *testing.T) {
	amount, err := NewMoney("100.00", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name        string
		accountType AccountType
		side        PostingSide
		want        string
	}{
		{name: "debit increases asset", accountType: AccountTypeAsset, side: Debit, want: "100.00"},
		{name: "credit decreases asset", accountType: AccountTypeAsset, side: Credit, want: "-100.00"},
		{name: "debit increases expense", accountType: AccountTypeExpense, side: Debit, want: "100.00"},
		{name: "credit increases liability", accountType: AccountTypeLiability, side: Credit, want: "100.00"},
		{name: "debit decreases liability", accountType: AccountTypeLiability, side: Debit, want: "-100.00"},
		{name: "credit increases income", accountType: AccountTypeIncome, side: Credit, want: "100.00"},
		{name: "credit increases equity", accountType: AccountTypeEquity, side: Credit, want: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.accountType.BalanceEffect(tt.side, amount)
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestPostingSide_Opposite(t *testing.T) {
	if Debit.Opposite() != Credit || Credit.Opposite() != Debit {
		t.Error("Opposite should mirror the side")
	}
	if Debit.Opposite().Opposite() != Debit {
		t.Error("Opposite should be an involution")
	}
}
