package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/hausledger/internal/domain"
)

func TestCreateAccountRequest_ToDomain(t *testing.T) {
	parent := "acc-parent"
	req := &CreateAccountRequest{
		Code:     "6100",
		Name:     "Wasser / Abwasser",
		Type:     "expense",
		ParentID: &parent,
	}

	got := req.ToDomain()

	assert.Equal(t, "6100", got.Code)
	assert.Equal(t, "Wasser / Abwasser", got.Name)
	assert.Equal(t, domain.AccountTypeExpense, got.Type)
	require.NotNil(t, got.ParentID)
	assert.Equal(t, domain.AccountID("acc-parent"), *got.ParentID)
}

func TestCreateAccountRequest_ToDomainWithoutParent(t *testing.T) {
	req := &CreateAccountRequest{Code: "1000", Name: "Bank", Type: "asset"}

	got := req.ToDomain()

	assert.Nil(t, got.ParentID)
}

func TestCreateEntryRequest_ToDomain(t *testing.T) {
	req := &CreateEntryRequest{
		Date:        "2024-03-15",
		Description: "Heating oil delivery",
		Reference:   "INV-2024-001",
		CreatedBy:   "verwalter",
		Postings: []PostingRequest{
			{AccountID: "acc-expense", Amount: "100.00", Side: "debit", Memo: "oil"},
			{AccountID: "acc-bank", Amount: "100.00", Side: "credit"},
		},
	}

	entry, postings := req.ToDomain()

	assert.Equal(t, "2024-03-15", entry.Date.Format(DateFormat))
	assert.Equal(t, "Heating oil delivery", entry.Description)
	require.Len(t, postings, 2)
	assert.Equal(t, domain.AccountID("acc-expense"), postings[0].AccountID)
	assert.Equal(t, domain.Debit, postings[0].Side)
	assert.Equal(t, "100.00", postings[0].Amount)
	assert.Equal(t, domain.Credit, postings[1].Side)
}

func TestCreateEntryRequest_ToDomainBadDate(t *testing.T) {
	req := &CreateEntryRequest{
		Date:        "15.03.2024",
		Description: "x",
		CreatedBy:   "y",
	}

	entry, _ := req.ToDomain()

	// An unparsable date maps to the zero time so validation rejects it.
	assert.True(t, entry.Date.IsZero())
}

func TestUpdateAccountRequest_ToDomain(t *testing.T) {
	name := "Renamed"
	inactive := false
	req := &UpdateAccountRequest{Name: &name, IsActive: &inactive}

	got := req.ToDomain()

	require.NotNil(t, got.Name)
	assert.Equal(t, "Renamed", *got.Name)
	require.NotNil(t, got.IsActive)
	assert.False(t, *got.IsActive)
	assert.Nil(t, got.ParentID)
}
