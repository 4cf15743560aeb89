package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostAllocation links a journal entry to the strategy that produced it.
// Metadata records strategy details and which unit absorbed the rounding
// remainder.
type CostAllocation struct {
	CreatedAt      time.Time
	Metadata       map[string]any
	ID             AllocationID
	JournalEntryID JournalEntryID
	StrategyType   string
	TotalAmount    string
	Currency       string
}

// AllocationItem records one unit's share of an allocated cost. ShareValue
// and UsageValue are the strategy-dependent basis; either may be empty.
type AllocationItem struct {
	CreatedAt       time.Time
	ID              AllocationItemID
	AllocationID    AllocationID
	UnitID          UnitID
	UnitIdentifier  string
	ShareValue      string
	UsageValue      string
	AllocatedAmount string
}

// Unit is a cost-bearing unit (an apartment in a WEG). It is allocation
// input only; the accounting core never mutates it.
type Unit struct {
	CreatedAt       time.Time
	ID              UnitID
	UnitNumber      string
	OwnerID         string
	OwnershipShares decimal.Decimal
}

// NewUnit holds the fields for creating a unit.
type NewUnit struct {
	UnitNumber      string
	OwnerID         string
	OwnershipShares decimal.Decimal
}

// UnitUpdate is a partial update; nil fields are left unchanged.
type UnitUpdate struct {
	UnitNumber      *string
	OwnerID         *string
	OwnershipShares *decimal.Decimal
}
