package domain

import "time"

// PostingSide is the debit/credit tag of a posting.
type PostingSide string

const (
	Debit  PostingSide = "debit"
	Credit PostingSide = "credit"
)

// Valid reports whether s is debit or credit.
func (s PostingSide) Valid() bool {
	return s == Debit || s == Credit
}

// Opposite returns the mirrored side, used when building reversal postings.
func (s PostingSide) Opposite() PostingSide {
	if s == Debit {
		return Credit
	}

	return Debit
}

// JournalEntry is the header of one balanced transaction. Core fields are
// immutable after creation; only the reversal linkage is ever mutated, once,
// when the entry is reversed.
type JournalEntry struct {
	Date         time.Time // transaction date
	CreatedAt    time.Time // system-recorded entry date
	ID           JournalEntryID
	Description  string
	Reference    string
	CreatedBy    string
	ReversedByID *JournalEntryID
	ReversalOfID *JournalEntryID
	IsReversed   bool
}

// NewJournalEntry holds the caller-supplied fields for creating an entry.
type NewJournalEntry struct {
	Date        time.Time
	Description string
	Reference   string
	CreatedBy   string
}

// Posting is one debit or credit line within a journal entry. The amount is
// a decimal-preserving string; it is parsed into Money wherever arithmetic
// happens and never passes through a binary float.
type Posting struct {
	CreatedAt      time.Time
	ID             PostingID
	JournalEntryID JournalEntryID
	AccountID      AccountID
	Amount         string
	Side           PostingSide
	Memo           string
}

// NewPosting holds the caller-supplied fields for one posting line.
type NewPosting struct {
	AccountID AccountID
	Amount    string
	Side      PostingSide
	Memo      string
}

// JournalEntryWithPostings is an entry joined with its posting lines.
type JournalEntryWithPostings struct {
	JournalEntry

	Postings []Posting
}

// DateRange bounds a posting or entry query. Nil ends are unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// QueryOptions adds pagination to a date-ranged query.
type QueryOptions struct {
	DateRange

	Limit  int
	Offset int
}
