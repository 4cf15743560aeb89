package domain

// Typed identifiers. Each entity kind gets its own string type so an
// account ID can never be passed where a journal entry ID is expected.
type (
	AccountID        string
	JournalEntryID   string
	PostingID        string
	AllocationID     string
	AllocationItemID string
	UnitID           string
)

func (id AccountID) String() string        { return string(id) }
func (id JournalEntryID) String() string   { return string(id) }
func (id PostingID) String() string        { return string(id) }
func (id AllocationID) String() string     { return string(id) }
func (id AllocationItemID) String() string { return string(id) }
func (id UnitID) String() string           { return string(id) }
