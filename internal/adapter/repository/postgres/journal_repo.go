package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// JournalRepository implements usecase.JournalRepository. Journal entry
// rows are append-only; the only UPDATE ever issued is the one-time
// reversal marking.
type JournalRepository struct {
	pool querier
}

// NewJournalRepository creates a new JournalRepository.
func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return newJournalRepositoryWithPool(pool)
}

func newJournalRepositoryWithPool(pool querier) *JournalRepository {
	return &JournalRepository{pool: pool}
}

const journalColumns = `id, date, description, reference, created_by, is_reversed, reversed_by_id, reversal_of_id, created_at`

// Create inserts a journal entry header inside an open transaction.
func (r *JournalRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, date, description, reference, created_by, is_reversed, reversed_by_id, reversal_of_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		entry.ID.String(),
		timeToPgTimestamptz(entry.Date),
		entry.Description,
		entry.Reference,
		entry.CreatedBy,
		entry.IsReversed,
		entryIDPtr(entry.ReversedByID),
		entryIDPtr(entry.ReversalOfID),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// GetByID retrieves a journal entry by ID.
func (r *JournalRepository) GetByID(ctx context.Context, id domain.JournalEntryID) (*domain.JournalEntry, error) {
	return getEntry(ctx, r.pool, id)
}

// GetByIDTx retrieves a journal entry inside an open transaction.
func (r *JournalRepository) GetByIDTx(ctx context.Context, tx usecase.Transaction, id domain.JournalEntryID) (*domain.JournalEntry, error) {
	return getEntry(ctx, txQuerier(tx), id)
}

func getEntry(ctx context.Context, q querier, id domain.JournalEntryID) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE id = $1`

	entry, err := scanEntry(q.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("journal entry", id)
		}

		return nil, err
	}

	return entry, nil
}

// List retrieves entries ordered by date, newest first, with optional date
// bounds and pagination.
func (r *JournalRepository) List(ctx context.Context, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}

	if opts.Start != nil {
		args = append(args, *opts.Start)
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}

	if opts.End != nil {
		args = append(args, *opts.End)
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}

	query += ` ORDER BY date DESC, created_at DESC`

	args = append(args, opts.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	args = append(args, opts.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.queryEntries(ctx, query, args...)
}

// ListByDateRange retrieves entries between two dates, inclusive.
func (r *JournalRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE date >= $1 AND date <= $2 ORDER BY date, created_at`

	return r.queryEntries(ctx, query, start, end)
}

// ListByAccount retrieves entries that carry at least one posting to the
// account, with the same optional date bounds and pagination as List.
func (r *JournalRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, opts domain.QueryOptions) ([]*domain.JournalEntry, error) {
	query := `
		SELECT DISTINCT e.id, e.date, e.description, e.reference, e.created_by, e.is_reversed, e.reversed_by_id, e.reversal_of_id, e.created_at
		FROM journal_entries e
		JOIN postings p ON p.journal_entry_id = e.id
		WHERE p.account_id = $1`
	args := []any{accountID.String()}

	if opts.Start != nil {
		args = append(args, *opts.Start)
		query += fmt.Sprintf(` AND e.date >= $%d`, len(args))
	}

	if opts.End != nil {
		args = append(args, *opts.End)
		query += fmt.Sprintf(` AND e.date <= $%d`, len(args))
	}

	query += ` ORDER BY e.date DESC, e.created_at DESC`

	args = append(args, opts.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	args = append(args, opts.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.queryEntries(ctx, query, args...)
}

// MarkReversed links an entry to its reversal. It fails when the entry is
// missing but deliberately not when it is already reversed: re-reversal
// starts a new correction chain and overwrites the link.
func (r *JournalRepository) MarkReversed(ctx context.Context, tx usecase.Transaction, id, reversedByID domain.JournalEntryID) error {
	query := `UPDATE journal_entries SET is_reversed = true, reversed_by_id = $2 WHERE id = $1`

	tag, err := txQuerier(tx).Exec(ctx, query, id.String(), reversedByID.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFound("journal entry", id)
	}

	return nil
}

func (r *JournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]*domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.JournalEntry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var (
		entry        domain.JournalEntry
		id           string
		reversedByID *string
		reversalOfID *string
	)

	err := row.Scan(&id, &entry.Date, &entry.Description, &entry.Reference, &entry.CreatedBy,
		&entry.IsReversed, &reversedByID, &reversalOfID, &entry.CreatedAt)
	if err != nil {
		return nil, err
	}

	entry.ID = domain.JournalEntryID(id)

	if reversedByID != nil {
		eid := domain.JournalEntryID(*reversedByID)
		entry.ReversedByID = &eid
	}

	if reversalOfID != nil {
		eid := domain.JournalEntryID(*reversalOfID)
		entry.ReversalOfID = &eid
	}

	return &entry, nil
}

func entryIDPtr(id *domain.JournalEntryID) *string {
	if id == nil {
		return nil
	}

	s := id.String()

	return &s
}
