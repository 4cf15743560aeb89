package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// PostingRepository implements usecase.PostingRepository. Posting rows are
// strictly append-only; there is no UPDATE or DELETE path at all.
type PostingRepository struct {
	pool *pgxpool.Pool
}

// NewPostingRepository creates a new PostingRepository.
func NewPostingRepository(pool *pgxpool.Pool) *PostingRepository {
	return &PostingRepository{pool: pool}
}

const postingColumns = `id, journal_entry_id, account_id, amount, side, memo, created_at`

// CreateBatch inserts all postings of one entry inside an open transaction.
func (r *PostingRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, postings []*domain.Posting) error {
	pgxTx := tx.(*Tx).PgxTx()

	rows := make([][]any, 0, len(postings))
	for _, p := range postings {
		rows = append(rows, []any{
			p.ID.String(),
			p.JournalEntryID.String(),
			p.AccountID.String(),
			amountToNumeric(p.Amount),
			string(p.Side),
			p.Memo,
			timeToPgTimestamptz(p.CreatedAt),
		})
	}

	_, err := pgxTx.CopyFrom(ctx,
		pgx.Identifier{"postings"},
		[]string{"id", "journal_entry_id", "account_id", "amount", "side", "memo", "created_at"},
		pgx.CopyFromRows(rows),
	)

	return err
}

// ListByJournalEntry retrieves an entry's postings in insertion order.
func (r *PostingRepository) ListByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) ([]domain.Posting, error) {
	return listByJournalEntry(ctx, r.pool, entryID)
}

// ListByJournalEntryTx retrieves an entry's postings inside an open
// transaction.
func (r *PostingRepository) ListByJournalEntryTx(ctx context.Context, tx usecase.Transaction, entryID domain.JournalEntryID) ([]domain.Posting, error) {
	return listByJournalEntry(ctx, txQuerier(tx), entryID)
}

func listByJournalEntry(ctx context.Context, q querier, entryID domain.JournalEntryID) ([]domain.Posting, error) {
	query := `SELECT ` + postingColumns + ` FROM postings WHERE journal_entry_id = $1 ORDER BY id`

	rows, err := q.Query(ctx, query, entryID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPostings(rows)
}

// ListByAccount retrieves an account's postings joined through their entry
// dates, oldest first, optionally bounded by a date range.
func (r *PostingRepository) ListByAccount(ctx context.Context, accountID domain.AccountID, dateRange domain.DateRange) ([]domain.Posting, error) {
	query := `
		SELECT p.id, p.journal_entry_id, p.account_id, p.amount, p.side, p.memo, p.created_at
		FROM postings p
		JOIN journal_entries e ON e.id = p.journal_entry_id
		WHERE p.account_id = $1
	`
	args := []any{accountID.String()}

	if dateRange.Start != nil {
		args = append(args, *dateRange.Start)
		query += fmt.Sprintf(` AND e.date >= $%d`, len(args))
	}

	if dateRange.End != nil {
		args = append(args, *dateRange.End)
		query += fmt.Sprintf(` AND e.date <= $%d`, len(args))
	}

	query += ` ORDER BY e.date, p.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPostings(rows)
}

func scanPostings(rows pgx.Rows) ([]domain.Posting, error) {
	var postings []domain.Posting

	for rows.Next() {
		var (
			p      domain.Posting
			id     string
			entry  string
			acc    string
			amount pgtype.Numeric
			side   string
		)

		if err := rows.Scan(&id, &entry, &acc, &amount, &side, &p.Memo, &p.CreatedAt); err != nil {
			return nil, err
		}

		p.ID = domain.PostingID(id)
		p.JournalEntryID = domain.JournalEntryID(entry)
		p.AccountID = domain.AccountID(acc)
		p.Amount = numericToAmount(amount)
		p.Side = domain.PostingSide(side)

		postings = append(postings, p)
	}

	return postings, rows.Err()
}
