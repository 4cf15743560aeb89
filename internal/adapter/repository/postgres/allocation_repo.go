package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// AllocationRepository implements usecase.AllocationRepository.
type AllocationRepository struct {
	pool *pgxpool.Pool
}

// NewAllocationRepository creates a new AllocationRepository.
func NewAllocationRepository(pool *pgxpool.Pool) *AllocationRepository {
	return &AllocationRepository{pool: pool}
}

// Create inserts an allocation header inside an open transaction.
func (r *AllocationRepository) Create(ctx context.Context, tx usecase.Transaction, allocation *domain.CostAllocation) error {
	var metadata []byte
	if allocation.Metadata != nil {
		var err error

		metadata, err = json.Marshal(allocation.Metadata)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO cost_allocations (id, journal_entry_id, strategy_type, total_amount, currency, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		allocation.ID.String(),
		allocation.JournalEntryID.String(),
		allocation.StrategyType,
		amountToNumeric(allocation.TotalAmount),
		allocation.Currency,
		metadata,
		timeToPgTimestamptz(allocation.CreatedAt),
	)

	return err
}

// CreateItems inserts allocation items inside an open transaction.
func (r *AllocationRepository) CreateItems(ctx context.Context, tx usecase.Transaction, items []*domain.AllocationItem) error {
	pgxTx := tx.(*Tx).PgxTx()

	rows := make([][]any, 0, len(items))
	for _, item := range items {
		rows = append(rows, []any{
			item.ID.String(),
			item.AllocationID.String(),
			item.UnitID.String(),
			item.UnitIdentifier,
			nullableAmount(item.ShareValue),
			nullableAmount(item.UsageValue),
			amountToNumeric(item.AllocatedAmount),
			timeToPgTimestamptz(item.CreatedAt),
		})
	}

	_, err := pgxTx.CopyFrom(ctx,
		pgx.Identifier{"allocation_items"},
		[]string{"id", "allocation_id", "unit_id", "unit_identifier", "share_value", "usage_value", "allocated_amount", "created_at"},
		pgx.CopyFromRows(rows),
	)

	return err
}

// GetByID retrieves an allocation header by ID.
func (r *AllocationRepository) GetByID(ctx context.Context, id domain.AllocationID) (*domain.CostAllocation, error) {
	query := `
		SELECT id, journal_entry_id, strategy_type, total_amount, currency, metadata, created_at
		FROM cost_allocations WHERE id = $1
	`

	allocation, err := scanAllocation(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("allocation", id)
		}

		return nil, err
	}

	return allocation, nil
}

// GetByJournalEntry retrieves the allocation booked against a journal
// entry, if any.
func (r *AllocationRepository) GetByJournalEntry(ctx context.Context, entryID domain.JournalEntryID) (*domain.CostAllocation, error) {
	query := `
		SELECT id, journal_entry_id, strategy_type, total_amount, currency, metadata, created_at
		FROM cost_allocations WHERE journal_entry_id = $1
	`

	allocation, err := scanAllocation(r.pool.QueryRow(ctx, query, entryID.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("allocation", entryID)
		}

		return nil, err
	}

	return allocation, nil
}

// ListItems retrieves an allocation's items in insertion order.
func (r *AllocationRepository) ListItems(ctx context.Context, allocationID domain.AllocationID) ([]domain.AllocationItem, error) {
	query := `
		SELECT id, allocation_id, unit_id, unit_identifier, share_value, usage_value, allocated_amount, created_at
		FROM allocation_items WHERE allocation_id = $1 ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, allocationID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.AllocationItem

	for rows.Next() {
		var (
			item       domain.AllocationItem
			id         string
			allocID    string
			unitID     string
			shareValue pgtype.Numeric
			usageValue pgtype.Numeric
			allocated  pgtype.Numeric
		)

		err := rows.Scan(&id, &allocID, &unitID, &item.UnitIdentifier,
			&shareValue, &usageValue, &allocated, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		item.ID = domain.AllocationItemID(id)
		item.AllocationID = domain.AllocationID(allocID)
		item.UnitID = domain.UnitID(unitID)
		item.AllocatedAmount = numericToAmount(allocated)

		if shareValue.Valid {
			item.ShareValue = numericToDecimal(shareValue).String()
		}

		if usageValue.Valid {
			item.UsageValue = numericToDecimal(usageValue).String()
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func scanAllocation(row pgx.Row) (*domain.CostAllocation, error) {
	var (
		allocation domain.CostAllocation
		id         string
		entryID    string
		total      pgtype.Numeric
		metadata   []byte
	)

	err := row.Scan(&id, &entryID, &allocation.StrategyType, &total, &allocation.Currency, &metadata, &allocation.CreatedAt)
	if err != nil {
		return nil, err
	}

	allocation.ID = domain.AllocationID(id)
	allocation.JournalEntryID = domain.JournalEntryID(entryID)
	allocation.TotalAmount = numericToAmount(total)

	if metadata != nil {
		_ = json.Unmarshal(metadata, &allocation.Metadata)
	}

	return &allocation, nil
}

func nullableAmount(value string) any {
	if value == "" {
		return nil
	}

	return amountToNumeric(value)
}
