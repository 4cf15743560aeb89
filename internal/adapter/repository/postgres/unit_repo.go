package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// UnitRepository implements usecase.UnitRepository.
type UnitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

const unitColumns = `id, unit_number, owner_id, ownership_shares, created_at`

// Create creates a new unit.
func (r *UnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	query := `
		INSERT INTO units (id, unit_number, owner_id, ownership_shares, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		unit.ID.String(),
		unit.UnitNumber,
		unit.OwnerID,
		decimalToNumeric(unit.OwnershipShares),
		timeToPgTimestamptz(unit.CreatedAt),
	)

	return err
}

// GetByID retrieves a unit by ID.
func (r *UnitRepository) GetByID(ctx context.Context, id domain.UnitID) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE id = $1`

	unit, err := scanUnit(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("unit", id)
		}

		return nil, err
	}

	return unit, nil
}

// GetByUnitNumber retrieves a unit by its unit number.
func (r *UnitRepository) GetByUnitNumber(ctx context.Context, unitNumber string) (*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_number = $1`

	unit, err := scanUnit(r.pool.QueryRow(ctx, query, unitNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.EntityNotFoundError{Entity: "unit", ID: unitNumber}
		}

		return nil, err
	}

	return unit, nil
}

// List retrieves all units ordered by unit number.
func (r *UnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units ORDER BY unit_number`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*domain.Unit

	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}

		units = append(units, unit)
	}

	return units, rows.Err()
}

// TotalShares sums ownership shares across all units.
func (r *UnitRepository) TotalShares(ctx context.Context) (decimal.Decimal, error) {
	var total pgtype.Numeric

	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(ownership_shares), 0) FROM units`).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(total), nil
}

// Update applies a partial update and returns the updated unit.
func (r *UnitRepository) Update(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error) {
	query := `
		UPDATE units
		SET unit_number = COALESCE($2, unit_number),
		    owner_id = COALESCE($3, owner_id),
		    ownership_shares = COALESCE($4, ownership_shares)
		WHERE id = $1
		RETURNING ` + unitColumns

	var shares *pgtype.Numeric
	if update.OwnershipShares != nil {
		n := decimalToNumeric(*update.OwnershipShares)
		shares = &n
	}

	unit, err := scanUnit(r.pool.QueryRow(ctx, query, id.String(), update.UnitNumber, update.OwnerID, shares))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("unit", id)
		}

		return nil, err
	}

	return unit, nil
}

func scanUnit(row pgx.Row) (*domain.Unit, error) {
	var (
		unit   domain.Unit
		id     string
		shares pgtype.Numeric
	)

	if err := row.Scan(&id, &unit.UnitNumber, &unit.OwnerID, &shares, &unit.CreatedAt); err != nil {
		return nil, err
	}

	unit.ID = domain.UnitID(id)
	unit.OwnershipShares = numericToDecimal(shares)

	return &unit, nil
}
