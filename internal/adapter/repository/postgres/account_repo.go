package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, code, name, type, parent_id, is_active, created_at`

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return createAccount(ctx, r.pool, account)
}

// CreateTx creates a new account inside an open transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	return createAccount(ctx, txQuerier(tx), account)
}

func createAccount(ctx context.Context, q querier, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, code, name, type, parent_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var parentID *string
	if account.ParentID != nil {
		s := account.ParentID.String()
		parentID = &s
	}

	_, err := q.Exec(ctx, query,
		account.ID.String(),
		account.Code,
		account.Name,
		string(account.Type),
		parentID,
		account.IsActive,
		timeToPgTimestamptz(account.CreatedAt),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("account", id)
		}

		return nil, err
	}

	return account, nil
}

// GetByCode retrieves an account by its 4-digit code.
func (r *AccountRepository) GetByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1`

	account, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.EntityNotFoundError{Entity: "account", ID: code}
		}

		return nil, err
	}

	return account, nil
}

// List retrieves all accounts ordered by code.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code`

	return r.queryAccounts(ctx, query)
}

// ListByType retrieves all accounts of one type ordered by code.
func (r *AccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE type = $1 ORDER BY code`

	return r.queryAccounts(ctx, query, string(accountType))
}

// ListActive retrieves all active accounts ordered by code.
func (r *AccountRepository) ListActive(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE is_active ORDER BY code`

	return r.queryAccounts(ctx, query)
}

// Update applies a partial update and returns the updated account.
func (r *AccountRepository) Update(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET name = COALESCE($2, name),
		    parent_id = COALESCE($3, parent_id),
		    is_active = COALESCE($4, is_active)
		WHERE id = $1
		RETURNING ` + accountColumns

	var parentID *string
	if update.ParentID != nil {
		s := update.ParentID.String()
		parentID = &s
	}

	account, err := scanAccount(r.pool.QueryRow(ctx, query, id.String(), update.Name, parentID, update.IsActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("account", id)
		}

		return nil, err
	}

	return account, nil
}

// Deactivate marks an account inactive. Accounts are never hard-deleted.
func (r *AccountRepository) Deactivate(ctx context.Context, id domain.AccountID) error {
	tag, err := r.pool.Exec(ctx, `UPDATE accounts SET is_active = false WHERE id = $1`, id.String())
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFound("account", id)
	}

	return nil
}

func (r *AccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []*domain.Account

	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}

		accounts = append(accounts, account)
	}

	return accounts, rows.Err()
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account  domain.Account
		id       string
		accType  string
		parentID *string
	)

	if err := row.Scan(&id, &account.Code, &account.Name, &accType, &parentID, &account.IsActive, &account.CreatedAt); err != nil {
		return nil, err
	}

	account.ID = domain.AccountID(id)
	account.Type = domain.AccountType(accType)

	if parentID != nil {
		pid := domain.AccountID(*parentID)
		account.ParentID = &pid
	}

	return &account, nil
}
