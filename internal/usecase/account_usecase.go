package usecase

import (
	"context"
	"time"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/infrastructure/metrics"
)

// AccountUseCase manages the chart of accounts.
type AccountUseCase struct {
	accountRepo AccountRepository
	txManager   TransactionManager
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, txManager TransactionManager, idGen IDGenerator, metrics *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		txManager:   txManager,
		idGen:       idGen,
		metrics:     metrics,
	}
}

// CreateAccount validates and creates an account. The code must be four
// digits and unique.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input domain.NewAccount) (*domain.Account, error) {
	errs := domain.ValidateAccountCode(input.Code).Errors

	if input.Name == "" {
		errs = append(errs, domain.FieldError{
			Field:   "name",
			Message: "account name must not be empty",
			Code:    domain.CodeEmptyName,
		})
	}

	if !input.Type.Valid() {
		errs = append(errs, domain.FieldError{
			Field:   "type",
			Message: "unknown account type: " + string(input.Type),
			Code:    domain.CodeInvalidType,
		})
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	existing, err := uc.accountRepo.GetByCode(ctx, input.Code)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{{
			Field:   "code",
			Message: "account code already in use: " + input.Code,
			Code:    domain.CodeDuplicateCode,
		}}}
	}

	if input.ParentID != nil {
		if _, err := uc.accountRepo.GetByID(ctx, *input.ParentID); err != nil {
			return nil, err
		}
	}

	account := &domain.Account{
		ID:        domain.AccountID(uc.idGen.Generate()),
		Code:      input.Code,
		Name:      input.Name,
		Type:      input.Type,
		ParentID:  input.ParentID,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount returns an account by ID, or nil if it does not exist.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id domain.AccountID) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return account, nil
}

// GetAccountByCode returns an account by code, or nil if it does not exist.
func (uc *AccountUseCase) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return account, nil
}

// ListAccounts returns all accounts ordered by code.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}

// ListAccountsByType returns all accounts of the given type.
func (uc *AccountUseCase) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	if !accountType.Valid() {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{{
			Field:   "type",
			Message: "unknown account type: " + string(accountType),
			Code:    domain.CodeInvalidType,
		}}}
	}

	return uc.accountRepo.ListByType(ctx, accountType)
}

// UpdateAccount applies a partial update to an account.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id domain.AccountID, update domain.AccountUpdate) (*domain.Account, error) {
	return uc.accountRepo.Update(ctx, id, update)
}

// DeactivateAccount marks an account inactive. Deactivated accounts keep
// their history but are excluded from the trial balance and reject new
// postings at the API surface.
func (uc *AccountUseCase) DeactivateAccount(ctx context.Context, id domain.AccountID) error {
	return uc.accountRepo.Deactivate(ctx, id)
}

// SeedChart creates every account from the default chart that does not
// exist yet. It is idempotent and returns the number of accounts created.
func (uc *AccountUseCase) SeedChart(ctx context.Context) (int, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	created := 0
	now := time.Now().UTC()

	for _, chartAccount := range domain.DefaultChart {
		existing, err := uc.accountRepo.GetByCode(txCtx, chartAccount.Code)
		if err != nil && !domain.IsNotFound(err) {
			return 0, err
		}
		if existing != nil {
			continue
		}

		account := &domain.Account{
			ID:        domain.AccountID(uc.idGen.Generate()),
			Code:      chartAccount.Code,
			Name:      chartAccount.Name,
			Type:      chartAccount.Type,
			IsActive:  true,
			CreatedAt: now,
		}

		if err := uc.accountRepo.CreateTx(txCtx, tx, account); err != nil {
			return 0, err
		}

		created++
	}

	if err := tx.Commit(txCtx); err != nil {
		return 0, err
	}

	return created, nil
}
