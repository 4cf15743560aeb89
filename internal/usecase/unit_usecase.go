package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/domain/allocation"
)

// UnitUseCase manages the units that allocations are distributed across.
type UnitUseCase struct {
	unitRepo UnitRepository
	idGen    IDGenerator
}

// NewUnitUseCase creates a new UnitUseCase.
func NewUnitUseCase(unitRepo UnitRepository, idGen IDGenerator) *UnitUseCase {
	return &UnitUseCase{unitRepo: unitRepo, idGen: idGen}
}

// CreateUnit validates and creates a unit. Unit numbers must be unique and
// ownership shares positive, so every unit carries allocation weight.
func (uc *UnitUseCase) CreateUnit(ctx context.Context, input domain.NewUnit) (*domain.Unit, error) {
	var errs []domain.FieldError

	if input.UnitNumber == "" {
		errs = append(errs, domain.FieldError{
			Field:   "unitNumber",
			Message: "unit number is required",
			Code:    domain.CodeEmptyName,
		})
	}

	if input.OwnershipShares.IsNegative() {
		errs = append(errs, domain.FieldError{
			Field:   "ownershipShares",
			Message: "ownership shares cannot be negative",
			Code:    domain.CodeNegativeAmount,
		})
	} else if input.OwnershipShares.IsZero() {
		errs = append(errs, domain.FieldError{
			Field:   "ownershipShares",
			Message: "ownership shares must be positive",
			Code:    domain.CodeInvalidAmount,
		})
	}

	if len(errs) > 0 {
		return nil, &domain.ValidationError{Errors: errs}
	}

	existing, err := uc.unitRepo.GetByUnitNumber(ctx, input.UnitNumber)
	if err != nil && !domain.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ValidationError{Errors: []domain.FieldError{{
			Field:   "unitNumber",
			Message: "unit number already in use: " + input.UnitNumber,
			Code:    domain.CodeDuplicateCode,
		}}}
	}

	unit := &domain.Unit{
		ID:              domain.UnitID(uc.idGen.Generate()),
		UnitNumber:      input.UnitNumber,
		OwnerID:         input.OwnerID,
		OwnershipShares: input.OwnershipShares,
		CreatedAt:       time.Now().UTC(),
	}

	if err := uc.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}

	return unit, nil
}

// GetUnit returns a unit by ID, or nil if it does not exist.
func (uc *UnitUseCase) GetUnit(ctx context.Context, id domain.UnitID) (*domain.Unit, error) {
	unit, err := uc.unitRepo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}

		return nil, err
	}

	return unit, nil
}

// ListUnits returns all units ordered by unit number.
func (uc *UnitUseCase) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	return uc.unitRepo.List(ctx)
}

// TotalShares returns the sum of ownership shares across all units.
func (uc *UnitUseCase) TotalShares(ctx context.Context) (decimal.Decimal, error) {
	return uc.unitRepo.TotalShares(ctx)
}

// UpdateUnit applies a partial update to a unit.
func (uc *UnitUseCase) UpdateUnit(ctx context.Context, id domain.UnitID, update domain.UnitUpdate) (*domain.Unit, error) {
	if update.OwnershipShares != nil {
		if update.OwnershipShares.IsNegative() {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{{
				Field:   "ownershipShares",
				Message: "ownership shares cannot be negative",
				Code:    domain.CodeNegativeAmount,
			}}}
		}
		if update.OwnershipShares.IsZero() {
			return nil, &domain.ValidationError{Errors: []domain.FieldError{{
				Field:   "ownershipShares",
				Message: "ownership shares must be positive",
				Code:    domain.CodeInvalidAmount,
			}}}
		}
	}

	return uc.unitRepo.Update(ctx, id, update)
}

// AllocationInputs loads all units and converts them to strategy inputs,
// ordered as the repository returns them.
func (uc *UnitUseCase) AllocationInputs(ctx context.Context) ([]allocation.UnitInput, error) {
	units, err := uc.unitRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]allocation.UnitInput, 0, len(units))
	for _, unit := range units {
		inputs = append(inputs, allocation.UnitInput{
			UnitID:          unit.ID,
			UnitIdentifier:  unit.UnitNumber,
			OwnershipShares: unit.OwnershipShares,
		})
	}

	return inputs, nil
}
