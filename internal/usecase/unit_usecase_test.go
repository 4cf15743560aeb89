package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
	"github.com/iho/hausledger/internal/usecase"
	"github.com/iho/hausledger/internal/usecase/mocks"
)

func TestUnitUseCase_CreateUnit(t *testing.T) {
	tests := []struct {
		name        string
		input       domain.NewUnit
		seed        []*domain.Unit
		expectError bool
		errorCode   string
	}{
		{
			name:  "valid unit",
			input: domain.NewUnit{UnitNumber: "WE-01", OwnerID: "owner-1", OwnershipShares: decimal.NewFromInt(250)},
		},
		{
			name:        "empty unit number",
			input:       domain.NewUnit{UnitNumber: "", OwnershipShares: decimal.NewFromInt(250)},
			expectError: true,
			errorCode:   domain.CodeEmptyName,
		},
		{
			name:        "negative shares",
			input:       domain.NewUnit{UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(-10)},
			expectError: true,
			errorCode:   domain.CodeNegativeAmount,
		},
		{
			name:        "zero shares",
			input:       domain.NewUnit{UnitNumber: "WE-01", OwnershipShares: decimal.Zero},
			expectError: true,
			errorCode:   domain.CodeInvalidAmount,
		},
		{
			name:  "duplicate unit number",
			input: domain.NewUnit{UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(250)},
			seed: []*domain.Unit{
				{ID: "unit-existing", UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(100)},
			},
			expectError: true,
			errorCode:   domain.CodeDuplicateCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unitRepo := mocks.NewMockUnitRepository()
			unitRepo.Seed(tt.seed...)

			uc := usecase.NewUnitUseCase(unitRepo, mocks.NewMockIDGenerator())
			unit, err := uc.CreateUnit(context.Background(), tt.input)

			if tt.expectError {
				var verr *domain.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
				}
				found := false
				for _, fe := range verr.Errors {
					if fe.Code == tt.errorCode {
						found = true
					}
				}
				if !found {
					t.Errorf("expected error code %s in %+v", tt.errorCode, verr.Errors)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if unit.ID == "" {
				t.Error("expected a created unit with an ID")
			}
		})
	}
}

func TestUnitUseCase_TotalShares(t *testing.T) {
	unitRepo := mocks.NewMockUnitRepository()
	unitRepo.Seed(
		&domain.Unit{ID: "unit-1", UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(400)},
		&domain.Unit{ID: "unit-2", UnitNumber: "WE-02", OwnershipShares: decimal.NewFromInt(350)},
		&domain.Unit{ID: "unit-3", UnitNumber: "WE-03", OwnershipShares: decimal.NewFromInt(250)},
	)

	uc := usecase.NewUnitUseCase(unitRepo, mocks.NewMockIDGenerator())

	total, err := uc.TotalShares(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected 1000 total shares, got %s", total)
	}
}

func TestUnitUseCase_AllocationInputs(t *testing.T) {
	unitRepo := mocks.NewMockUnitRepository()
	unitRepo.Seed(
		&domain.Unit{ID: "unit-2", UnitNumber: "WE-02", OwnershipShares: decimal.NewFromInt(350)},
		&domain.Unit{ID: "unit-1", UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(400)},
	)

	uc := usecase.NewUnitUseCase(unitRepo, mocks.NewMockIDGenerator())

	inputs, err := uc.AllocationInputs(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %d", len(inputs))
	}
	if inputs[0].UnitIdentifier != "WE-01" || inputs[1].UnitIdentifier != "WE-02" {
		t.Errorf("expected inputs ordered by unit number, got %+v", inputs)
	}
	if !inputs[0].OwnershipShares.Equal(decimal.NewFromInt(400)) {
		t.Errorf("expected shares carried over, got %s", inputs[0].OwnershipShares)
	}
}

func TestUnitUseCase_UpdateUnit_RejectsNonPositiveShares(t *testing.T) {
	unitRepo := mocks.NewMockUnitRepository()
	unitRepo.Seed(&domain.Unit{ID: "unit-1", UnitNumber: "WE-01", OwnershipShares: decimal.NewFromInt(100)})

	uc := usecase.NewUnitUseCase(unitRepo, mocks.NewMockIDGenerator())

	for _, bad := range []decimal.Decimal{decimal.NewFromInt(-5), decimal.Zero} {
		shares := bad
		_, err := uc.UpdateUnit(context.Background(), "unit-1", domain.UnitUpdate{OwnershipShares: &shares})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *domain.ValidationError for shares %s, got %T: %v", bad, err, err)
		}
	}
}
