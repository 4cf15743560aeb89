package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// ByShareStrategy distributes a cost proportionally to ownership shares
// (Miteigentumsanteil).
type ByShareStrategy struct{}

func (s *ByShareStrategy) Type() string { return "by_share" }
func (s *ByShareStrategy) Name() string { return "By Ownership Share" }

func (s *ByShareStrategy) Description() string {
	return "Distributes costs proportionally to ownership shares (Miteigentumsanteil)"
}

func (s *ByShareStrategy) Validate(units []UnitInput) domain.ValidationResult {
	if errs := validateNonEmpty(units); errs != nil {
		return result(errs)
	}

	var errs []domain.FieldError

	totalShares := decimal.Zero
	for _, unit := range units {
		totalShares = totalShares.Add(unit.OwnershipShares)
	}

	if !totalShares.IsPositive() {
		errs = append(errs, domain.FieldError{
			Field:   "ownershipShares",
			Message: "total ownership shares must be greater than zero",
			Code:    CodeInvalidTotalShares,
		})
	}

	for _, unit := range units {
		if !unit.OwnershipShares.IsPositive() {
			errs = append(errs, domain.FieldError{
				Field:   "ownershipShares",
				Message: fmt.Sprintf("unit %s has invalid ownership shares: %s", unit.UnitIdentifier, unit.OwnershipShares),
				Code:    CodeInvalidShares,
			})
		}
	}

	return result(errs)
}

func (s *ByShareStrategy) Calculate(total domain.Money, units []UnitInput, opts Options) (*Result, error) {
	if err := s.Validate(units).Err(); err != nil {
		return nil, err
	}

	totalShares := decimal.Zero
	for _, unit := range units {
		totalShares = totalShares.Add(unit.OwnershipShares)
	}

	items := make([]ResultItem, 0, len(units))

	for _, unit := range units {
		shares := unit.OwnershipShares
		ratio := shares.Div(totalShares)

		items = append(items, ResultItem{
			UnitID:         unit.UnitID,
			UnitIdentifier: unit.UnitIdentifier,
			ShareValue:     &shares,
			Allocated:      total.Mul(ratio).Round(opts.precision(), domain.RoundDown),
		})
	}

	remainderUnit, err := applyRemainder(total, items, opts, func(item ResultItem) decimal.Decimal {
		return *item.ShareValue
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		TotalAmount:     total,
		Items:           items,
		Remainder:       domain.ZeroMoney(total.Currency()),
		RemainderUnitID: remainderUnit,
	}, nil
}
