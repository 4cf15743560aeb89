package allocation

import (
	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// FlatStrategy distributes a cost equally across all units.
type FlatStrategy struct{}

func (s *FlatStrategy) Type() string { return "flat" }
func (s *FlatStrategy) Name() string { return "Flat/Equal Distribution" }

func (s *FlatStrategy) Description() string {
	return "Distributes costs equally among all units"
}

func (s *FlatStrategy) Validate(units []UnitInput) domain.ValidationResult {
	return result(validateNonEmpty(units))
}

func (s *FlatStrategy) Calculate(total domain.Money, units []UnitInput, opts Options) (*Result, error) {
	if err := s.Validate(units).Err(); err != nil {
		return nil, err
	}

	divisor := decimal.NewFromInt(int64(len(units)))

	items := make([]ResultItem, 0, len(units))

	for _, unit := range units {
		share, err := total.Div(divisor, domain.RoundDown)
		if err != nil {
			return nil, err
		}

		items = append(items, ResultItem{
			UnitID:         unit.UnitID,
			UnitIdentifier: unit.UnitIdentifier,
			Allocated:      share.Round(opts.precision(), domain.RoundDown),
		})
	}

	// All shares are equal, so "largest" degrades to the first unit.
	remainderUnit, err := applyRemainder(total, items, opts, nil)
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
