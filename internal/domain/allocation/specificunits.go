package allocation

import (
	"fmt"

	"github.com/iho/hausledger/internal/domain"
)

// SpecificUnitsStrategy assigns a pre-fixed amount to each unit. The fixed
// amounts must sum to the total exactly; there is no remainder to place.
type SpecificUnitsStrategy struct{}

func (s *SpecificUnitsStrategy) Type() string { return "specific_units" }
func (s *SpecificUnitsStrategy) Name() string { return "Specific Unit Amounts" }

func (s *SpecificUnitsStrategy) Description() string {
	return "Assigns specific predefined amounts to each unit"
}

func (s *SpecificUnitsStrategy) Validate(units []UnitInput) domain.ValidationResult {
	if errs := validateNonEmpty(units); errs != nil {
		return result(errs)
	}

	var errs []domain.FieldError

	for _, unit := range units {
		switch {
		case unit.FixedAmount == nil:
			errs = append(errs, domain.FieldError{
				Field:   "fixedAmount",
				Message: fmt.Sprintf("unit %s is missing fixed amount", unit.UnitIdentifier),
				Code:    CodeMissingFixedAmount,
			})
		case unit.FixedAmount.IsNegative():
			errs = append(errs, domain.FieldError{
				Field:   "fixedAmount",
				Message: fmt.Sprintf("unit %s has negative fixed amount", unit.UnitIdentifier),
				Code:    CodeNegativeFixedAmount,
			})
		}
	}

	return result(errs)
}

func (s *SpecificUnitsStrategy) Calculate(total domain.Money, units []UnitInput, opts Options) (*Result, error) {
	if err := s.Validate(units).Err(); err != nil {
		return nil, err
	}

	allocated := domain.ZeroMoney(total.Currency())
	items := make([]ResultItem, 0, len(units))

	for _, unit := range units {
		items = append(items, ResultItem{
			UnitID:         unit.UnitID,
			UnitIdentifier: unit.UnitIdentifier,
			Allocated:      *unit.FixedAmount,
		})

		var err error

		allocated, err = allocated.Add(*unit.FixedAmount)
		if err != nil {
			return nil, err
		}
	}

	if !allocated.Equal(total) {
		return nil, &domain.AllocationError{
			Reason: fmt.Sprintf("sum of fixed amounts (%s) does not equal total amount (%s)", allocated, total),
		}
	}

	return &Result{
		TotalAmount: total,
		Items:       items,
		Remainder:   domain.ZeroMoney(total.Currency()),
	}, nil
}
