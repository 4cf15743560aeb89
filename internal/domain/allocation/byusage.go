package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// ByUsageStrategy distributes a cost proportionally to measured usage
// (water consumption, heating units, ...).
type ByUsageStrategy struct{}

func (s *ByUsageStrategy) Type() string { return "by_usage" }
func (s *ByUsageStrategy) Name() string { return "By Usage" }

func (s *ByUsageStrategy) Description() string {
	return "Distributes costs proportionally to usage values (e.g., water, heating)"
}

func (s *ByUsageStrategy) Validate(units []UnitInput) domain.ValidationResult {
	if errs := validateNonEmpty(units); errs != nil {
		return result(errs)
	}

	var errs []domain.FieldError

	totalUsage := decimal.Zero

	for _, unit := range units {
		switch {
		case unit.UsageValue == nil:
			errs = append(errs, domain.FieldError{
				Field:   "usageValue",
				Message: fmt.Sprintf("unit %s is missing usage value", unit.UnitIdentifier),
				Code:    CodeMissingUsageValue,
			})
		case unit.UsageValue.IsNegative():
			errs = append(errs, domain.FieldError{
				Field:   "usageValue",
				Message: fmt.Sprintf("unit %s has negative usage value: %s", unit.UnitIdentifier, unit.UsageValue),
				Code:    CodeNegativeUsageValue,
			})
		default:
			totalUsage = totalUsage.Add(*unit.UsageValue)
		}
	}

	if !totalUsage.IsPositive() {
		errs = append(errs, domain.FieldError{
			Field:   "usageValue",
			Message: "total usage must be greater than zero",
			Code:    CodeInvalidTotalUsage,
		})
	}

	return result(errs)
}

func (s *ByUsageStrategy) Calculate(total domain.Money, units []UnitInput, opts Options) (*Result, error) {
	if err := s.Validate(units).Err(); err != nil {
		return nil, err
	}

	totalUsage := decimal.Zero
	for _, unit := range units {
		totalUsage = totalUsage.Add(*unit.UsageValue)
	}

	items := make([]ResultItem, 0, len(units))

	for _, unit := range units {
		usage := *unit.UsageValue
		ratio := usage.Div(totalUsage)

		items = append(items, ResultItem{
			UnitID:         unit.UnitID,
			UnitIdentifier: unit.UnitIdentifier,
			UsageValue:     &usage,
			Allocated:      total.Mul(ratio).Round(opts.precision(), domain.RoundDown),
		})
	}

	remainderUnit, err := applyRemainder(total, items, opts, func(item ResultItem) decimal.Decimal {
		return *item.UsageValue
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
