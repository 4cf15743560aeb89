// Package allocation distributes a total cost across units using pluggable
// strategies. Every strategy guarantees that the allocated amounts sum to
// the total exactly: independent truncation shortfalls are folded into a
// single item per the remainder option.
package allocation

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

// Validation error codes for strategy inputs.
const (
	CodeEmptyUnits          = "EMPTY_UNITS"
	CodeInvalidShares       = "INVALID_SHARES"
	CodeInvalidTotalShares  = "INVALID_TOTAL_SHARES"
	CodeMissingUsageValue   = "MISSING_USAGE_VALUE"
	CodeNegativeUsageValue  = "NEGATIVE_USAGE_VALUE"
	CodeInvalidTotalUsage   = "INVALID_TOTAL_USAGE"
	CodeMissingFixedAmount  = "MISSING_FIXED_AMOUNT"
	CodeNegativeFixedAmount = "NEGATIVE_FIXED_AMOUNT"
)

// Remainder targets. Anything else is treated as an explicit unit ID and
// falls back to the first item when not found.
const (
	RemainderFirst   = "first"
	RemainderLargest = "largest"
)

// UnitInput is one unit's worth of strategy input.
type UnitInput struct {
	UnitID          domain.UnitID
	UnitIdentifier  string
	OwnershipShares decimal.Decimal
	UsageValue      *decimal.Decimal
	FixedAmount     *domain.Money
}

// ResultItem is one unit's allocated amount with the basis that produced it.
type ResultItem struct {
	UnitID         domain.UnitID
	UnitIdentifier string
	ShareValue     *decimal.Decimal
	UsageValue     *decimal.Decimal
	Allocated      domain.Money
}

// Result is a completed allocation. After remainder handling the Remainder
// field is always zero; RemainderUnitID names the unit that absorbed it,
// empty when the truncated shares already summed to the total.
type Result struct {
	TotalAmount     domain.Money
	Items           []ResultItem
	Remainder       domain.Money
	RemainderUnitID domain.UnitID
}

// Options tune rounding and remainder placement.
type Options struct {
	// Precision is the decimal-place count shares are truncated to.
	// Zero means the default of 2.
	Precision int32
	// ApplyRemainderTo is RemainderFirst (default), RemainderLargest, or
	// an explicit unit ID.
	ApplyRemainderTo string
}

func (o Options) precision() int32 {
	if o.Precision <= 0 {
		return 2
	}

	return o.Precision
}

// Strategy is one cost-distribution algorithm.
type Strategy interface {
	// Type is the registry key, e.g. "by_share".
	Type() string
	Name() string
	Description() string

	// Validate checks the unit inputs; expected input problems come back
	// in the result, never as an error.
	Validate(units []UnitInput) domain.ValidationResult

	// Calculate distributes total across units. Invalid input fails with
	// *domain.ValidationError; calculation-time invariant violations with
	// *domain.AllocationError.
	Calculate(total domain.Money, units []UnitInput, opts Options) (*Result, error)
}

// Registry maps strategy types to implementations. Registration normally
// happens at setup; reads are safe concurrently with late registration.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry returns a registry preloaded with the built-in strategies.
func NewRegistry() *Registry {
	r := &Registry{strategies: make(map[string]Strategy)}

	for _, s := range []Strategy{
		&FlatStrategy{},
		&ByShareStrategy{},
		&ByUsageStrategy{},
		&SpecificUnitsStrategy{},
	} {
		r.Register(s)
	}

	return r
}

// Register adds or replaces a strategy under its type.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.strategies[s.Type()] = s
}

// Get looks up a strategy by type.
func (r *Registry) Get(strategyType string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.strategies[strategyType]

	return s, ok
}

// All returns every registered strategy, sorted by type.
func (r *Registry) All() []Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Strategy, 0, len(r.strategies))
	for _, s := range r.strategies {
		all = append(all, s)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Type() < all[j].Type() })

	return all
}

// applyRemainder folds the truncation shortfall (total - sum of items) into
// one item and returns that unit's ID. basis supplies the per-item value
// used by the "largest" target; a nil basis means all items rank equal, so
// "largest" resolves to the first item.
func applyRemainder(total domain.Money, items []ResultItem, opts Options, basis func(ResultItem) decimal.Decimal) (domain.UnitID, error) {
	allocated := domain.ZeroMoney(total.Currency())

	for _, item := range items {
		var err error

		allocated, err = allocated.Add(item.Allocated)
		if err != nil {
			return "", err
		}
	}

	remainder, err := total.Sub(allocated)
	if err != nil {
		return "", err
	}

	if remainder.IsZero() {
		return "", nil
	}

	target := 0

	switch opts.ApplyRemainderTo {
	case "", RemainderFirst:
	case RemainderLargest:
		if basis != nil {
			for i := 1; i < len(items); i++ {
				if basis(items[i]).GreaterThan(basis(items[target])) {
					target = i
				}
			}
		}
	default:
		for i, item := range items {
			if item.UnitID == domain.UnitID(opts.ApplyRemainderTo) {
				target = i

				break
			}
		}
	}

	adjusted, err := items[target].Allocated.Add(remainder)
	if err != nil {
		return "", err
	}

	items[target].Allocated = adjusted

	return items[target].UnitID, nil
}

func validateNonEmpty(units []UnitInput) []domain.FieldError {
	if len(units) == 0 {
		return []domain.FieldError{{
			Field:   "units",
			Message: "at least one unit is required",
			Code:    CodeEmptyUnits,
		}}
	}

	return nil
}

func result(errs []domain.FieldError) domain.ValidationResult {
	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
