package allocation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/hausledger/internal/domain"
)

func eur(t *testing.T, s string) domain.Money {
	t.Helper()

	m, err := domain.NewMoney(s, "EUR")
	if err != nil {
		t.Fatalf("bad amount %q: %v", s, err)
	}

	return m
}

func sharesUnits(shares ...int64) []UnitInput {
	units := make([]UnitInput, 0, len(shares))
	for i, s := range shares {
		units = append(units, UnitInput{
			UnitID:          domain.UnitID(rune('a' + i)),
			UnitIdentifier:  string(rune('A' + i)),
			OwnershipShares: decimal.NewFromInt(s),
		})
	}

	return units
}

func sumItems(t *testing.T, result *Result) domain.Money {
	t.Helper()

	sum := domain.ZeroMoney("EUR")
	for _, item := range result.Items {
		var err error

		sum, err = sum.Add(item.Allocated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	return sum
}

func assertAllocations(t *testing.T, result *Result, want []string) {
	t.Helper()

	if len(result.Items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(result.Items))
	}

	for i, item := range result.Items {
		if item.Allocated.String() != want[i] {
			t.Errorf("item %d: expected %s, got %s", i, want[i], item.Allocated)
		}
	}

	if sum := sumItems(t, result); !sum.Equal(result.TotalAmount) {
		t.Errorf("items sum to %s, total is %s", sum, result.TotalAmount)
	}

	if !result.Remainder.IsZero() {
		t.Errorf("expected zero remainder after adjustment, got %s", result.Remainder)
	}
}

func TestFlatStrategy(t *testing.T) {
	s := &FlatStrategy{}

	tests := []struct {
		name       string
		total      string
		unitCount  int
		opts       Options
		want       []string
		wantTarget domain.UnitID
	}{
		{
			name:      "even split",
			total:     "100.00",
			unitCount: 4,
			want:      []string{"25.00", "25.00", "25.00", "25.00"},
		},
		{
			name:       "indivisible total",
			total:      "100.00",
			unitCount:  3,
			want:       []string{"33.34", "33.33", "33.33"},
			wantTarget: "a",
		},
		{
			name:       "largest ties resolve to first",
			total:      "100.00",
			unitCount:  3,
			opts:       Options{ApplyRemainderTo: RemainderLargest},
			want:       []string{"33.34", "33.33", "33.33"},
			wantTarget: "a",
		},
		{
			name:       "explicit remainder unit",
			total:      "100.00",
			unitCount:  3,
			opts:       Options{ApplyRemainderTo: "c"},
			want:       []string{"33.33", "33.33", "33.34"},
			wantTarget: "c",
		},
		{
			name:       "unknown remainder unit falls back to first",
			total:      "100.00",
			unitCount:  3,
			opts:       Options{ApplyRemainderTo: "nope"},
			want:       []string{"33.34", "33.33", "33.33"},
			wantTarget: "a",
		},
		{
			name:      "single unit takes everything",
			total:     "99.99",
			unitCount: 1,
			want:      []string{"99.99"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := sharesUnits(make([]int64, tt.unitCount)...)
			for i := range units {
				units[i].OwnershipShares = decimal.NewFromInt(100)
			}

			result, err := s.Calculate(eur(t, tt.total), units, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			assertAllocations(t, result, tt.want)

			if result.RemainderUnitID != tt.wantTarget {
				t.Errorf("expected remainder on %q, got %q", tt.wantTarget, result.RemainderUnitID)
			}
		})
	}

	t.Run("no units", func(t *testing.T) {
		_, err := s.Calculate(eur(t, "100.00"), nil, Options{})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
		}
	})
}

func TestByShareStrategy(t *testing.T) {
	s := &ByShareStrategy{}

	t.Run("proportional split", func(t *testing.T) {
		result, err := s.Calculate(eur(t, "1000.00"), sharesUnits(500, 300, 200), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"500.00", "300.00", "200.00"})

		if result.RemainderUnitID != "" {
			t.Errorf("exact split should have no remainder target, got %q", result.RemainderUnitID)
		}
	})

	t.Run("equal thirds remainder to first", func(t *testing.T) {
		result, err := s.Calculate(eur(t, "100.00"), sharesUnits(100, 100, 100), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"33.34", "33.33", "33.33"})
	})

	t.Run("remainder to largest share", func(t *testing.T) {
		result, err := s.Calculate(eur(t, "100.00"), sharesUnits(1, 2, 4), Options{ApplyRemainderTo: RemainderLargest})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"14.28", "28.57", "57.15"})

		if result.RemainderUnitID != "c" {
			t.Errorf("remainder should land on the largest share, got %q", result.RemainderUnitID)
		}
	})

	t.Run("basis recorded per item", func(t *testing.T) {
		result, err := s.Calculate(eur(t, "100.00"), sharesUnits(400, 600), Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Items[0].ShareValue == nil || !result.Items[0].ShareValue.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected share value 400 on first item, got %v", result.Items[0].ShareValue)
		}
	})

	t.Run("zero total shares", func(t *testing.T) {
		_, err := s.Calculate(eur(t, "100.00"), sharesUnits(0, 0), Options{})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
		}
		codes := map[string]bool{}
		for _, fe := range verr.Errors {
			codes[fe.Code] = true
		}
		if !codes[CodeInvalidTotalShares] || !codes[CodeInvalidShares] {
			t.Errorf("expected both total and per-unit share errors, got %+v", verr.Errors)
		}
	})
}

func TestByUsageStrategy(t *testing.T) {
	s := &ByUsageStrategy{}

	usage := func(v string) *decimal.Decimal {
		d := decimal.RequireFromString(v)
		return &d
	}

	t.Run("proportional to usage", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", UsageValue: usage("75")},
			{UnitID: "b", UnitIdentifier: "B", UsageValue: usage("25")},
		}

		result, err := s.Calculate(eur(t, "200.00"), units, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"150.00", "50.00"})
	})

	t.Run("zero usage unit gets nothing", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", UsageValue: usage("0")},
			{UnitID: "b", UnitIdentifier: "B", UsageValue: usage("50")},
		}

		result, err := s.Calculate(eur(t, "80.00"), units, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"0.00", "80.00"})
	})

	t.Run("missing usage value", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", UsageValue: usage("10")},
			{UnitID: "b", UnitIdentifier: "B"},
		}

		_, err := s.Calculate(eur(t, "100.00"), units, Options{})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
		}
		if verr.Errors[0].Code != CodeMissingUsageValue {
			t.Errorf("expected %s, got %s", CodeMissingUsageValue, verr.Errors[0].Code)
		}
	})

	t.Run("negative usage value", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", UsageValue: usage("-10")},
			{UnitID: "b", UnitIdentifier: "B", UsageValue: usage("50")},
		}

		_, err := s.Calculate(eur(t, "100.00"), units, Options{})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestSpecificUnitsStrategy(t *testing.T) {
	s := &SpecificUnitsStrategy{}

	fixed := func(t *testing.T, v string) *domain.Money {
		m := eur(t, v)
		return &m
	}

	t.Run("exact sum accepted", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", FixedAmount: fixed(t, "30.00")},
			{UnitID: "b", UnitIdentifier: "B", FixedAmount: fixed(t, "20.00")},
		}

		result, err := s.Calculate(eur(t, "50.00"), units, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		assertAllocations(t, result, []string{"30.00", "20.00"})
	})

	t.Run("one cent short rejected", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", FixedAmount: fixed(t, "25.00")},
			{UnitID: "b", UnitIdentifier: "B", FixedAmount: fixed(t, "24.99")},
		}

		_, err := s.Calculate(eur(t, "50.00"), units, Options{})

		var aerr *domain.AllocationError
		if !errors.As(err, &aerr) {
			t.Fatalf("expected *domain.AllocationError, got %T: %v", err, err)
		}
	})

	t.Run("missing fixed amount", func(t *testing.T) {
		units := []UnitInput{
			{UnitID: "a", UnitIdentifier: "A", FixedAmount: fixed(t, "50.00")},
			{UnitID: "b", UnitIdentifier: "B"},
		}

		_, err := s.Calculate(eur(t, "50.00"), units, Options{})

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *domain.ValidationError, got %T: %v", err, err)
		}
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	for _, want := range []string{"flat", "by_share", "by_usage", "specific_units"} {
		if _, ok := r.Get(want); !ok {
			t.Errorf("expected built-in strategy %q", want)
		}
	}

	if _, ok := r.Get("by_moon_phase"); ok {
		t.Error("expected lookup miss for unknown strategy")
	}

	all := r.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 strategies, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Type() >= all[i].Type() {
			t.Errorf("All() must be sorted by type, got %s before %s", all[i-1].Type(), all[i].Type())
		}
	}
}
