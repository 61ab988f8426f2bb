package commission

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
)

func intp(i int) *int { return &i }

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAllocate(t *testing.T) {
	tests := []struct {
		name       string
		rule       *Resolved
		basis      string
		cycleIndex int
		want       string
		wantNoRule bool
	}{
		{
			name:       "nil rule is a configuration gap, zero owed",
			rule:       nil,
			basis:      "500.00",
			cycleIndex: 1,
			want:       "0",
			wantNoRule: true,
		},
		{
			name:       "percentage of basis",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10")},
			basis:      "80.00",
			cycleIndex: 1,
			want:       "8",
		},
		{
			name:       "flat amount ignores basis",
			rule:       &Resolved{CommissionType: TypeFlatAmount, Value: dec("25")},
			basis:      "9999.00",
			cycleIndex: 1,
			want:       "25",
		},
		{
			name:       "cap clamps percentage",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10"), MaxCap: decp("50.00")},
			basis:      "1000.00",
			cycleIndex: 1,
			want:       "50",
		},
		{
			name:       "cap clamps flat amount too",
			rule:       &Resolved{CommissionType: TypeFlatAmount, Value: dec("75"), MaxCap: decp("50.00")},
			basis:      "100.00",
			cycleIndex: 1,
			want:       "50",
		},
		{
			name:       "below threshold does not qualify",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10"), MinThreshold: decp("100.00")},
			basis:      "99.99",
			cycleIndex: 1,
			want:       "0",
		},
		{
			name:       "at threshold qualifies",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10"), MinThreshold: decp("100.00")},
			basis:      "100.00",
			cycleIndex: 1,
			want:       "10",
		},
		{
			name:       "inside recurring window",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10"), DurationMonths: intp(12)},
			basis:      "100.00",
			cycleIndex: 12,
			want:       "10",
		},
		{
			name:       "past recurring window",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("10"), DurationMonths: intp(12)},
			basis:      "100.00",
			cycleIndex: 13,
			want:       "0",
		},
		{
			name:       "percentage rounds to cents",
			rule:       &Resolved{CommissionType: TypePercentage, Value: dec("7.5")},
			basis:      "33.33",
			cycleIndex: 1,
			// 33.33 * 0.075 = 2.49975 → 2.50
			want: "2.50",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Allocate(tt.rule, dec(tt.basis), tt.cycleIndex)
			if err != nil {
				t.Fatalf("Allocate() error = %v", err)
			}
			if !got.Amount.Equal(dec(tt.want)) {
				t.Errorf("Amount = %s, want %s", got.Amount, tt.want)
			}
			if got.NoRule != tt.wantNoRule {
				t.Errorf("NoRule = %v, want %v", got.NoRule, tt.wantNoRule)
			}
		})
	}
}

func TestAllocateRejectsBadInput(t *testing.T) {
	rule := &Resolved{CommissionType: TypePercentage, Value: dec("10")}
	var ve *ValidationError

	if _, err := Allocate(rule, dec("-1"), 1); !errors.As(err, &ve) {
		t.Errorf("negative basis: error = %v, want ValidationError", err)
	}
	if _, err := Allocate(rule, dec("100"), 0); !errors.As(err, &ve) {
		t.Errorf("zero cycle index: error = %v, want ValidationError", err)
	}
}

func TestAllocateSplit(t *testing.T) {
	shares := []Share{
		{SalespersonID: 1, SharePercent: dec("60")},
		{SalespersonID: 2, SharePercent: dec("40")},
	}

	// 60% of 100.01 = 60.006 → 60.01, 40% = 40.004 → 40.00; sum already exact.
	got, err := AllocateSplit(dec("100.01"), shares)
	if err != nil {
		t.Fatalf("AllocateSplit() error = %v", err)
	}
	if !got[0].Amount.Equal(dec("60.01")) || !got[1].Amount.Equal(dec("40.00")) {
		t.Errorf("split = %s / %s, want 60.01 / 40.00", got[0].Amount, got[1].Amount)
	}
	sum := got[0].Amount.Add(got[1].Amount)
	if !sum.Equal(dec("100.01")) {
		t.Errorf("sum = %s, want 100.01", sum)
	}
}

func TestAllocateSplitRemainderToLargestShare(t *testing.T) {
	// Three-way third split of 100: lines round to 33.33 each, remainder
	// 0.01 goes to the largest share; on this even split, to the lowest ID.
	shares := []Share{
		{SalespersonID: 3, SharePercent: dec("33.34")},
		{SalespersonID: 1, SharePercent: dec("33.33")},
		{SalespersonID: 2, SharePercent: dec("33.33")},
	}
	got, err := AllocateSplit(dec("100.00"), shares)
	if err != nil {
		t.Fatalf("AllocateSplit() error = %v", err)
	}
	byID := map[uint]decimal.Decimal{}
	sum := decimal.Zero
	for _, s := range got {
		byID[s.SalespersonID] = s.Amount
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(dec("100.00")) {
		t.Fatalf("sum = %s, want 100.00", sum)
	}
	// 33.34% line rounds to 33.34, the others to 33.33; remainder 0 here.
	if !byID[3].Equal(dec("33.34")) {
		t.Errorf("largest share got %s, want 33.34", byID[3])
	}

	// Equal shares, remainder tie-break: lowest salesperson ID.
	even := []Share{
		{SalespersonID: 9, SharePercent: dec("50")},
		{SalespersonID: 4, SharePercent: dec("50")},
	}
	got, err = AllocateSplit(dec("0.01"), even)
	if err != nil {
		t.Fatalf("AllocateSplit() error = %v", err)
	}
	byID = map[uint]decimal.Decimal{}
	for _, s := range got {
		byID[s.SalespersonID] = s.Amount
	}
	// Each line rounds 0.005 up to 0.01, remainder -0.01 lands on ID 4.
	if !byID[4].Equal(dec("0.00")) || !byID[9].Equal(dec("0.01")) {
		t.Errorf("tie-break split = %s / %s, want 0.00 (id 4) / 0.01 (id 9)", byID[4], byID[9])
	}
}

func TestAllocateSplitSumPreserved(t *testing.T) {
	// Sum preservation across magnitudes from a cent to a million dollars,
	// with awkward share sets.
	shareSets := [][]Share{
		{{1, dec("60")}, {2, dec("40")}},
		{{1, dec("33.33")}, {2, dec("33.33")}, {3, dec("33.34")}},
		{{1, dec("99.99")}, {2, dec("0.01")}},
		{{1, dec("12.5")}, {2, dec("12.5")}, {3, dec("25")}, {4, dec("50")}},
	}
	rng := rand.New(rand.NewSource(1))
	amounts := []string{"0.01", "0.03", "1.00", "99.99", "1234.56", "1000000.00"}
	for i := 0; i < 50; i++ {
		amounts = append(amounts, decimal.NewFromInt(rng.Int63n(100000000)).Div(dec("100")).StringFixed(2))
	}

	for _, shares := range shareSets {
		for _, a := range amounts {
			amount := dec(a)
			got, err := AllocateSplit(amount, shares)
			if err != nil {
				t.Fatalf("AllocateSplit(%s) error = %v", a, err)
			}
			sum := decimal.Zero
			for _, s := range got {
				sum = sum.Add(s.Amount)
			}
			if !sum.Equal(amount) {
				t.Fatalf("AllocateSplit(%s, %v): sum = %s, want %s", a, shares, sum, amount)
			}
		}
	}
}

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name    string
		shares  []Share
		wantErr bool
	}{
		{"exact hundred", []Share{{1, dec("60")}, {2, dec("40")}}, false},
		{"sum under", []Share{{1, dec("60")}, {2, dec("39.99")}}, true},
		{"sum over", []Share{{1, dec("60")}, {2, dec("40.01")}}, true},
		{"empty", nil, true},
		{"zero share", []Share{{1, dec("0")}, {2, dec("100")}}, true},
		{"negative share", []Share{{1, dec("-10")}, {2, dec("110")}}, true},
		{"duplicate salesperson", []Share{{1, dec("50")}, {1, dec("50")}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShares(tt.shares)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShares() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("error type = %T, want ValidationError", err)
				}
			}
		})
	}
}
