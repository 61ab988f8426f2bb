// internal/commission/allocator.go
package commission

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/money"
)

// Outcome is the result of allocating one commission. A zero amount can
// mean either "computed to zero" (threshold not met, duration exhausted)
// or "no rule configured"; NoRule distinguishes the configuration gap so
// callers never conflate it with an error or a computed zero.
type Outcome struct {
	Amount         decimal.Decimal
	BaseAmount     decimal.Decimal
	Percentage     decimal.Decimal // zero for flat-amount rules
	CommissionType string
	NoRule         bool
}

// Allocate computes the commission a resolved rule yields on a revenue
// basis amount for one billing cycle. cycleIndex is 1-based, counted from
// the conversion's first billing cycle. A nil rule yields the NoRule
// outcome.
func Allocate(rule *Resolved, revenueBasis decimal.Decimal, cycleIndex int) (Outcome, error) {
	if rule == nil {
		return Outcome{Amount: money.Zero, BaseAmount: money.Cents(revenueBasis), NoRule: true}, nil
	}
	if cycleIndex < 1 {
		return Outcome{}, &ValidationError{Field: "cycleIndex", Reason: "must be at least 1"}
	}
	if revenueBasis.IsNegative() {
		return Outcome{}, &ValidationError{Field: "revenueBasis", Reason: "must not be negative"}
	}

	out := Outcome{
		BaseAmount:     money.Cents(revenueBasis),
		CommissionType: rule.CommissionType,
	}
	if rule.CommissionType == TypePercentage {
		out.Percentage = rule.Value
	}

	// Recurring commissions stop paying past their eligible window.
	if rule.DurationMonths != nil && cycleIndex > *rule.DurationMonths {
		out.Amount = money.Zero
		return out, nil
	}

	// Below the threshold the sale does not qualify at all.
	if rule.MinThreshold != nil && revenueBasis.LessThan(*rule.MinThreshold) {
		out.Amount = money.Zero
		return out, nil
	}

	var amount decimal.Decimal
	switch rule.CommissionType {
	case TypePercentage:
		amount = money.Percent(revenueBasis, rule.Value)
	case TypeFlatAmount:
		amount = rule.Value
	default:
		return Outcome{}, &ValidationError{Field: "commissionType", Reason: "unknown type " + rule.CommissionType}
	}

	if rule.MaxCap != nil {
		amount = money.Min(amount, *rule.MaxCap)
	}

	out.Amount = money.Cents(amount)
	return out, nil
}

// Share is one participant in a split commission.
type Share struct {
	SalespersonID uint            `json:"salespersonId" validate:"required"`
	SharePercent  decimal.Decimal `json:"sharePercent"`
}

// SplitAmount is one salesperson's slice of a split commission.
type SplitAmount struct {
	SalespersonID uint            `json:"salespersonId"`
	Amount        decimal.Decimal `json:"amount"`
}

// ValidateShares rejects a split whose shares do not sum to exactly 100,
// contain non-positive values, or repeat a salesperson. Violations are
// validation failures, never silently renormalized.
func ValidateShares(shares []Share) error {
	if len(shares) == 0 {
		return &ValidationError{Field: "shares", Reason: "at least one share required"}
	}
	seen := make(map[uint]bool, len(shares))
	sum := decimal.Zero
	for _, s := range shares {
		if s.SharePercent.LessThanOrEqual(decimal.Zero) {
			return &ValidationError{Field: "shares", Reason: "share percentages must be positive"}
		}
		if seen[s.SalespersonID] {
			return &ValidationError{Field: "shares", Reason: "duplicate salesperson in split"}
		}
		seen[s.SalespersonID] = true
		sum = sum.Add(s.SharePercent)
	}
	if !sum.Equal(decimal.NewFromInt(100)) {
		return &ValidationError{Field: "shares", Reason: "share percentages must sum to exactly 100, got " + sum.String()}
	}
	return nil
}

// AllocateSplit distributes one computed commission amount across the
// split's shares. Each line is rounded to cents; the rounding remainder
// (possibly negative) is assigned to the largest share so that the lines
// always sum to the original amount to the cent. Ties on share size break
// toward the lowest salesperson ID.
func AllocateSplit(amount decimal.Decimal, shares []Share) ([]SplitAmount, error) {
	if err := ValidateShares(shares); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	total := money.Cents(amount)
	out := make([]SplitAmount, len(shares))
	allocated := decimal.Zero
	for i, s := range shares {
		line := money.Cents(money.Percent(total, s.SharePercent))
		out[i] = SplitAmount{SalespersonID: s.SalespersonID, Amount: line}
		allocated = allocated.Add(line)
	}

	remainder := total.Sub(allocated)
	if !remainder.IsZero() {
		idx := 0
		for i := 1; i < len(shares); i++ {
			switch shares[i].SharePercent.Cmp(shares[idx].SharePercent) {
			case 1:
				idx = i
			case 0:
				if shares[i].SalespersonID < shares[idx].SalespersonID {
					idx = i
				}
			}
		}
		out[idx].Amount = out[idx].Amount.Add(remainder)
	}

	// Stable output order for ledger writes and tests.
	sort.SliceStable(out, func(i, j int) bool { return out[i].SalespersonID < out[j].SalespersonID })
	return out, nil
}
