// internal/commission/selector.go
package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rule sources, recorded on the resolved rule for audit.
const (
	SourceAssignment = "assignment"
	SourceOrgDefault = "orgDefault"
)

// Resolved is a selected rule normalized from either shape, ready for the
// allocator.
type Resolved struct {
	Source         string
	RuleID         uint
	SalespersonID  uint // zero when the org default was selected
	CommissionType string
	Value          decimal.Decimal
	RevenueBasis   string
	MinThreshold   *decimal.Decimal
	MaxCap         *decimal.Decimal
	DurationMonths *int
}

// SelectRule picks the rule governing a transaction. Precedence: an active
// per-salesperson assignment whose effective window contains asOf wins over
// the organization default for the same commission type. No applicable rule
// is a valid outcome (zero commission owed) and returns (nil, nil). More
// than one simultaneously applicable candidate at the same precedence level
// returns *AmbiguousRuleError.
func SelectRule(assignments []SalespersonAssignment, defaults []CommissionRule, salespersonID uint, commissionType string, asOf time.Time) (*Resolved, error) {
	var matched []SalespersonAssignment
	for _, a := range assignments {
		if a.SalespersonID != salespersonID || a.CommissionType != commissionType {
			continue
		}
		if !a.IsActive || !windowContains(a.EffectiveDate, a.ExpiryDate, asOf) {
			continue
		}
		matched = append(matched, a)
	}
	if len(matched) > 1 {
		ids := make([]uint, len(matched))
		for i, a := range matched {
			ids[i] = a.ID
		}
		return nil, &AmbiguousRuleError{SalespersonID: salespersonID, CommissionType: commissionType, RuleIDs: ids}
	}
	if len(matched) == 1 {
		a := matched[0]
		return &Resolved{
			Source:         SourceAssignment,
			RuleID:         a.ID,
			SalespersonID:  a.SalespersonID,
			CommissionType: a.CommissionType,
			Value:          a.CommissionValue,
			RevenueBasis:   a.RevenueBasis,
			MinThreshold:   a.MinThreshold,
			MaxCap:         a.MaxCap,
			DurationMonths: a.DurationMonths,
		}, nil
	}

	var candidates []CommissionRule
	for _, d := range defaults {
		if d.CommissionType != commissionType {
			continue
		}
		if !d.IsActive || !windowContains(d.EffectiveDate, d.ExpiryDate, asOf) {
			continue
		}
		candidates = append(candidates, d)
	}
	if len(candidates) > 1 {
		ids := make([]uint, len(candidates))
		for i, d := range candidates {
			ids[i] = d.ID
		}
		return nil, &AmbiguousRuleError{SalespersonID: salespersonID, CommissionType: commissionType, RuleIDs: ids}
	}
	if len(candidates) == 1 {
		d := candidates[0]
		return &Resolved{
			Source:         SourceOrgDefault,
			RuleID:         d.ID,
			CommissionType: d.CommissionType,
			Value:          d.CommissionValue,
			RevenueBasis:   d.RevenueBasis,
			MinThreshold:   d.MinThreshold,
			MaxCap:         d.MaxCap,
			DurationMonths: d.DurationMonths,
		}, nil
	}

	// No rule at all: zero commission owed, not an error.
	return nil, nil
}

// windowContains reports whether [from, until] contains asOf, with nil
// bounds open on that side. Both bounds are inclusive.
func windowContains(from, until *time.Time, asOf time.Time) bool {
	if from != nil && asOf.Before(*from) {
		return false
	}
	if until != nil && asOf.After(*until) {
		return false
	}
	return true
}
