package commission

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var asOf = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSelectRulePrecedence(t *testing.T) {
	assignments := []SalespersonAssignment{
		{
			ID: 10, SalespersonID: 7, CommissionType: TypePercentage,
			CommissionValue: dec("15"), RevenueBasis: BasisFinalCharge, IsActive: true,
		},
	}
	defaults := []CommissionRule{
		{
			ID: 1, CommissionType: TypePercentage,
			CommissionValue: dec("10"), RevenueBasis: BasisFinalCharge, IsActive: true,
		},
	}

	// Assignment wins over the org default.
	got, err := SelectRule(assignments, defaults, 7, TypePercentage, asOf)
	if err != nil {
		t.Fatalf("SelectRule() error = %v", err)
	}
	if got == nil || got.Source != SourceAssignment || got.RuleID != 10 {
		t.Fatalf("SelectRule() = %+v, want assignment 10", got)
	}
	if !got.Value.Equal(dec("15")) {
		t.Errorf("Value = %s, want 15", got.Value)
	}

	// Another salesperson falls back to the org default.
	got, err = SelectRule(assignments, defaults, 8, TypePercentage, asOf)
	if err != nil {
		t.Fatalf("SelectRule() error = %v", err)
	}
	if got == nil || got.Source != SourceOrgDefault || got.RuleID != 1 {
		t.Fatalf("SelectRule() = %+v, want org default 1", got)
	}

	// No rule for this type anywhere: nil, nil.
	got, err = SelectRule(assignments, defaults, 7, TypeFlatAmount, asOf)
	if err != nil {
		t.Fatalf("SelectRule() error = %v", err)
	}
	if got != nil {
		t.Fatalf("SelectRule() = %+v, want nil (zero commission)", got)
	}
}

func TestSelectRuleSkipsInactiveAndOutOfWindow(t *testing.T) {
	past := asOf.Add(-48 * time.Hour)
	longAgo := asOf.Add(-30 * 24 * time.Hour)
	future := asOf.Add(48 * time.Hour)

	assignments := []SalespersonAssignment{
		{ID: 1, SalespersonID: 7, CommissionType: TypePercentage, CommissionValue: dec("20"), IsActive: false},
		{ID: 2, SalespersonID: 7, CommissionType: TypePercentage, CommissionValue: dec("25"), IsActive: true,
			EffectiveDate: &longAgo, ExpiryDate: &past},
		{ID: 3, SalespersonID: 7, CommissionType: TypePercentage, CommissionValue: dec("30"), IsActive: true,
			EffectiveDate: &future},
	}
	got, err := SelectRule(assignments, nil, 7, TypePercentage, asOf)
	if err != nil {
		t.Fatalf("SelectRule() error = %v", err)
	}
	if got != nil {
		t.Fatalf("SelectRule() = %+v, want nil (all candidates inactive or outside window)", got)
	}
}

func TestSelectRuleAmbiguousAssignments(t *testing.T) {
	assignments := []SalespersonAssignment{
		{ID: 1, SalespersonID: 7, CommissionType: TypePercentage, CommissionValue: dec("10"), IsActive: true},
		{ID: 2, SalespersonID: 7, CommissionType: TypePercentage, CommissionValue: dec("12"), IsActive: true},
	}
	_, err := SelectRule(assignments, nil, 7, TypePercentage, asOf)
	var amb *AmbiguousRuleError
	if !errors.As(err, &amb) {
		t.Fatalf("SelectRule() error = %v, want AmbiguousRuleError", err)
	}
	if len(amb.RuleIDs) != 2 {
		t.Errorf("RuleIDs = %v, want both conflicting IDs", amb.RuleIDs)
	}
}

func TestSelectRuleAmbiguousDefaults(t *testing.T) {
	defaults := []CommissionRule{
		{ID: 1, CommissionType: TypeFlatAmount, CommissionValue: dec("25"), IsActive: true},
		{ID: 2, CommissionType: TypeFlatAmount, CommissionValue: dec("40"), IsActive: true},
	}
	_, err := SelectRule(nil, defaults, 7, TypeFlatAmount, asOf)
	var amb *AmbiguousRuleError
	if !errors.As(err, &amb) {
		t.Fatalf("SelectRule() error = %v, want AmbiguousRuleError", err)
	}
}

func TestWindowContainsInclusiveBounds(t *testing.T) {
	from := asOf
	until := asOf
	if !windowContains(&from, &until, asOf) {
		t.Error("windowContains should treat both bounds as inclusive")
	}
}
