package conversion

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/commission"
	"github.com/repclub/revenue-api/internal/plan"
	"github.com/repclub/revenue-api/internal/promotion"
)

var asOf = time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decp(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testPlan(price string) *plan.MembershipPlan {
	return &plan.MembershipPlan{ID: 1, BasePrice: dec(price)}
}

func TestComputeDiscountFeedsFinalChargeBasis(t *testing.T) {
	p := testPlan("100.00")
	promo := &promotion.Promotion{
		IsActive:      true,
		DiscountType:  promotion.DiscountPercentage,
		DiscountValue: dec("20"),
	}
	defaults := []commission.CommissionRule{{
		ID: 1, CommissionType: commission.TypePercentage,
		CommissionValue: dec("10"), RevenueBasis: commission.BasisFinalCharge, IsActive: true,
	}}
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypePercentage}

	comp, err := Compute(p, promo, nil, defaults, conv, 1, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !comp.Quote.FinalPrice.Equal(dec("80")) {
		t.Errorf("FinalPrice = %s, want 80", comp.Quote.FinalPrice)
	}
	if comp.Quote.DiscountLabel != "20% OFF" {
		t.Errorf("DiscountLabel = %q, want 20%% OFF", comp.Quote.DiscountLabel)
	}
	// 10% of the discounted 80, not of the base 100.
	if !comp.Outcome.Amount.Equal(dec("8")) {
		t.Errorf("commission = %s, want 8", comp.Outcome.Amount)
	}
}

func TestComputeBaseAmountBasisIgnoresDiscount(t *testing.T) {
	p := testPlan("100.00")
	promo := &promotion.Promotion{
		IsActive:      true,
		DiscountType:  promotion.DiscountFixedAmount,
		DiscountValue: dec("30"),
	}
	defaults := []commission.CommissionRule{{
		ID: 1, CommissionType: commission.TypePercentage,
		CommissionValue: dec("10"), RevenueBasis: commission.BasisBaseAmount, IsActive: true,
	}}
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypePercentage}

	comp, err := Compute(p, promo, nil, defaults, conv, 1, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !comp.Quote.FinalPrice.Equal(dec("70")) {
		t.Errorf("FinalPrice = %s, want 70", comp.Quote.FinalPrice)
	}
	// Commission on the pre-discount base.
	if !comp.Outcome.Amount.Equal(dec("10")) {
		t.Errorf("commission = %s, want 10", comp.Outcome.Amount)
	}
}

func TestComputeCustomBasis(t *testing.T) {
	p := testPlan("100.00")
	defaults := []commission.CommissionRule{{
		ID: 1, CommissionType: commission.TypePercentage,
		CommissionValue: dec("10"), RevenueBasis: commission.BasisCustom, IsActive: true,
	}}

	// Missing custom amount is a validation failure.
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypePercentage}
	_, err := Compute(p, nil, nil, defaults, conv, 1, asOf)
	var ve *commission.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Compute() error = %v, want ValidationError", err)
	}

	conv.CustomBasisAmount = decp("250.00")
	comp, err := Compute(p, nil, nil, defaults, conv, 1, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !comp.Outcome.Amount.Equal(dec("25")) {
		t.Errorf("commission = %s, want 25", comp.Outcome.Amount)
	}
}

func TestComputeNoRuleIsZeroNotError(t *testing.T) {
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypeFlatAmount}
	comp, err := Compute(testPlan("100.00"), nil, nil, nil, conv, 1, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !comp.Outcome.NoRule {
		t.Error("NoRule = false, want true")
	}
	if !comp.Outcome.Amount.IsZero() {
		t.Errorf("Amount = %s, want 0", comp.Outcome.Amount)
	}
	if comp.Splits != nil {
		t.Errorf("Splits = %v, want none", comp.Splits)
	}
}

func TestComputeSplitsSumToSinglePayeeAmount(t *testing.T) {
	p := testPlan("100.01")
	defaults := []commission.CommissionRule{{
		ID: 1, CommissionType: commission.TypePercentage,
		CommissionValue: dec("100"), RevenueBasis: commission.BasisFinalCharge, IsActive: true,
	}}
	conv := &Conversion{
		SalespersonID:  7,
		CommissionType: commission.TypePercentage,
		Splits: []commission.Share{
			{SalespersonID: 1, SharePercent: dec("60")},
			{SalespersonID: 2, SharePercent: dec("40")},
		},
	}

	comp, err := Compute(p, nil, nil, defaults, conv, 1, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	sum := decimal.Zero
	for _, s := range comp.Splits {
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(comp.Outcome.Amount) {
		t.Errorf("split sum = %s, single-payee amount = %s", sum, comp.Outcome.Amount)
	}
}

func TestComputeAmbiguousAssignmentsSurface(t *testing.T) {
	assignments := []commission.SalespersonAssignment{
		{ID: 1, SalespersonID: 7, CommissionType: commission.TypePercentage, CommissionValue: dec("10"), IsActive: true},
		{ID: 2, SalespersonID: 7, CommissionType: commission.TypePercentage, CommissionValue: dec("15"), IsActive: true},
	}
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypePercentage}
	_, err := Compute(testPlan("100.00"), nil, assignments, nil, conv, 1, asOf)
	var amb *commission.AmbiguousRuleError
	if !errors.As(err, &amb) {
		t.Fatalf("Compute() error = %v, want AmbiguousRuleError", err)
	}
}

func TestComputeRecurringCycleTruncation(t *testing.T) {
	duration := 12
	defaults := []commission.CommissionRule{{
		ID: 1, CommissionType: commission.TypePercentage,
		CommissionValue: dec("10"), RevenueBasis: commission.BasisFinalCharge,
		DurationMonths: &duration, IsActive: true,
	}}
	conv := &Conversion{SalespersonID: 7, CommissionType: commission.TypePercentage}

	comp, err := Compute(testPlan("100.00"), nil, nil, defaults, conv, 13, asOf)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if !comp.Outcome.Amount.IsZero() {
		t.Errorf("cycle 13 of a 12-month rule: amount = %s, want 0", comp.Outcome.Amount)
	}
}
