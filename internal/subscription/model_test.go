package subscription

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/plan"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestChargeForCycle(t *testing.T) {
	maint := dec("5.00")
	p := &plan.MembershipPlan{
		BasePrice:      dec("50.00"),
		SignupFee:      dec("25.00"),
		MaintenanceFee: &maint,
	}
	// Closed with a 20% promotion plus a 2-month free grant stacked on.
	s := &Subscription{
		FirstCycleCharge: dec("40.00"),
		WaivedCycles:     2,
	}

	tests := []struct {
		cycle int
		want  string
	}{
		{1, "65.00"}, // discounted price + signup fee
		{2, "0"},     // waived
		{3, "0"},     // waived
		{4, "55.00"}, // base price + maintenance fee
		{12, "55.00"},
	}
	for _, tt := range tests {
		got := s.ChargeForCycle(p, tt.cycle)
		if !got.Equal(dec(tt.want)) {
			t.Errorf("ChargeForCycle(%d) = %s, want %s", tt.cycle, got, tt.want)
		}
	}
}

func TestChargeForCycleNoWaivers(t *testing.T) {
	p := &plan.MembershipPlan{BasePrice: dec("50.00"), SignupFee: dec("0")}
	s := &Subscription{FirstCycleCharge: dec("50.00")}

	if got := s.ChargeForCycle(p, 1); !got.Equal(dec("50.00")) {
		t.Errorf("cycle 1 = %s, want 50.00", got)
	}
	if got := s.ChargeForCycle(p, 2); !got.Equal(dec("50.00")) {
		t.Errorf("cycle 2 = %s, want 50.00", got)
	}
	if got := s.ChargeForCycle(p, 0); !got.IsZero() {
		t.Errorf("cycle 0 = %s, want 0", got)
	}
}
