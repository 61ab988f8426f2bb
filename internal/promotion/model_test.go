package promotion

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestAppliesTo(t *testing.T) {
	now := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	past := now.Add(-30 * 24 * time.Hour)
	future := now.Add(30 * 24 * time.Hour)
	five := 5

	tests := []struct {
		name   string
		promo  Promotion
		planID uint
		want   bool
	}{
		{
			name:   "empty plan list applies to every plan",
			promo:  Promotion{IsActive: true},
			planID: 42,
			want:   true,
		},
		{
			name:   "listed plan applies",
			promo:  Promotion{IsActive: true, ApplicablePlans: []uint{1, 2, 3}},
			planID: 2,
			want:   true,
		},
		{
			name:   "unlisted plan does not apply",
			promo:  Promotion{IsActive: true, ApplicablePlans: []uint{1, 2, 3}},
			planID: 9,
			want:   false,
		},
		{
			name:   "inactive never applies",
			promo:  Promotion{IsActive: false},
			planID: 1,
			want:   false,
		},
		{
			name:   "expired window",
			promo:  Promotion{IsActive: true, ValidUntil: &past},
			planID: 1,
			want:   false,
		},
		{
			name:   "not yet started",
			promo:  Promotion{IsActive: true, ValidFrom: &future},
			planID: 1,
			want:   false,
		},
		{
			name:   "inside window",
			promo:  Promotion{IsActive: true, ValidFrom: &past, ValidUntil: &future},
			planID: 1,
			want:   true,
		},
		{
			name:   "usage cap exhausted",
			promo:  Promotion{IsActive: true, MaxUses: &five, CurrentUses: 5},
			planID: 1,
			want:   false,
		},
		{
			name:   "usage cap with room",
			promo:  Promotion{IsActive: true, MaxUses: &five, CurrentUses: 4},
			planID: 1,
			want:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.promo.AppliesTo(tt.planID, now); got != tt.want {
				t.Errorf("AppliesTo() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidDiscountType(t *testing.T) {
	for _, s := range []string{DiscountPercentage, DiscountFixedAmount, DiscountFreeMonths} {
		if !ValidDiscountType(s) {
			t.Errorf("ValidDiscountType(%q) = false", s)
		}
	}
	if ValidDiscountType("bogo") {
		t.Error("ValidDiscountType(bogo) = true")
	}
}

func TestCheckValue(t *testing.T) {
	tests := []struct {
		discountType string
		value        string
		wantErr      bool
	}{
		{DiscountPercentage, "20", false},
		{DiscountPercentage, "100", false},
		{DiscountPercentage, "101", true},
		{DiscountPercentage, "-1", true},
		{DiscountFixedAmount, "30", false},
		{DiscountFixedAmount, "-0.01", true},
		{DiscountFreeMonths, "2", false},
		{DiscountFreeMonths, "0", true},
		{DiscountFreeMonths, "1.5", true},
	}
	for _, tt := range tests {
		msg := checkValue(tt.discountType, decimal.RequireFromString(tt.value))
		if (msg != "") != tt.wantErr {
			t.Errorf("checkValue(%s, %s) = %q, wantErr=%v", tt.discountType, tt.value, msg, tt.wantErr)
		}
	}
}
