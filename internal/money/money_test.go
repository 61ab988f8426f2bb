package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCentsRoundsHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10.00"},
		{"10.015", "10.02"},
		{"0.125", "0.13"},
		{"99.999", "100.00"},
		{"42", "42.00"},
	}
	for _, tt := range tests {
		got := Format(decimal.RequireFromString(tt.in))
		if got != tt.want {
			t.Errorf("Cents(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	base := decimal.RequireFromString("80.00")
	got := Percent(base, decimal.RequireFromString("10"))
	if !got.Equal(decimal.RequireFromString("8")) {
		t.Errorf("Percent(80, 10) = %s, want 8", got)
	}
}

func TestClampFloorAndMin(t *testing.T) {
	neg := decimal.RequireFromString("-5")
	if got := ClampFloor(neg, Zero); !got.Equal(Zero) {
		t.Errorf("ClampFloor(-5, 0) = %s, want 0", got)
	}
	a := decimal.RequireFromString("50")
	b := decimal.RequireFromString("100")
	if got := Min(a, b); !got.Equal(a) {
		t.Errorf("Min(50, 100) = %s, want 50", got)
	}
	if got := Min(b, a); !got.Equal(a) {
		t.Errorf("Min(100, 50) = %s, want 50", got)
	}
}
