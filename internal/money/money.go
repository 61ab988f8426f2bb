// internal/money/money.go
package money

import "github.com/shopspring/decimal"

// Zero is the zero amount, exported so callers don't allocate their own.
var Zero = decimal.Zero

var hundred = decimal.NewFromInt(100)

// Cents rounds an amount to 2 fractional digits, half-up. Intermediate
// engine arithmetic keeps full precision; this is applied only at the
// point a value is persisted or returned to a caller.
func Cents(d decimal.Decimal) decimal.Decimal {
	// shopspring rounds half away from zero; amounts here are never
	// negative, so this is half-up.
	return d.Round(2)
}

// Percent returns p percent of base at full precision.
func Percent(base, p decimal.Decimal) decimal.Decimal {
	return base.Mul(p).Div(hundred)
}

// ClampFloor returns d, or floor when d is below it.
func ClampFloor(d, floor decimal.Decimal) decimal.Decimal {
	if d.LessThan(floor) {
		return floor
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if b.LessThan(a) {
		return b
	}
	return a
}

// Format renders an amount as a currency string with 2 decimals, e.g. "30.00".
func Format(d decimal.Decimal) string {
	return Cents(d).StringFixed(2)
}
