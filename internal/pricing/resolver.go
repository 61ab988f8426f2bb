// internal/pricing/resolver.go
package pricing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/money"
	"github.com/repclub/revenue-api/internal/promotion"
)

// ValidationError reports input rejected before any computation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("pricing: invalid %s: %s", e.Field, e.Reason)
}

// Quote is the outcome of resolving a promotion against a base price.
// FreeCycles is nonzero only for free-months promotions: the price of the
// current cycle is untouched and the next N billing cycles are waived
// instead. A free-months grant is a scheduling effect on future charges,
// not a price cut on this one.
type Quote struct {
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	DiscountLabel string          `json:"discountLabel,omitempty"`
	FreeCycles    int             `json:"freeCycles,omitempty"`
}

// ResolveDiscount computes the discounted charge for one billing cycle.
// A promotion that does not apply to the plan at asOf (wrong plan, outside
// its date window, inactive, or with its usage cap exhausted) is treated
// as no promotion at all, not as an error. Intermediate arithmetic keeps
// full precision; the returned FinalPrice is rounded to cents.
func ResolveDiscount(basePrice decimal.Decimal, planID uint, promo *promotion.Promotion, asOf time.Time) (Quote, error) {
	if basePrice.IsNegative() {
		return Quote{}, &ValidationError{Field: "basePrice", Reason: "must not be negative"}
	}

	if promo == nil || !promo.AppliesTo(planID, asOf) {
		return Quote{FinalPrice: money.Cents(basePrice)}, nil
	}

	switch promo.DiscountType {
	case promotion.DiscountPercentage:
		if promo.DiscountValue.IsNegative() || promo.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return Quote{}, &ValidationError{Field: "discountValue", Reason: "percentage must be between 0 and 100"}
		}
		final := basePrice.Sub(money.Percent(basePrice, promo.DiscountValue))
		return Quote{
			FinalPrice:    money.Cents(money.ClampFloor(final, money.Zero)),
			DiscountLabel: fmt.Sprintf("%s%% OFF", trimValue(promo.DiscountValue)),
		}, nil

	case promotion.DiscountFixedAmount:
		if promo.DiscountValue.IsNegative() {
			return Quote{}, &ValidationError{Field: "discountValue", Reason: "fixed amount must not be negative"}
		}
		final := money.ClampFloor(basePrice.Sub(promo.DiscountValue), money.Zero)
		return Quote{
			FinalPrice:    money.Cents(final),
			DiscountLabel: fmt.Sprintf("$%s OFF", money.Format(promo.DiscountValue)),
		}, nil

	case promotion.DiscountFreeMonths:
		n := int(promo.DiscountValue.IntPart())
		if n <= 0 || !promo.DiscountValue.IsInteger() {
			return Quote{}, &ValidationError{Field: "discountValue", Reason: "free months must be a positive whole number"}
		}
		label := fmt.Sprintf("%d MONTHS FREE", n)
		if n == 1 {
			label = "1 MONTH FREE"
		}
		return Quote{
			FinalPrice:    money.Cents(basePrice),
			DiscountLabel: label,
			FreeCycles:    n,
		}, nil

	default:
		return Quote{}, &ValidationError{Field: "discountType", Reason: fmt.Sprintf("unknown type %q", promo.DiscountType)}
	}
}

// trimValue renders "20" rather than "20.00" in percentage labels.
func trimValue(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.Truncate(0).String()
	}
	return d.String()
}
