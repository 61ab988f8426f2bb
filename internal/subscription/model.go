package subscription

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/repclub/revenue-api/internal/money"
	"github.com/repclub/revenue-api/internal/plan"
)

// Subscription statuses.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// Subscription is a member's active plan, created when a conversion
// closes. FirstCycleCharge is the discounted price locked in at close.
// WaivedCycles counts full billing cycles granted by free-months
// promotions; stacked grants accumulate (treated as additive — pending
// product confirmation), and the waived window runs immediately after
// the first billed cycle.
type Subscription struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	MemberName   string `gorm:"size:255;not null" json:"memberName"`
	PlanID       uint   `gorm:"not null;index" json:"planId"`
	ConversionID uint   `gorm:"index" json:"conversionId"`

	StartDate        time.Time       `gorm:"not null" json:"startDate"`
	FirstCycleCharge decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"firstCycleCharge"`
	WaivedCycles     int             `gorm:"not null;default:0" json:"waivedCycles"`
	NextCycleIndex   int             `gorm:"not null;default:1" json:"nextCycleIndex"`
	Status           string          `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// ChargeForCycle computes the amount billed for one cycle of the
// subscription. cycleIndex is 1-based. Cycle 1 bills the locked-in
// discounted price plus the plan's signup fee; the next WaivedCycles
// cycles are free; every cycle after that bills base price plus the
// maintenance fee if the plan carries one.
func (s *Subscription) ChargeForCycle(p *plan.MembershipPlan, cycleIndex int) decimal.Decimal {
	if cycleIndex < 1 {
		return money.Zero
	}
	if cycleIndex == 1 {
		return money.Cents(s.FirstCycleCharge.Add(p.SignupFee))
	}
	if cycleIndex <= 1+s.WaivedCycles {
		return money.Zero
	}
	charge := p.BasePrice
	if p.MaintenanceFee != nil {
		charge = charge.Add(*p.MaintenanceFee)
	}
	return money.Cents(charge)
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Subscription{})
}
