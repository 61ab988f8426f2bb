package plan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Billing intervals a plan can be sold at.
const (
	IntervalMonthly   = "monthly"
	IntervalQuarterly = "quarterly"
	IntervalYearly    = "yearly"
)

// MembershipPlan is a sellable plan definition. Plans are treated as
// immutable once an active subscription references them; edits go through
// the handler which refuses updates on referenced plans.
type MembershipPlan struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	BasePrice       decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"basePrice"`
	SignupFee       decimal.Decimal  `gorm:"type:numeric(12,2);not null;default:0" json:"signupFee"`
	BillingInterval string           `gorm:"size:20;not null;default:'monthly'" json:"billingInterval"`
	MaintenanceFee  *decimal.Decimal `gorm:"type:numeric(12,2)" json:"maintenanceFee,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// ValidInterval reports whether s is a supported billing interval.
func ValidInterval(s string) bool {
	switch s {
	case IntervalMonthly, IntervalQuarterly, IntervalYearly:
		return true
	}
	return false
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&MembershipPlan{})
}
