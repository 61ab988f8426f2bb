package commission

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// How a commission amount is computed.
const (
	TypePercentage = "percentage"
	TypeFlatAmount = "flatAmount"
)

// Which amount a percentage commission is computed against.
const (
	BasisBaseAmount  = "baseAmount"        // plan price before discounts
	BasisFinalCharge = "finalChargeAmount" // what the member is actually charged
	BasisCustom      = "custom"            // supplied by the caller, e.g. a single line item
)

// CommissionRule is an organization-wide default. A matching
// SalespersonAssignment always takes precedence over it.
type CommissionRule struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	CommissionType  string           `gorm:"column:commission_type;size:30;not null;index" json:"commissionType"`
	CommissionValue decimal.Decimal  `gorm:"column:commission_value;type:numeric(12,2);not null" json:"commissionValue"`
	RevenueBasis    string           `gorm:"size:30;not null;default:'finalChargeAmount'" json:"revenueBasis"`
	MinThreshold    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"minThreshold,omitempty"`
	MaxCap          *decimal.Decimal `gorm:"type:numeric(12,2)" json:"maxCap,omitempty"`
	DurationMonths  *int             `json:"durationMonths,omitempty"`
	IsActive        bool             `gorm:"not null;default:true" json:"isActive"`
	EffectiveDate   *time.Time       `json:"effectiveDate,omitempty"`
	ExpiryDate      *time.Time       `json:"expiryDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// SalespersonAssignment overrides the organization default for one
// salesperson and commission type.
type SalespersonAssignment struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	SalespersonID   uint             `gorm:"not null;index" json:"salespersonId"`
	CommissionType  string           `gorm:"column:commission_type;size:30;not null;index" json:"commissionType"`
	CommissionValue decimal.Decimal  `gorm:"column:commission_value;type:numeric(12,2);not null" json:"commissionValue"`
	RevenueBasis    string           `gorm:"size:30;not null;default:'finalChargeAmount'" json:"revenueBasis"`
	MinThreshold    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"minThreshold,omitempty"`
	MaxCap          *decimal.Decimal `gorm:"type:numeric(12,2)" json:"maxCap,omitempty"`
	DurationMonths  *int             `json:"durationMonths,omitempty"`
	IsActive        bool             `gorm:"not null;default:true" json:"isActive"`
	EffectiveDate   *time.Time       `json:"effectiveDate,omitempty"`
	ExpiryDate      *time.Time       `json:"expiryDate,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// ValidCommissionType reports whether s is a known commission type.
func ValidCommissionType(s string) bool {
	return s == TypePercentage || s == TypeFlatAmount
}

// ValidRevenueBasis reports whether s is a known revenue basis.
func ValidRevenueBasis(s string) bool {
	switch s {
	case BasisBaseAmount, BasisFinalCharge, BasisCustom:
		return true
	}
	return false
}

// Migrate creates both tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CommissionRule{}, &SalespersonAssignment{})
}
