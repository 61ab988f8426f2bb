// internal/commission/dto.go
package commission

import (
	"time"

	"github.com/shopspring/decimal"
)

// RuleDTO creates or updates either a default rule or an assignment;
// SalespersonID is required only for assignments.
type RuleDTO struct {
	SalespersonID   uint             `json:"salespersonId"`
	CommissionType  string           `json:"commissionType" validate:"required,oneof=percentage flatAmount"`
	CommissionValue decimal.Decimal  `json:"commissionValue"`
	RevenueBasis    string           `json:"revenueBasis" validate:"required,oneof=baseAmount finalChargeAmount custom"`
	MinThreshold    *decimal.Decimal `json:"minThreshold"`
	MaxCap          *decimal.Decimal `json:"maxCap"`
	DurationMonths  *int             `json:"durationMonths" validate:"omitempty,gt=0"`
	EffectiveDate   *time.Time       `json:"effectiveDate"`
	ExpiryDate      *time.Time       `json:"expiryDate"`
}
