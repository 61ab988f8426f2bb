// internal/plan/dto.go
package plan

import "github.com/shopspring/decimal"

type CreatePlanDTO struct {
	Name            string           `json:"name" validate:"required"`
	BasePrice       decimal.Decimal  `json:"basePrice"`
	SignupFee       decimal.Decimal  `json:"signupFee"`
	BillingInterval string           `json:"billingInterval" validate:"required,oneof=monthly quarterly yearly"`
	MaintenanceFee  *decimal.Decimal `json:"maintenanceFee"`
}
