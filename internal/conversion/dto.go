// internal/conversion/dto.go
package conversion

import (
	"github.com/shopspring/decimal"

	"github.com/repclub/revenue-api/internal/commission"
)

type CreateConversionDTO struct {
	MemberName        string             `json:"memberName" validate:"required"`
	Contact           string             `json:"contact"`
	Phone             string             `json:"phone"`
	PlanID            uint               `json:"planId" validate:"required"`
	PromotionID       *uint              `json:"promotionId"`
	SalespersonID     uint               `json:"salespersonId" validate:"required"`
	CommissionType    string             `json:"commissionType" validate:"omitempty,oneof=percentage flatAmount"`
	CustomBasisAmount *decimal.Decimal   `json:"customBasisAmount"`
	Splits            []commission.Share `json:"splits"`
}

// QuoteDTO asks for a price preview without touching any conversion.
type QuoteDTO struct {
	PlanID      uint  `json:"planId" validate:"required"`
	PromotionID *uint `json:"promotionId"`
}
