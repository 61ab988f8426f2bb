// internal/promotion/dto.go
package promotion

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePromotionDTO struct {
	Name            string          `json:"name" validate:"required"`
	DiscountType    string          `json:"discountType" validate:"required,oneof=percentage fixedAmount freeMonths"`
	DiscountValue   decimal.Decimal `json:"discountValue"`
	ApplicablePlans []uint          `json:"applicablePlans"`
	ValidFrom       *time.Time      `json:"validFrom"`
	ValidUntil      *time.Time      `json:"validUntil"`
	MaxUses         *int            `json:"maxUses" validate:"omitempty,gt=0"`
}
