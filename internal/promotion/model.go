package promotion

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount shapes a promotion can take.
const (
	DiscountPercentage  = "percentage"
	DiscountFixedAmount = "fixedAmount"
	DiscountFreeMonths  = "freeMonths"
)

// Promotion is a staff-created discount offer. An empty ApplicablePlans
// list means the promotion applies to every plan.
type Promotion struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	DiscountType  string          `gorm:"size:30;not null" json:"discountType"`
	DiscountValue decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discountValue"`

	// Plan IDs this promotion is limited to, stored as JSONB.
	ApplicablePlans []uint `gorm:"type:jsonb;serializer:json" json:"applicablePlans"`

	ValidFrom   *time.Time `json:"validFrom,omitempty"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"isActive"`
	MaxUses     *int       `json:"maxUses,omitempty"`
	CurrentUses int        `gorm:"not null;default:0" json:"currentUses"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// ValidDiscountType reports whether s is a known discount type.
func ValidDiscountType(s string) bool {
	switch s {
	case DiscountPercentage, DiscountFixedAmount, DiscountFreeMonths:
		return true
	}
	return false
}

// AppliesTo reports whether the promotion can be offered against planID at
// the given instant. Checks the active flag, the date window, the usage cap
// and the plan list. One promotion may be offered against several plans on
// the same screen, so this is evaluated per plan.
func (p *Promotion) AppliesTo(planID uint, asOf time.Time) bool {
	if !p.IsActive {
		return false
	}
	if p.ValidFrom != nil && asOf.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && asOf.After(*p.ValidUntil) {
		return false
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return false
	}
	if len(p.ApplicablePlans) == 0 {
		return true
	}
	for _, id := range p.ApplicablePlans {
		if id == planID {
			return true
		}
	}
	return false
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Promotion{})
}
