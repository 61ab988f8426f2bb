package conversion

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/repclub/revenue-api/internal/commission"
)

// Conversion statuses.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
	StatusLost   = "lost"
)

// Conversion is a lead turning into a membership: the selection of plan,
// promotion and salesperson that the revenue engine runs over when the
// deal closes. Split shares, when present, divide the commission across
// several salespeople and must sum to exactly 100.
type Conversion struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MemberName string `gorm:"size:255;not null" json:"memberName"`
	Contact    string `gorm:"size:255" json:"contact"`
	Phone      string `gorm:"size:50" json:"phone"`

	PlanID        uint  `gorm:"not null;index" json:"planId"`
	PromotionID   *uint `gorm:"index" json:"promotionId,omitempty"`
	SalespersonID uint  `gorm:"not null;index" json:"salespersonId"`

	// Which rule family governs this deal's commission.
	CommissionType string `gorm:"size:30;not null;default:'percentage'" json:"commissionType"`

	// Caller-supplied figure used when the selected rule's revenue basis
	// is "custom".
	CustomBasisAmount *decimal.Decimal `gorm:"type:numeric(12,2)" json:"customBasisAmount,omitempty"`

	// Split shares stored as JSONB; empty means the whole commission goes
	// to the closing salesperson.
	Splits []commission.Share `gorm:"type:jsonb;serializer:json" json:"splits,omitempty"`

	Status        string          `gorm:"size:20;not null;default:'open';index" json:"status"`
	FinalCharge   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"finalCharge"`
	DiscountLabel string          `gorm:"size:100" json:"discountLabel,omitempty"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Conversion{})
}
