package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission record lifecycle states.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusPaid      = "paid"
	StatusDisputed  = "disputed"
	StatusCancelled = "cancelled"
)

// CommissionRecord is the persisted result of an allocation, consumed by
// payroll and reporting. The column names (commission_type, amount,
// base_amount, percentage, status, earned_date, paid_date) are a stable
// contract with those consumers. Once paid, the amounts are frozen.
type CommissionRecord struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Reference     string `gorm:"size:36;uniqueIndex" json:"reference"`
	ConversionID  uint   `gorm:"not null;index" json:"conversionId"`
	SalespersonID uint   `gorm:"not null;index" json:"salespersonId"`

	CommissionType string          `gorm:"column:commission_type;size:30;not null" json:"commissionType"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	BaseAmount     decimal.Decimal `gorm:"column:base_amount;type:numeric(12,2);not null" json:"baseAmount"`
	Percentage     decimal.Decimal `gorm:"column:percentage;type:numeric(7,4);not null;default:0" json:"percentage"`

	RuleSource string `gorm:"size:20" json:"ruleSource,omitempty"`
	RuleID     uint   `json:"ruleId,omitempty"`
	CycleIndex int    `gorm:"not null;default:1" json:"cycleIndex"`

	Status        string     `gorm:"column:status;size:20;not null;default:'pending';index" json:"status"`
	EarnedDate    time.Time  `gorm:"column:earned_date;not null" json:"earnedDate"`
	PaidDate      *time.Time `gorm:"column:paid_date" json:"paidDate,omitempty"`
	DisputeReason string     `gorm:"size:500" json:"disputeReason,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CommissionRecord{})
}
