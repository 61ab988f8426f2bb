// internal/ledger/writer.go
package ledger

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/repclub/revenue-api/internal/commission"
	"github.com/repclub/revenue-api/internal/money"
)

// Writer assembles allocation results into auditable pending records.
type Writer struct {
	DB *gorm.DB
}

// NewWriter returns a writer bound to db.
func NewWriter(db *gorm.DB) *Writer {
	return &Writer{DB: db}
}

// WriteAllocation persists the commission lines for one conversion cycle.
// With splits present, one record per participant; otherwise a single
// record for the resolved rule's salesperson (fallbackSalespersonID when
// the org default was selected). A NoRule outcome writes nothing: zero
// commission by configuration gap leaves no ledger rows to approve or pay.
// All records start pending with EarnedDate = earned.
func (w *Writer) WriteAllocation(tx *gorm.DB, conversionID uint, out commission.Outcome, rule *commission.Resolved, splits []commission.SplitAmount, fallbackSalespersonID uint, cycleIndex int, earned time.Time) ([]*CommissionRecord, error) {
	if tx == nil {
		tx = w.DB
	}
	if out.NoRule {
		return nil, nil
	}

	salespersonID := fallbackSalespersonID
	var ruleSource string
	var ruleID uint
	if rule != nil {
		ruleSource = rule.Source
		ruleID = rule.RuleID
		if rule.SalespersonID != 0 {
			salespersonID = rule.SalespersonID
		}
	}

	var records []*CommissionRecord
	if len(splits) > 0 {
		for _, s := range splits {
			records = append(records, &CommissionRecord{
				Reference:      uuid.NewString(),
				ConversionID:   conversionID,
				SalespersonID:  s.SalespersonID,
				CommissionType: out.CommissionType,
				Amount:         money.Cents(s.Amount),
				BaseAmount:     out.BaseAmount,
				Percentage:     out.Percentage,
				RuleSource:     ruleSource,
				RuleID:         ruleID,
				CycleIndex:     cycleIndex,
				Status:         StatusPending,
				EarnedDate:     earned,
			})
		}
	} else {
		records = append(records, &CommissionRecord{
			Reference:      uuid.NewString(),
			ConversionID:   conversionID,
			SalespersonID:  salespersonID,
			CommissionType: out.CommissionType,
			Amount:         out.Amount,
			BaseAmount:     out.BaseAmount,
			Percentage:     out.Percentage,
			RuleSource:     ruleSource,
			RuleID:         ruleID,
			CycleIndex:     cycleIndex,
			Status:         StatusPending,
			EarnedDate:     earned,
		})
	}

	if err := NewRepository(tx).CreateInBatch(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Reallocate overwrites the amounts of an existing record with a fresh
// allocation outcome. Paid records are frozen; attempting to recompute one
// fails with ErrImmutableRecord and rule changes never reach it.
func (w *Writer) Reallocate(rec *CommissionRecord, out commission.Outcome) error {
	if rec.Status == StatusPaid {
		return ErrImmutableRecord
	}
	return w.DB.Model(rec).Updates(map[string]interface{}{
		"amount":          out.Amount,
		"base_amount":     out.BaseAmount,
		"percentage":      out.Percentage,
		"commission_type": out.CommissionType,
	}).Error
}
