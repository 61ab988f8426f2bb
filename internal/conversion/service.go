// internal/conversion/service.go
package conversion

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/repclub/revenue-api/internal/commission"
	"github.com/repclub/revenue-api/internal/ledger"
	"github.com/repclub/revenue-api/internal/plan"
	"github.com/repclub/revenue-api/internal/pricing"
	"github.com/repclub/revenue-api/internal/promotion"
	"github.com/repclub/revenue-api/internal/subscription"
)

// ErrAlreadyClosed is returned when closing a conversion twice.
var ErrAlreadyClosed = errors.New("conversion: already closed or lost")

// ErrSubscriptionNotActive is returned when billing a cancelled subscription.
var ErrSubscriptionNotActive = errors.New("conversion: subscription is not active")

// Computation is the engine's full output for one conversion cycle,
// before anything is persisted.
type Computation struct {
	Quote   pricing.Quote
	Rule    *commission.Resolved
	Outcome commission.Outcome
	Splits  []commission.SplitAmount
}

// Compute runs resolver → selector → allocator over plain values. It
// performs no I/O; Close wraps it in the persistence transaction.
func Compute(p *plan.MembershipPlan, promo *promotion.Promotion, assignments []commission.SalespersonAssignment, defaults []commission.CommissionRule, conv *Conversion, cycleIndex int, asOf time.Time) (*Computation, error) {
	quote, err := pricing.ResolveDiscount(p.BasePrice, p.ID, promo, asOf)
	if err != nil {
		return nil, err
	}

	rule, err := commission.SelectRule(assignments, defaults, conv.SalespersonID, conv.CommissionType, asOf)
	if err != nil {
		return nil, err
	}

	basis := quote.FinalPrice
	if rule != nil {
		switch rule.RevenueBasis {
		case commission.BasisBaseAmount:
			basis = p.BasePrice
		case commission.BasisFinalCharge:
			basis = quote.FinalPrice
		case commission.BasisCustom:
			if conv.CustomBasisAmount == nil {
				return nil, &commission.ValidationError{Field: "customBasisAmount", Reason: "rule uses a custom revenue basis but no amount was supplied"}
			}
			basis = *conv.CustomBasisAmount
		}
	}

	outcome, err := commission.Allocate(rule, basis, cycleIndex)
	if err != nil {
		return nil, err
	}

	var splits []commission.SplitAmount
	if len(conv.Splits) > 0 && !outcome.NoRule {
		splits, err = commission.AllocateSplit(outcome.Amount, conv.Splits)
		if err != nil {
			return nil, err
		}
	}

	return &Computation{Quote: quote, Rule: rule, Outcome: outcome, Splits: splits}, nil
}

// Service closes conversions: it runs the engine over the stored
// selection and persists the results atomically.
type Service struct {
	DB     *gorm.DB
	Repo   *Repository
	Plans  *plan.Repository
	Promos *promotion.Repository
	Rules  *commission.Repository
	Subs   *subscription.Repository
	Writer *ledger.Writer
}

// NewService wires a Service over one database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:     db,
		Repo:   NewRepository(db),
		Plans:  plan.NewRepository(db),
		Promos: promotion.NewRepository(db),
		Rules:  commission.NewRepository(db),
		Subs:   subscription.NewRepository(db),
		Writer: ledger.NewWriter(db),
	}
}

// CloseResult is what a successful close produced.
type CloseResult struct {
	Conversion   *Conversion                `json:"conversion"`
	Quote        pricing.Quote              `json:"quote"`
	Outcome      commission.Outcome         `json:"-"`
	NoRule       bool                       `json:"noRule"`
	Records      []*ledger.CommissionRecord `json:"commissionRecords"`
	Subscription *subscription.Subscription `json:"subscription"`
}

// Close runs the engine for conversion id and persists the charge, the
// commission records and the new subscription in one transaction. A
// promotion whose usage cap is consumed by a concurrent close is dropped
// and the quote recomputed without it rather than overselling.
func (s *Service) Close(id uint, asOf time.Time) (*CloseResult, error) {
	var result *CloseResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		conv, err := NewRepository(tx).FindByID(id)
		if err != nil {
			return err
		}
		if conv.Status != StatusOpen {
			return ErrAlreadyClosed
		}

		p, err := plan.NewRepository(tx).FindByID(conv.PlanID)
		if err != nil {
			return err
		}

		promoRepo := promotion.NewRepository(tx)
		var promo *promotion.Promotion
		if conv.PromotionID != nil {
			promo, err = promoRepo.FindByID(*conv.PromotionID)
			if err != nil {
				return err
			}
		}

		ruleRepo := commission.NewRepository(tx)
		assignments, err := ruleRepo.FindAssignments(conv.SalespersonID)
		if err != nil {
			return err
		}
		defaults, err := ruleRepo.FindRules()
		if err != nil {
			return err
		}

		comp, err := Compute(p, promo, assignments, defaults, conv, 1, asOf)
		if err != nil {
			return err
		}

		// Consume the promotion only when it actually applied. A cap
		// exhausted by a racing close means this deal proceeds without it.
		if promo != nil && (comp.Quote.DiscountLabel != "" || comp.Quote.FreeCycles > 0) {
			switch err := promoRepo.ConsumeUse(promo.ID); {
			case errors.Is(err, promotion.ErrExhausted):
				comp, err = Compute(p, nil, assignments, defaults, conv, 1, asOf)
				if err != nil {
					return err
				}
			case err != nil:
				return err
			}
		}

		records, err := ledger.NewWriter(tx).WriteAllocation(
			tx, conv.ID, comp.Outcome, comp.Rule, comp.Splits, conv.SalespersonID, 1, asOf)
		if err != nil {
			return err
		}

		closedAt := asOf
		conv.Status = StatusClosed
		conv.FinalCharge = comp.Quote.FinalPrice
		conv.DiscountLabel = comp.Quote.DiscountLabel
		conv.ClosedAt = &closedAt
		if err := NewRepository(tx).Update(conv); err != nil {
			return err
		}

		// Cycle 1 is billed at close, so recurring billing picks up at 2.
		sub := &subscription.Subscription{
			MemberName:       conv.MemberName,
			PlanID:           conv.PlanID,
			ConversionID:     conv.ID,
			StartDate:        asOf,
			FirstCycleCharge: comp.Quote.FinalPrice,
			WaivedCycles:     comp.Quote.FreeCycles,
			NextCycleIndex:   2,
			Status:           subscription.StatusActive,
		}
		if err := subscription.NewRepository(tx).Create(sub); err != nil {
			return err
		}

		result = &CloseResult{
			Conversion:   conv,
			Quote:        comp.Quote,
			Outcome:      comp.Outcome,
			NoRule:       comp.Outcome.NoRule,
			Records:      records,
			Subscription: sub,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BillResult is what advancing a subscription one cycle produced.
type BillResult struct {
	Subscription *subscription.Subscription `json:"subscription"`
	CycleIndex   int                        `json:"cycleIndex"`
	Charge       decimal.Decimal            `json:"charge"`
	Records      []*ledger.CommissionRecord `json:"commissionRecords"`
}

// BillCycle advances a subscription one billing cycle: computes the
// cycle's charge (zero inside a waived window) and allocates any
// recurring commission at that cycle index, truncated by the rule's
// duration. Zero-amount allocations leave no ledger rows.
func (s *Service) BillCycle(subscriptionID uint, asOf time.Time) (*BillResult, error) {
	var result *BillResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		subRepo := subscription.NewRepository(tx)
		sub, err := subRepo.FindByID(subscriptionID)
		if err != nil {
			return err
		}
		if sub.Status != subscription.StatusActive {
			return ErrSubscriptionNotActive
		}

		p, err := plan.NewRepository(tx).FindByID(sub.PlanID)
		if err != nil {
			return err
		}
		conv, err := NewRepository(tx).FindByID(sub.ConversionID)
		if err != nil {
			return err
		}

		cycle := sub.NextCycleIndex
		charge := sub.ChargeForCycle(p, cycle)

		ruleRepo := commission.NewRepository(tx)
		assignments, err := ruleRepo.FindAssignments(conv.SalespersonID)
		if err != nil {
			return err
		}
		defaults, err := ruleRepo.FindRules()
		if err != nil {
			return err
		}
		rule, err := commission.SelectRule(assignments, defaults, conv.SalespersonID, conv.CommissionType, asOf)
		if err != nil {
			return err
		}

		basis := charge
		if rule != nil {
			switch rule.RevenueBasis {
			case commission.BasisBaseAmount:
				basis = p.BasePrice
			case commission.BasisCustom:
				if conv.CustomBasisAmount == nil {
					return &commission.ValidationError{Field: "customBasisAmount", Reason: "rule uses a custom revenue basis but no amount was supplied"}
				}
				basis = *conv.CustomBasisAmount
			}
		}
		outcome, err := commission.Allocate(rule, basis, cycle)
		if err != nil {
			return err
		}

		var records []*ledger.CommissionRecord
		if !outcome.NoRule && outcome.Amount.IsPositive() {
			var splits []commission.SplitAmount
			if len(conv.Splits) > 0 {
				if splits, err = commission.AllocateSplit(outcome.Amount, conv.Splits); err != nil {
					return err
				}
			}
			records, err = ledger.NewWriter(tx).WriteAllocation(
				tx, conv.ID, outcome, rule, splits, conv.SalespersonID, cycle, asOf)
			if err != nil {
				return err
			}
		}

		sub.NextCycleIndex = cycle + 1
		if err := subRepo.Update(sub); err != nil {
			return err
		}

		result = &BillResult{Subscription: sub, CycleIndex: cycle, Charge: charge, Records: records}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReallocateRecord recomputes one ledger record from the current rule
// configuration, at the record's own cycle index. Paid records are frozen
// and the attempt fails with ledger.ErrImmutableRecord.
func (s *Service) ReallocateRecord(recordID uint, asOf time.Time) (*ledger.CommissionRecord, error) {
	rec, err := ledger.NewRepository(s.DB).FindByID(recordID)
	if err != nil {
		return nil, err
	}
	if rec.Status == ledger.StatusPaid {
		return nil, ledger.ErrImmutableRecord
	}

	conv, err := s.Repo.FindByID(rec.ConversionID)
	if err != nil {
		return nil, err
	}
	p, err := s.Plans.FindByID(conv.PlanID)
	if err != nil {
		return nil, err
	}
	var promo *promotion.Promotion
	if conv.PromotionID != nil {
		if promo, err = s.Promos.FindByID(*conv.PromotionID); err != nil {
			return nil, err
		}
	}
	assignments, err := s.Rules.FindAssignments(conv.SalespersonID)
	if err != nil {
		return nil, err
	}
	defaults, err := s.Rules.FindRules()
	if err != nil {
		return nil, err
	}

	comp, err := Compute(p, promo, assignments, defaults, conv, rec.CycleIndex, asOf)
	if err != nil {
		return nil, err
	}
	if err := s.Writer.Reallocate(rec, comp.Outcome); err != nil {
		return nil, err
	}
	return rec, nil
}
