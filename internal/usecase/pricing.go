package usecase

import (
	"fmt"

	"theater-booking/internal/data/entity"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PolicyWarning reports a plan whose discount factor fell outside [0,1].
// The quote was computed with no discount.
type PolicyWarning struct {
	PlanID entity.PlanID
	Factor decimal.Decimal
}

func (w *PolicyWarning) String() string {
	return fmt.Sprintf("discount factor %s of plan %s outside [0,1], no discount applied", w.Factor, w.PlanID)
}

// Quote is the price breakdown of a seat selection. Total always equals
// Subtotal minus Discount.
type Quote struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
	Warning  *PolicyWarning
}

type PricingPolicy struct {
	log *zap.Logger
}

func NewPricingPolicy(log *zap.Logger) *PricingPolicy {
	return &PricingPolicy{log: log.With(zap.String("service", "pricing"))}
}

// round2 rounds half-up for the non-negative amounts priced here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compute prices the seats for the plan, rounding subtotal, discount and
// total to cents at each step.
func (p *PricingPolicy) Compute(seats []entity.Seat, plan entity.LoyaltyPlan) Quote {
	sum := decimal.Zero
	for _, s := range seats {
		sum = sum.Add(s.BasePrice)
	}
	subtotal := round2(sum)

	var warning *PolicyWarning
	factor := plan.DiscountFactor
	if factor.IsNegative() || factor.GreaterThan(decimal.NewFromInt(1)) {
		warning = &PolicyWarning{PlanID: plan.ID, Factor: factor}
		p.log.Warn("Discount factor out of range, clamped to zero",
			zap.String("plan", string(plan.ID)),
			zap.String("factor", factor.String()),
		)
		factor = decimal.Zero
	}

	discount := round2(subtotal.Mul(factor))
	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = decimal.Zero
		discount = subtotal
	}

	return Quote{
		Subtotal: subtotal,
		Discount: discount,
		Total:    round2(total),
		Warning:  warning,
	}
}
