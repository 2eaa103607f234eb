package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

type PlanID string

const (
	PlanIDNone     PlanID = "none"
	PlanIDStandard PlanID = "standard"
	PlanIDGold     PlanID = "gold"
)

// LoyaltyPlan is a closed set of customer tiers. DiscountFactor is expected in [0,1].
type LoyaltyPlan struct {
	ID             PlanID
	Name           string
	Benefits       string
	DiscountFactor decimal.Decimal
}

var (
	PlanNone = LoyaltyPlan{
		ID:             PlanIDNone,
		Name:           "No plan",
		Benefits:       "Full price tickets",
		DiscountFactor: decimal.Zero,
	}
	PlanStandard = LoyaltyPlan{
		ID:             PlanIDStandard,
		Name:           "Standard",
		Benefits:       "5% off every ticket",
		DiscountFactor: decimal.RequireFromString("0.05"),
	}
	PlanGold = LoyaltyPlan{
		ID:             PlanIDGold,
		Name:           "Gold",
		Benefits:       "10% off every ticket",
		DiscountFactor: decimal.RequireFromString("0.10"),
	}
)

var plans = map[PlanID]LoyaltyPlan{
	PlanIDNone:     PlanNone,
	PlanIDStandard: PlanStandard,
	PlanIDGold:     PlanGold,
}

// LookupPlan resolves a plan identifier. Unknown identifiers fall back to PlanNone.
func LookupPlan(id string) (LoyaltyPlan, bool) {
	p, ok := plans[PlanID(strings.ToLower(strings.TrimSpace(id)))]
	if !ok {
		return PlanNone, false
	}
	return p, true
}

type Customer struct {
	NationalID string      `db:"national_id"`
	Name       string      `db:"name"`
	Plan       LoyaltyPlan `db:"-"`
}
