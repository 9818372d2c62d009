package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType tells how a PricingRule discount value is applied.
type DiscountType string

const (
	// DiscountTypePercentage values are fractions: 0.10 means 10% off.
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixedAmount"
)

// RuleScope tells whether a PricingRule targets a category or a single product.
type RuleScope string

const (
	RuleScopeCategory RuleScope = "category"
	RuleScopeProduct  RuleScope = "product"
)

// PricingRule is an administrator-managed discount rule. It is read-only to the orchestrator.
//
// Matching:
//   - SubscriptionDurationID empty means the rule applies regardless of duration.
//   - EffectiveFrom/EffectiveTo nil means open-ended; EffectiveTo is exclusive.
//   - Lower Priority is evaluated first.
//   - At most one Default rule exists per scope; defaults apply only when no other rule matches.
type PricingRule struct {
	ID                     string          `json:"id"`
	ScopeType              RuleScope       `json:"scope_type"`
	ScopeID                string          `json:"scope_id"`
	SubscriptionDurationID string          `json:"subscription_duration_id,omitempty"`
	DiscountType           DiscountType    `json:"discount_type"`
	DiscountValue          decimal.Decimal `json:"discount_value"`
	Priority               int             `json:"priority"`
	Stackable              bool            `json:"stackable"`
	Default                bool            `json:"default"`
	EffectiveFrom          *time.Time      `json:"effective_from,omitempty"`
	EffectiveTo            *time.Time      `json:"effective_to,omitempty"`
}

// ActiveAt reports whether at falls inside the rule's effective window.
func (r PricingRule) ActiveAt(at time.Time) bool {
	if r.EffectiveFrom != nil && at.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && !at.Before(*r.EffectiveTo) {
		return false
	}
	return true
}

// PricingSnapshot is the price frozen on a flow when the product is selected.
type PricingSnapshot struct {
	ProductID              string          `json:"product_id"`
	SubscriptionDurationID string          `json:"subscription_duration_id,omitempty"`
	Currency               string          `json:"currency"`
	BasePrice              decimal.Decimal `json:"base_price"`
	DiscountAmount         decimal.Decimal `json:"discount_amount"`
	FinalPrice             decimal.Decimal `json:"final_price"`
	AppliedRuleIDs         []string        `json:"applied_rule_ids"`
	ClampedToZero          bool            `json:"clamped_to_zero"`
	ComputedAt             time.Time       `json:"computed_at"`
}

func (s PricingSnapshot) Clone() PricingSnapshot {
	out := s
	out.AppliedRuleIDs = append([]string(nil), s.AppliedRuleIDs...)
	return out
}

// RepricedSnapshot keeps a snapshot that was replaced by an explicit re-price.
type RepricedSnapshot struct {
	Snapshot   PricingSnapshot `json:"snapshot"`
	Reason     string          `json:"reason"`
	ReplacedAt time.Time       `json:"replaced_at"`
}
