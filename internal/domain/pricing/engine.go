// Package pricing computes subscription-adjusted product prices from administrator pricing rules.
//
// The engine is a pure function of its input: the evaluation instant is part of Input, so two
// calls with the same Input always return identical results.
package pricing

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"telehealth_flow/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeBasePrice = errors.New("base price must not be negative")
	ErrInvalidRule       = errors.New("invalid pricing rule")
)

const DefaultMinorUnits int32 = 2

type Input struct {
	ProductID              string
	CategoryID             string
	BasePrice              decimal.Decimal
	SubscriptionDurationID string
	Rules                  []entities.PricingRule
	At                     time.Time
}

type Result struct {
	BasePrice      decimal.Decimal
	FinalPrice     decimal.Decimal
	DiscountAmount decimal.Decimal
	AppliedRuleIDs []string
	ClampedToZero  bool
}

// Snapshot freezes the result for storage on a flow.
func (r Result) Snapshot(in Input, currency string) entities.PricingSnapshot {
	return entities.PricingSnapshot{
		ProductID:              in.ProductID,
		SubscriptionDurationID: in.SubscriptionDurationID,
		Currency:               currency,
		BasePrice:              r.BasePrice,
		DiscountAmount:         r.DiscountAmount,
		FinalPrice:             r.FinalPrice,
		AppliedRuleIDs:         append([]string{}, r.AppliedRuleIDs...),
		ClampedToZero:          r.ClampedToZero,
		ComputedAt:             in.At.UTC(),
	}
}

type Engine struct {
	minorUnits int32
}

func NewEngine(minorUnits int32) *Engine {
	if minorUnits < 0 {
		minorUnits = DefaultMinorUnits
	}
	return &Engine{minorUnits: minorUnits}
}

// ComputePrice applies the matching rules to BasePrice.
//
//  1. keep rules scoped to the product or its category, whose duration is empty or equal to the
//     requested one, and whose effective window contains At
//  2. order by priority, then id
//  3. when any remaining rule is stackable, apply every stackable rule in order on the running
//     price; otherwise apply only the first rule
//
// Default rules only take part when no other rule matches. The running price never goes below
// zero; a clamp is reported in ClampedToZero. The final price is rounded half-up to the minor unit.
func (e *Engine) ComputePrice(in Input) (Result, error) {
	if in.BasePrice.IsNegative() {
		return Result{}, ErrNegativeBasePrice
	}

	matched, err := e.matchRules(in)
	if err != nil {
		return Result{}, err
	}

	price := in.BasePrice
	applied := make([]string, 0, len(matched))
	clamped := false

	apply := func(r entities.PricingRule) {
		switch r.DiscountType {
		case entities.DiscountTypePercentage:
			price = price.Mul(decimal.NewFromInt(1).Sub(r.DiscountValue))
		case entities.DiscountTypeFixedAmount:
			price = price.Sub(r.DiscountValue)
		}
		if price.IsNegative() {
			price = decimal.Zero
			clamped = true
		}
		applied = append(applied, r.ID)
	}

	if hasStackable(matched) {
		for _, r := range matched {
			if r.Stackable {
				apply(r)
			}
		}
	} else if len(matched) > 0 {
		apply(matched[0])
	}

	final := e.round(price)
	base := e.round(in.BasePrice)
	return Result{
		BasePrice:      base,
		FinalPrice:     final,
		DiscountAmount: base.Sub(final),
		AppliedRuleIDs: applied,
		ClampedToZero:  clamped,
	}, nil
}

func (e *Engine) matchRules(in Input) ([]entities.PricingRule, error) {
	var regular, defaults []entities.PricingRule
	for _, r := range in.Rules {
		if err := ValidateRule(r); err != nil {
			return nil, err
		}
		if !appliesTo(r, in) {
			continue
		}
		if r.Default {
			defaults = append(defaults, r)
		} else {
			regular = append(regular, r)
		}
	}
	if len(regular) == 0 {
		regular = defaults
	}
	sort.SliceStable(regular, func(i, j int) bool {
		if regular[i].Priority != regular[j].Priority {
			return regular[i].Priority < regular[j].Priority
		}
		return regular[i].ID < regular[j].ID
	})
	return regular, nil
}

func appliesTo(r entities.PricingRule, in Input) bool {
	switch r.ScopeType {
	case entities.RuleScopeProduct:
		if r.ScopeID != in.ProductID {
			return false
		}
	case entities.RuleScopeCategory:
		if r.ScopeID != in.CategoryID {
			return false
		}
	default:
		return false
	}
	if r.SubscriptionDurationID != "" && r.SubscriptionDurationID != in.SubscriptionDurationID {
		return false
	}
	return r.ActiveAt(in.At)
}

func hasStackable(rules []entities.PricingRule) bool {
	for _, r := range rules {
		if r.Stackable {
			return true
		}
	}
	return false
}

// round is half-up for the non-negative prices this engine produces.
func (e *Engine) round(d decimal.Decimal) decimal.Decimal {
	return d.Round(e.minorUnits)
}

// ValidateRule rejects rules that can never be evaluated meaningfully.
func ValidateRule(r entities.PricingRule) error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRule)
	}
	if r.ScopeType != entities.RuleScopeCategory && r.ScopeType != entities.RuleScopeProduct {
		return fmt.Errorf("%w: rule %s has unknown scope %q", ErrInvalidRule, r.ID, r.ScopeType)
	}
	if r.DiscountValue.IsNegative() {
		return fmt.Errorf("%w: rule %s has a negative discount", ErrInvalidRule, r.ID)
	}
	switch r.DiscountType {
	case entities.DiscountTypePercentage:
		if r.DiscountValue.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%w: rule %s percentage must be a fraction between 0 and 1", ErrInvalidRule, r.ID)
		}
	case entities.DiscountTypeFixedAmount:
	default:
		return fmt.Errorf("%w: rule %s has unknown discount type %q", ErrInvalidRule, r.ID, r.DiscountType)
	}
	if r.EffectiveFrom != nil && r.EffectiveTo != nil && !r.EffectiveFrom.Before(*r.EffectiveTo) {
		return fmt.Errorf("%w: rule %s has an empty effective window", ErrInvalidRule, r.ID)
	}
	return nil
}

// ValidateDefaults enforces at most one default rule per scope.
func ValidateDefaults(rules []entities.PricingRule) error {
	seen := make(map[string]string, len(rules))
	for _, r := range rules {
		if !r.Default {
			continue
		}
		key := string(r.ScopeType) + ":" + r.ScopeID
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%w: rules %s and %s are both default for %s", ErrInvalidRule, other, r.ID, key)
		}
		seen[key] = r.ID
	}
	return nil
}
