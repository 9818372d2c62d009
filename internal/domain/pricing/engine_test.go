package pricing

import (
	"testing"
	"time"

	"telehealth_flow/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rule(id string, scope entities.RuleScope, scopeID string, typ entities.DiscountType, value string, priority int) entities.PricingRule {
	return entities.PricingRule{
		ID:            id,
		ScopeType:     scope,
		ScopeID:       scopeID,
		DiscountType:  typ,
		DiscountValue: dec(value),
		Priority:      priority,
	}
}

func baseInput() Input {
	return Input{
		ProductID:              "semaglutide-1",
		CategoryID:             "weight-mgmt",
		BasePrice:              dec("200"),
		SubscriptionDurationID: "monthly",
		At:                     now,
	}
}

func TestEngine_ComputePrice_NoRules(t *testing.T) {
	res, err := NewEngine(2).ComputePrice(baseInput())
	require.NoError(t, err)
	require.True(t, res.FinalPrice.Equal(dec("200")))
	require.True(t, res.DiscountAmount.IsZero())
	require.Empty(t, res.AppliedRuleIDs)
	require.False(t, res.ClampedToZero)
}

func TestEngine_ComputePrice_MonthlyPercentage(t *testing.T) {
	in := baseInput()
	r := rule("monthly-10", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.10", 1)
	r.SubscriptionDurationID = "monthly"
	in.Rules = []entities.PricingRule{r}

	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, "180.00", res.FinalPrice.StringFixed(2))
	require.Equal(t, "20.00", res.DiscountAmount.StringFixed(2))
	require.Equal(t, []string{"monthly-10"}, res.AppliedRuleIDs)
}

func TestEngine_ComputePrice_Filtering(t *testing.T) {
	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	quarterly := rule("quarterly", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.5", 0)
	quarterly.SubscriptionDurationID = "quarterly"
	expired := rule("expired", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "0.5", 0)
	expired.EffectiveFrom = &past
	expired.EffectiveTo = &yesterday
	future := rule("future", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "0.5", 0)
	future.EffectiveFrom = &tomorrow
	otherProduct := rule("other", entities.RuleScopeProduct, "tirzepatide", entities.DiscountTypePercentage, "0.5", 0)
	otherCategory := rule("other-cat", entities.RuleScopeCategory, "dermatology", entities.DiscountTypePercentage, "0.5", 0)
	match := rule("match", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "15", 9)

	in := baseInput()
	in.Rules = []entities.PricingRule{quarterly, expired, future, otherProduct, otherCategory, match}

	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, []string{"match"}, res.AppliedRuleIDs)
	require.Equal(t, "185.00", res.FinalPrice.StringFixed(2))
}

func TestEngine_ComputePrice_FirstMatchWins(t *testing.T) {
	in := baseInput()
	in.Rules = []entities.PricingRule{
		rule("b", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.20", 5),
		rule("a", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "10", 1),
		rule("c", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "50", 1),
	}
	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, res.AppliedRuleIDs)
	require.Equal(t, "190.00", res.FinalPrice.StringFixed(2))
}

func TestEngine_ComputePrice_Stackable(t *testing.T) {
	in := baseInput()
	first := rule("first", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.10", 1)
	first.Stackable = true
	second := rule("second", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "30", 2)
	second.Stackable = true
	nonStack := rule("plain", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "0.90", 0)
	in.Rules = []entities.PricingRule{second, nonStack, first}

	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second"}, res.AppliedRuleIDs)
	require.Equal(t, "150.00", res.FinalPrice.StringFixed(2))
}

func TestEngine_ComputePrice_ClampsToZero(t *testing.T) {
	in := baseInput()
	a := rule("a", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "150", 1)
	a.Stackable = true
	b := rule("b", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "150", 2)
	b.Stackable = true
	in.Rules = []entities.PricingRule{a, b}

	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.True(t, res.FinalPrice.IsZero())
	require.True(t, res.ClampedToZero)
	require.Equal(t, "200.00", res.DiscountAmount.StringFixed(2))
}

func TestEngine_ComputePrice_DefaultRuleFallback(t *testing.T) {
	def := rule("default", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.05", 0)
	def.Default = true

	in := baseInput()
	in.Rules = []entities.PricingRule{def}
	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, []string{"default"}, res.AppliedRuleIDs)

	in.Rules = append(in.Rules, rule("specific", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, "1", 10))
	res, err = NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, []string{"specific"}, res.AppliedRuleIDs)
}

func TestEngine_ComputePrice_RoundsHalfUp(t *testing.T) {
	in := baseInput()
	in.BasePrice = dec("10.05")
	in.Rules = []entities.PricingRule{rule("half", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "0.5", 1)}

	res, err := NewEngine(2).ComputePrice(in)
	require.NoError(t, err)
	// 10.05 * 0.5 = 5.025
	require.Equal(t, "5.03", res.FinalPrice.StringFixed(2))

	res, err = NewEngine(0).ComputePrice(in)
	require.NoError(t, err)
	require.Equal(t, "5", res.FinalPrice.String())
}

func TestEngine_ComputePrice_Deterministic(t *testing.T) {
	in := baseInput()
	a := rule("a", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "0.333", 3)
	a.Stackable = true
	b := rule("b", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypeFixedAmount, "7.77", 3)
	b.Stackable = true
	in.Rules = []entities.PricingRule{b, a}

	engine := NewEngine(2)
	first, err := engine.ComputePrice(in)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := engine.ComputePrice(in)
		require.NoError(t, err)
		require.Equal(t, first.FinalPrice.String(), again.FinalPrice.String())
		require.Equal(t, first.AppliedRuleIDs, again.AppliedRuleIDs)
		require.Equal(t, first.DiscountAmount.String(), again.DiscountAmount.String())
	}
}

func TestEngine_ComputePrice_NeverNegative(t *testing.T) {
	engine := NewEngine(2)
	for _, base := range []string{"0", "0.01", "5", "99.99", "1000"} {
		for _, off := range []string{"0", "1", "5000"} {
			in := baseInput()
			in.BasePrice = dec(base)
			r := rule("fixed", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypeFixedAmount, off, 1)
			in.Rules = []entities.PricingRule{r}
			res, err := engine.ComputePrice(in)
			require.NoError(t, err)
			require.False(t, res.FinalPrice.IsNegative(), "base=%s off=%s", base, off)
		}
	}
}

func TestEngine_ComputePrice_InvalidInput(t *testing.T) {
	in := baseInput()
	in.BasePrice = dec("-1")
	_, err := NewEngine(2).ComputePrice(in)
	require.ErrorIs(t, err, ErrNegativeBasePrice)

	in = baseInput()
	in.Rules = []entities.PricingRule{rule("too-much", entities.RuleScopeProduct, "semaglutide-1", entities.DiscountTypePercentage, "1.5", 1)}
	_, err = NewEngine(2).ComputePrice(in)
	require.ErrorIs(t, err, ErrInvalidRule)
}

func TestValidateDefaults(t *testing.T) {
	a := rule("a", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.1", 1)
	a.Default = true
	b := rule("b", entities.RuleScopeCategory, "weight-mgmt", entities.DiscountTypePercentage, "0.2", 2)
	b.Default = true
	c := rule("c", entities.RuleScopeProduct, "weight-mgmt", entities.DiscountTypePercentage, "0.2", 2)
	c.Default = true

	require.NoError(t, ValidateDefaults([]entities.PricingRule{a, c}))
	require.ErrorIs(t, ValidateDefaults([]entities.PricingRule{a, b}), ErrInvalidRule)
}
