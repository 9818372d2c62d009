package entities

import "github.com/shopspring/decimal"

// Catalog read models. The orchestrator queries them but never owns or mutates them.

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type SubscriptionDuration struct {
	ID             string `json:"id"`
	Label          string `json:"label"`
	IntervalMonths int    `json:"interval_months"`
}

// Product is a purchasable treatment. CrossSellCategoryIDs makes the product eligible as a
// recommendation inside other categories.
type Product struct {
	ID                      string             `json:"id"`
	CategoryID              string             `json:"category_id"`
	Name                    string             `json:"name"`
	Active                  bool               `json:"active"`
	BasePrice               decimal.Decimal    `json:"base_price"`
	SubscriptionDurationIDs []string           `json:"subscription_duration_ids,omitempty"`
	CrossSellCategoryIDs    []string           `json:"cross_sell_category_ids,omitempty"`
	Tags                    []string           `json:"tags,omitempty"`
	MerchandisingPriority   int                `json:"merchandising_priority"`
	AcceptanceRates         map[string]float64 `json:"acceptance_rates,omitempty"`
}

func (p Product) HasSubscriptionOptions() bool {
	return len(p.SubscriptionDurationIDs) > 0
}

func (p Product) OffersDuration(durationID string) bool {
	for _, id := range p.SubscriptionDurationIDs {
		if id == durationID {
			return true
		}
	}
	return false
}

// PatientProfile carries the optional context used to score recommendations.
// Every field may be empty.
type PatientProfile struct {
	Segment         string   `json:"segment,omitempty"`
	AgeBand         string   `json:"age_band,omitempty"`
	Sex             string   `json:"sex,omitempty"`
	Interests       []string `json:"interests,omitempty"`
	OwnedProductIDs []string `json:"owned_product_ids,omitempty"`
}

// SegmentKey is the key used to look up historical acceptance rates.
func (p PatientProfile) SegmentKey() string {
	if p.Segment != "" {
		return p.Segment
	}
	if p.AgeBand != "" && p.Sex != "" {
		return p.AgeBand + ":" + p.Sex
	}
	if p.AgeBand != "" {
		return p.AgeBand
	}
	return p.Sex
}
