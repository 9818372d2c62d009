// Package recommendation ranks catalog products for a patient in a category.
package recommendation

import (
	"math"
	"sort"

	"telehealth_flow/internal/domain/entities"
)

const (
	ReasonCategoryMatch         = "category_match"
	ReasonCrossSell             = "cross_sell"
	ReasonInterestMatch         = "interest_match"
	ReasonAcceptanceHistory     = "acceptance_history"
	ReasonMerchandisingPriority = "merchandising_priority"
)

// MaxMerchandisingPriority is the merchandising priority that maps to a full factor score.
const MaxMerchandisingPriority = 100

type Weights struct {
	CategoryAffinity  float64
	InterestAffinity  float64
	AcceptanceHistory float64
	Merchandising     float64
}

func DefaultWeights() Weights {
	return Weights{
		CategoryAffinity:  0.40,
		InterestAffinity:  0.15,
		AcceptanceHistory: 0.30,
		Merchandising:     0.15,
	}
}

func (w Weights) total() float64 {
	return w.CategoryAffinity + w.InterestAffinity + w.AcceptanceHistory + w.Merchandising
}

type Request struct {
	CategoryID        string
	Profile           entities.PatientProfile
	Catalog           []entities.Product
	MaxResults        int
	ExcludeProductIDs []string
}

type Scored struct {
	ProductID   string
	Score       float64
	ReasonCodes []string
}

type Engine struct {
	weights Weights
}

func NewEngine(w Weights) *Engine {
	if w.total() <= 0 {
		w = DefaultWeights()
	}
	return &Engine{weights: w}
}

// Recommend scores every eligible product, sorts by score descending with ties broken by
// ascending product id, and truncates to MaxResults. Eligible means active, not excluded, not
// already owned, and either in the category or cross-sell linked to it.
func (e *Engine) Recommend(req Request) []Scored {
	if req.MaxResults <= 0 || len(req.Catalog) == 0 {
		return []Scored{}
	}

	skip := make(map[string]struct{}, len(req.ExcludeProductIDs)+len(req.Profile.OwnedProductIDs))
	for _, id := range req.ExcludeProductIDs {
		skip[id] = struct{}{}
	}
	for _, id := range req.Profile.OwnedProductIDs {
		skip[id] = struct{}{}
	}

	segment := req.Profile.SegmentKey()
	out := make([]Scored, 0, len(req.Catalog))
	for _, p := range req.Catalog {
		if !p.Active {
			continue
		}
		if _, ok := skip[p.ID]; ok {
			continue
		}
		affinity, affinityReason := categoryAffinity(p, req.CategoryID)
		if affinity == 0 {
			continue
		}

		contributions := []contribution{
			{reason: affinityReason, value: e.weights.CategoryAffinity * affinity},
			{reason: ReasonInterestMatch, value: e.weights.InterestAffinity * interestOverlap(p.Tags, req.Profile.Interests)},
			{reason: ReasonAcceptanceHistory, value: e.weights.AcceptanceHistory * acceptanceRate(p, segment)},
			{reason: ReasonMerchandisingPriority, value: e.weights.Merchandising * merchandising(p.MerchandisingPriority)},
		}

		sum := 0.0
		for _, c := range contributions {
			sum += c.value
		}
		out = append(out, Scored{
			ProductID:   p.ID,
			Score:       roundScore(sum / e.weights.total()),
			ReasonCodes: reasonCodes(contributions),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > req.MaxResults {
		out = out[:req.MaxResults]
	}
	return out
}

type contribution struct {
	reason string
	value  float64
}

// reasonCodes lists the factors that contributed, largest contribution first.
func reasonCodes(cs []contribution) []string {
	nonZero := make([]contribution, 0, len(cs))
	for _, c := range cs {
		if c.value > 0 {
			nonZero = append(nonZero, c)
		}
	}
	sort.SliceStable(nonZero, func(i, j int) bool {
		if nonZero[i].value != nonZero[j].value {
			return nonZero[i].value > nonZero[j].value
		}
		return nonZero[i].reason < nonZero[j].reason
	})
	out := make([]string, len(nonZero))
	for i, c := range nonZero {
		out[i] = c.reason
	}
	return out
}

func categoryAffinity(p entities.Product, categoryID string) (float64, string) {
	if p.CategoryID == categoryID {
		return 1, ReasonCategoryMatch
	}
	for _, id := range p.CrossSellCategoryIDs {
		if id == categoryID {
			return 0.5, ReasonCrossSell
		}
	}
	return 0, ""
}

func interestOverlap(tags, interests []string) float64 {
	if len(tags) == 0 || len(interests) == 0 {
		return 0
	}
	want := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		want[i] = struct{}{}
	}
	hits := 0
	for _, t := range tags {
		if _, ok := want[t]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(tags))
}

func acceptanceRate(p entities.Product, segment string) float64 {
	if segment == "" || p.AcceptanceRates == nil {
		return 0
	}
	return clamp01(p.AcceptanceRates[segment])
}

func merchandising(priority int) float64 {
	return clamp01(float64(priority) / MaxMerchandisingPriority)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func roundScore(v float64) float64 {
	return clamp01(math.Round(v*1e6) / 1e6)
}
