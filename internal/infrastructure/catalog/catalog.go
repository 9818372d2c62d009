// Package catalog serves the administrator-managed read models (categories, products, durations,
// pricing rules, intake forms) from a YAML document.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/domain/forms"
	"telehealth_flow/internal/domain/pricing"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type yamlCatalog struct {
	Categories            []entities.Category `yaml:"categories"`
	SubscriptionDurations []yamlDuration      `yaml:"subscription_durations"`
	Products              []yamlProduct       `yaml:"products"`
	PricingRules          []yamlPricingRule   `yaml:"pricing_rules"`
	FormTemplates         []yamlFormTemplate  `yaml:"form_templates"`
	FormMappings          []yamlFormMapping   `yaml:"form_mappings"`
}

type yamlDuration struct {
	ID             string `yaml:"id"`
	Label          string `yaml:"label"`
	IntervalMonths int    `yaml:"interval_months"`
}

type yamlProduct struct {
	ID                      string             `yaml:"id"`
	CategoryID              string             `yaml:"category_id"`
	Name                    string             `yaml:"name"`
	Active                  bool               `yaml:"active"`
	BasePrice               string             `yaml:"base_price"`
	SubscriptionDurationIDs []string           `yaml:"subscription_duration_ids"`
	CrossSellCategoryIDs    []string           `yaml:"cross_sell_category_ids"`
	Tags                    []string           `yaml:"tags"`
	MerchandisingPriority   int                `yaml:"merchandising_priority"`
	AcceptanceRates         map[string]float64 `yaml:"acceptance_rates"`
}

type yamlPricingRule struct {
	ID                     string     `yaml:"id"`
	ScopeType              string     `yaml:"scope_type"`
	ScopeID                string     `yaml:"scope_id"`
	SubscriptionDurationID string     `yaml:"subscription_duration_id"`
	DiscountType           string     `yaml:"discount_type"`
	DiscountValue          string     `yaml:"discount_value"`
	Priority               int        `yaml:"priority"`
	Stackable              bool       `yaml:"stackable"`
	Default                bool       `yaml:"default"`
	EffectiveFrom          *time.Time `yaml:"effective_from"`
	EffectiveTo            *time.Time `yaml:"effective_to"`
}

type yamlFormTemplate struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Fields []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
		Type  string `yaml:"type"`
	} `yaml:"fields"`
}

type yamlFormMapping struct {
	CategoryID       string   `yaml:"category_id"`
	ProductID        string   `yaml:"product_id"`
	FormTemplateID   string   `yaml:"form_template_id"`
	RequiredFieldIDs []string `yaml:"required_field_ids"`
	ConditionalRules []struct {
		FieldID   string `yaml:"field_id"`
		Effect    string `yaml:"effect"`
		Condition struct {
			FieldID  string `yaml:"field_id"`
			Operator string `yaml:"operator"`
			Value    string `yaml:"value"`
		} `yaml:"condition"`
	} `yaml:"conditional_rules"`
}

// Catalog is an in-memory ICatalogReader. Pricing rules can be replaced at runtime; flows keep the
// snapshot computed when their product was selected.
type Catalog struct {
	mu         sync.RWMutex
	categories map[string]entities.Category
	durations  map[string]entities.SubscriptionDuration
	products   []entities.Product
	rules      []entities.PricingRule
	templates  []entities.FormTemplate
	mappings   []entities.FormMapping
}

var _ interfaces.ICatalogReader = (*Catalog)(nil)

// Data is the decoded content of a catalog document.
type Data struct {
	Categories            []entities.Category
	SubscriptionDurations []entities.SubscriptionDuration
	Products              []entities.Product
	PricingRules          []entities.PricingRule
	FormTemplates         []entities.FormTemplate
	FormMappings          []entities.FormMapping
}

func New(d Data) *Catalog {
	c := &Catalog{
		categories: make(map[string]entities.Category, len(d.Categories)),
		durations:  make(map[string]entities.SubscriptionDuration, len(d.SubscriptionDurations)),
		products:   append([]entities.Product(nil), d.Products...),
		rules:      append([]entities.PricingRule(nil), d.PricingRules...),
		templates:  append([]entities.FormTemplate(nil), d.FormTemplates...),
		mappings:   append([]entities.FormMapping(nil), d.FormMappings...),
	}
	for _, cat := range d.Categories {
		c.categories[cat.ID] = cat
	}
	for _, dur := range d.SubscriptionDurations {
		c.durations[dur.ID] = dur
	}
	return c
}

// Load reads the catalog from path, or the embedded sample catalog when path is empty.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalog
	if path = strings.TrimSpace(path); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = b
	}
	d, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	return New(d), nil
}

func Parse(raw []byte) (Data, error) {
	var doc yamlCatalog
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return Data{}, fmt.Errorf("decode catalog: %w", err)
	}

	d := Data{Categories: doc.Categories}
	for _, it := range doc.SubscriptionDurations {
		d.SubscriptionDurations = append(d.SubscriptionDurations, entities.SubscriptionDuration(it))
	}
	for _, it := range doc.Products {
		price, err := decimal.NewFromString(it.BasePrice)
		if err != nil {
			return Data{}, fmt.Errorf("product %s: base_price %q: %w", it.ID, it.BasePrice, err)
		}
		d.Products = append(d.Products, entities.Product{
			ID:                      it.ID,
			CategoryID:              it.CategoryID,
			Name:                    it.Name,
			Active:                  it.Active,
			BasePrice:               price,
			SubscriptionDurationIDs: it.SubscriptionDurationIDs,
			CrossSellCategoryIDs:    it.CrossSellCategoryIDs,
			Tags:                    it.Tags,
			MerchandisingPriority:   it.MerchandisingPriority,
			AcceptanceRates:         it.AcceptanceRates,
		})
	}
	for _, it := range doc.PricingRules {
		value, err := decimal.NewFromString(it.DiscountValue)
		if err != nil {
			return Data{}, fmt.Errorf("pricing rule %s: discount_value %q: %w", it.ID, it.DiscountValue, err)
		}
		d.PricingRules = append(d.PricingRules, entities.PricingRule{
			ID:                     it.ID,
			ScopeType:              entities.RuleScope(it.ScopeType),
			ScopeID:                it.ScopeID,
			SubscriptionDurationID: it.SubscriptionDurationID,
			DiscountType:           entities.DiscountType(it.DiscountType),
			DiscountValue:          value,
			Priority:               it.Priority,
			Stackable:              it.Stackable,
			Default:                it.Default,
			EffectiveFrom:          it.EffectiveFrom,
			EffectiveTo:            it.EffectiveTo,
		})
	}
	for _, it := range doc.FormTemplates {
		t := entities.FormTemplate{ID: it.ID, Name: it.Name}
		for _, f := range it.Fields {
			t.Fields = append(t.Fields, entities.FormField{ID: f.ID, Label: f.Label, Type: f.Type})
		}
		d.FormTemplates = append(d.FormTemplates, t)
	}
	for _, it := range doc.FormMappings {
		m := entities.FormMapping{
			CategoryID:       it.CategoryID,
			ProductID:        it.ProductID,
			FormTemplateID:   it.FormTemplateID,
			RequiredFieldIDs: it.RequiredFieldIDs,
		}
		for _, r := range it.ConditionalRules {
			m.ConditionalRules = append(m.ConditionalRules, entities.ConditionalRule{
				FieldID: r.FieldID,
				Effect:  entities.RuleEffect(r.Effect),
				Condition: entities.FieldCondition{
					FieldID:  r.Condition.FieldID,
					Operator: entities.ConditionOperator(r.Condition.Operator),
					Value:    r.Condition.Value,
				},
			})
		}
		d.FormMappings = append(d.FormMappings, m)
	}
	return d, nil
}

// Validate reports every configuration problem found: dangling references, invalid pricing rules,
// more than one default rule per scope, and malformed form mappings.
func (c *Catalog) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var errs []error
	for _, p := range c.products {
		if _, ok := c.categories[p.CategoryID]; !ok {
			errs = append(errs, fmt.Errorf("product %s: unknown category %s", p.ID, p.CategoryID))
		}
		if p.BasePrice.IsNegative() {
			errs = append(errs, fmt.Errorf("product %s: %w", p.ID, pricing.ErrNegativeBasePrice))
		}
		for _, id := range p.SubscriptionDurationIDs {
			if _, ok := c.durations[id]; !ok {
				errs = append(errs, fmt.Errorf("product %s: unknown subscription duration %s", p.ID, id))
			}
		}
	}
	for _, r := range c.rules {
		if err := pricing.ValidateRule(r); err != nil {
			errs = append(errs, err)
		}
	}
	if err := pricing.ValidateDefaults(c.rules); err != nil {
		errs = append(errs, err)
	}
	if err := forms.NewResolver(c.templates, c.mappings).ValidateAll(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Catalog) SetPricingRules(rules []entities.PricingRule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append([]entities.PricingRule(nil), rules...)
}

func (c *Catalog) GetCategory(_ context.Context, id string) (entities.Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categories[id], nil
}

func (c *Catalog) GetProduct(_ context.Context, id string) (entities.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.Product{}, nil
}

func (c *Catalog) GetSubscriptionDuration(_ context.Context, id string) (entities.SubscriptionDuration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.durations[id], nil
}

func (c *Catalog) ListProducts(_ context.Context) ([]entities.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entities.Product(nil), c.products...), nil
}

func (c *Catalog) ListPricingRules(_ context.Context) ([]entities.PricingRule, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entities.PricingRule(nil), c.rules...), nil
}

func (c *Catalog) ListFormTemplates(_ context.Context) ([]entities.FormTemplate, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entities.FormTemplate(nil), c.templates...), nil
}

func (c *Catalog) ListFormMappings(_ context.Context) ([]entities.FormMapping, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]entities.FormMapping(nil), c.mappings...), nil
}
