// Package forms resolves which intake form template and fields a category/product pair requires,
// and checks submitted form data against the result.
package forms

import (
	"errors"
	"fmt"
	"strings"

	"telehealth_flow/internal/domain/entities"
)

// ErrMalformedFormMapping signals bad administrative configuration, not bad user input.
var ErrMalformedFormMapping = errors.New("malformed form mapping")

type Resolver struct {
	templates map[string]entities.FormTemplate
	mappings  []entities.FormMapping
}

func NewResolver(templates []entities.FormTemplate, mappings []entities.FormMapping) *Resolver {
	byID := make(map[string]entities.FormTemplate, len(templates))
	for _, t := range templates {
		byID[t.ID] = t
	}
	return &Resolver{templates: byID, mappings: mappings}
}

// Resolve looks up the product override first and falls back to the category default.
// Conditional rules from both scopes are merged; a product rule replaces a category rule on the
// same field. No mapping at all yields an empty requirement, not an error.
func (r *Resolver) Resolve(categoryID, productID string) (entities.FormRequirement, error) {
	var categoryMapping, productMapping *entities.FormMapping
	for i := range r.mappings {
		m := &r.mappings[i]
		if m.CategoryID != categoryID {
			continue
		}
		switch {
		case m.ProductID == "" && categoryMapping == nil:
			categoryMapping = m
		case productID != "" && m.ProductID == productID && productMapping == nil:
			productMapping = m
		}
	}

	req := entities.FormRequirement{CategoryID: categoryID, ProductID: productID, RequiredFieldIDs: []string{}}
	if categoryMapping == nil && productMapping == nil {
		return req, nil
	}

	primary := categoryMapping
	if productMapping != nil {
		primary = productMapping
	}
	req.FormTemplateID = primary.FormTemplateID
	if req.FormTemplateID == "" && categoryMapping != nil {
		req.FormTemplateID = categoryMapping.FormTemplateID
	}
	req.RequiredFieldIDs = dedupe(primary.RequiredFieldIDs)
	req.ConditionalRules = mergeRules(categoryMapping, productMapping)

	if err := r.validate(req); err != nil {
		return entities.FormRequirement{}, err
	}
	return req, nil
}

func mergeRules(category, product *entities.FormMapping) []entities.ConditionalRule {
	var out []entities.ConditionalRule
	overridden := map[string]struct{}{}
	if product != nil {
		for _, rule := range product.ConditionalRules {
			overridden[rule.FieldID] = struct{}{}
		}
	}
	if category != nil {
		for _, rule := range category.ConditionalRules {
			if _, ok := overridden[rule.FieldID]; ok {
				continue
			}
			out = append(out, rule)
		}
	}
	if product != nil {
		out = append(out, product.ConditionalRules...)
	}
	return out
}

func (r *Resolver) validate(req entities.FormRequirement) error {
	tpl, ok := r.templates[req.FormTemplateID]
	if !ok {
		return fmt.Errorf("%w: category %q product %q references unknown template %q",
			ErrMalformedFormMapping, req.CategoryID, req.ProductID, req.FormTemplateID)
	}
	for _, id := range req.RequiredFieldIDs {
		if !tpl.HasField(id) {
			return fmt.Errorf("%w: required field %q is not declared by template %q", ErrMalformedFormMapping, id, tpl.ID)
		}
	}
	for _, rule := range req.ConditionalRules {
		if !tpl.HasField(rule.FieldID) || !tpl.HasField(rule.Condition.FieldID) {
			return fmt.Errorf("%w: conditional rule on %q references a field not declared by template %q",
				ErrMalformedFormMapping, rule.FieldID, tpl.ID)
		}
		switch rule.Effect {
		case entities.RuleEffectShow, entities.RuleEffectRequire, entities.RuleEffectHide:
		default:
			return fmt.Errorf("%w: conditional rule on %q has unknown effect %q", ErrMalformedFormMapping, rule.FieldID, rule.Effect)
		}
		switch rule.Condition.Operator {
		case entities.ConditionEquals, entities.ConditionNotEquals, entities.ConditionPresent,
			entities.ConditionAbsent, entities.ConditionIn:
		default:
			return fmt.Errorf("%w: conditional rule on %q has unknown operator %q",
				ErrMalformedFormMapping, rule.FieldID, rule.Condition.Operator)
		}
	}
	return nil
}

// ValidateAll resolves every mapping once so configuration errors surface at load time.
func (r *Resolver) ValidateAll() error {
	var errs []error
	for _, m := range r.mappings {
		if _, err := r.Resolve(m.CategoryID, m.ProductID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// MissingFields returns, in requirement order, the ids of fields that must be filled in but are
// blank in data. Hidden fields are never required; a "require" rule adds its field when its
// condition holds. A field with "show" rules is hidden unless at least one of them holds.
func MissingFields(req entities.FormRequirement, data map[string]string) []string {
	hidden := map[string]struct{}{}
	shown := map[string]bool{}
	var extra []string
	for _, rule := range req.ConditionalRules {
		holds := conditionHolds(rule.Condition, data)
		if rule.Effect == entities.RuleEffectShow {
			shown[rule.FieldID] = shown[rule.FieldID] || holds
			continue
		}
		if !holds {
			continue
		}
		switch rule.Effect {
		case entities.RuleEffectHide:
			hidden[rule.FieldID] = struct{}{}
		case entities.RuleEffectRequire:
			extra = append(extra, rule.FieldID)
		}
	}
	for id, visible := range shown {
		if !visible {
			hidden[id] = struct{}{}
		}
	}

	missing := []string{}
	seen := map[string]struct{}{}
	check := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		if _, ok := hidden[id]; ok {
			return
		}
		if strings.TrimSpace(data[id]) == "" {
			missing = append(missing, id)
		}
	}
	for _, id := range req.RequiredFieldIDs {
		check(id)
	}
	for _, id := range extra {
		check(id)
	}
	return missing
}

func conditionHolds(c entities.FieldCondition, data map[string]string) bool {
	v := strings.TrimSpace(data[c.FieldID])
	switch c.Operator {
	case entities.ConditionEquals:
		return strings.EqualFold(v, c.Value)
	case entities.ConditionNotEquals:
		return !strings.EqualFold(v, c.Value)
	case entities.ConditionPresent:
		return v != ""
	case entities.ConditionAbsent:
		return v == ""
	case entities.ConditionIn:
		for _, opt := range strings.Split(c.Value, ",") {
			if strings.EqualFold(strings.TrimSpace(opt), v) {
				return true
			}
		}
	}
	return false
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
