package forms

import (
	"errors"
	"reflect"
	"testing"

	"telehealth_flow/internal/domain/entities"
)

func templates() []entities.FormTemplate {
	return []entities.FormTemplate{
		{ID: "weight-intake", Fields: []entities.FormField{
			{ID: "height"}, {ID: "weight"}, {ID: "allergies"}, {ID: "pregnant"}, {ID: "sex"}, {ID: "due_date"}, {ID: "thyroid_history"},
		}},
		{ID: "glp1-intake", Fields: []entities.FormField{
			{ID: "height"}, {ID: "weight"}, {ID: "allergies"}, {ID: "thyroid_history"}, {ID: "sex"}, {ID: "pregnant"}, {ID: "due_date"},
		}},
	}
}

func mappings() []entities.FormMapping {
	return []entities.FormMapping{
		{
			CategoryID:       "weight-mgmt",
			FormTemplateID:   "weight-intake",
			RequiredFieldIDs: []string{"height", "weight", "allergies"},
			ConditionalRules: []entities.ConditionalRule{
				{FieldID: "pregnant", Condition: entities.FieldCondition{FieldID: "sex", Operator: entities.ConditionEquals, Value: "female"}, Effect: entities.RuleEffectRequire},
				{FieldID: "due_date", Condition: entities.FieldCondition{FieldID: "pregnant", Operator: entities.ConditionEquals, Value: "yes"}, Effect: entities.RuleEffectRequire},
			},
		},
		{
			CategoryID:       "weight-mgmt",
			ProductID:        "semaglutide-1",
			FormTemplateID:   "glp1-intake",
			RequiredFieldIDs: []string{"height", "weight", "allergies", "thyroid_history"},
			ConditionalRules: []entities.ConditionalRule{
				{FieldID: "pregnant", Condition: entities.FieldCondition{FieldID: "sex", Operator: entities.ConditionIn, Value: "female, intersex"}, Effect: entities.RuleEffectRequire},
			},
		},
	}
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(templates(), mappings())

	t.Run("product override", func(t *testing.T) {
		req, err := r.Resolve("weight-mgmt", "semaglutide-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.FormTemplateID != "glp1-intake" {
			t.Fatalf("expected product template, got %s", req.FormTemplateID)
		}
		if !reflect.DeepEqual(req.RequiredFieldIDs, []string{"height", "weight", "allergies", "thyroid_history"}) {
			t.Fatalf("unexpected required fields: %v", req.RequiredFieldIDs)
		}
		// category rule on due_date kept, product rule on pregnant replaces the category one
		if len(req.ConditionalRules) != 2 {
			t.Fatalf("expected 2 merged rules, got %+v", req.ConditionalRules)
		}
		if req.ConditionalRules[1].Condition.Operator != entities.ConditionIn {
			t.Fatalf("expected product rule to win, got %+v", req.ConditionalRules[1])
		}
	})

	t.Run("category fallback", func(t *testing.T) {
		req, err := r.Resolve("weight-mgmt", "tirzepatide-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.FormTemplateID != "weight-intake" || req.ProductID != "tirzepatide-1" {
			t.Fatalf("unexpected requirement: %+v", req)
		}
	})

	t.Run("no mapping", func(t *testing.T) {
		req, err := r.Resolve("dermatology", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if req.FormTemplateID != "" || len(req.RequiredFieldIDs) != 0 {
			t.Fatalf("expected empty requirement, got %+v", req)
		}
	})
}

func TestResolver_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		mapping entities.FormMapping
	}{
		{name: "unknown template", mapping: entities.FormMapping{CategoryID: "c", FormTemplateID: "missing"}},
		{name: "required field not in template", mapping: entities.FormMapping{CategoryID: "c", FormTemplateID: "glp1-intake", RequiredFieldIDs: []string{"bmi"}}},
		{name: "rule field not in template", mapping: entities.FormMapping{CategoryID: "c", FormTemplateID: "glp1-intake", ConditionalRules: []entities.ConditionalRule{
			{FieldID: "bmi", Condition: entities.FieldCondition{FieldID: "sex", Operator: entities.ConditionPresent}, Effect: entities.RuleEffectShow},
		}}},
		{name: "unknown operator", mapping: entities.FormMapping{CategoryID: "c", FormTemplateID: "glp1-intake", ConditionalRules: []entities.ConditionalRule{
			{FieldID: "pregnant", Condition: entities.FieldCondition{FieldID: "sex", Operator: "matches"}, Effect: entities.RuleEffectShow},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewResolver(templates(), []entities.FormMapping{tc.mapping})
			_, err := r.Resolve("c", "")
			if !errors.Is(err, ErrMalformedFormMapping) {
				t.Fatalf("expected ErrMalformedFormMapping, got %v", err)
			}
			if !errors.Is(r.ValidateAll(), ErrMalformedFormMapping) {
				t.Fatalf("expected ValidateAll to report the mapping")
			}
		})
	}
}

func TestMissingFields(t *testing.T) {
	req, err := NewResolver(templates(), mappings()).Resolve("weight-mgmt", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name string
		data map[string]string
		want []string
	}{
		{name: "all missing", data: map[string]string{}, want: []string{"height", "weight", "allergies"}},
		{name: "blank counts as missing", data: map[string]string{"height": "170", "weight": "80", "allergies": "  "}, want: []string{"allergies"}},
		{name: "complete", data: map[string]string{"height": "170", "weight": "80", "allergies": "none", "sex": "male"}, want: []string{}},
		{name: "conditional require", data: map[string]string{"height": "170", "weight": "80", "allergies": "none", "sex": "Female"}, want: []string{"pregnant"}},
		{name: "chained conditional", data: map[string]string{"height": "170", "weight": "80", "allergies": "none", "sex": "female", "pregnant": "yes"}, want: []string{"due_date"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MissingFields(req, tc.data)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("hide wins over required", func(t *testing.T) {
		hidden := req.Clone()
		hidden.ConditionalRules = append(hidden.ConditionalRules, entities.ConditionalRule{
			FieldID: "allergies", Condition: entities.FieldCondition{FieldID: "sex", Operator: entities.ConditionEquals, Value: "male"}, Effect: entities.RuleEffectHide,
		})
		got := MissingFields(hidden, map[string]string{"height": "1", "weight": "2", "sex": "male"})
		if len(got) != 0 {
			t.Fatalf("expected no missing fields, got %v", got)
		}
	})
}

func TestMissingFields_ShowEffect(t *testing.T) {
	req := entities.FormRequirement{
		FormTemplateID:   "weight-intake",
		RequiredFieldIDs: []string{"pregnant", "due_date"},
		ConditionalRules: []entities.ConditionalRule{
			{FieldID: "due_date", Condition: entities.FieldCondition{FieldID: "pregnant", Operator: entities.ConditionEquals, Value: "yes"}, Effect: entities.RuleEffectShow},
		},
	}

	cases := []struct {
		name string
		data map[string]string
		want []string
	}{
		{name: "not shown is not required", data: map[string]string{"pregnant": "no"}, want: []string{}},
		{name: "shown and blank", data: map[string]string{"pregnant": "yes"}, want: []string{"due_date"}},
		{name: "shown and filled", data: map[string]string{"pregnant": "yes", "due_date": "2027-01-01"}, want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MissingFields(req, tc.data)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("any holding show rule makes the field visible", func(t *testing.T) {
		multi := req.Clone()
		multi.ConditionalRules = append(multi.ConditionalRules, entities.ConditionalRule{
			FieldID: "due_date", Condition: entities.FieldCondition{FieldID: "sex", Operator: entities.ConditionEquals, Value: "female"}, Effect: entities.RuleEffectShow,
		})
		got := MissingFields(multi, map[string]string{"pregnant": "no", "sex": "female"})
		if !reflect.DeepEqual(got, []string{"due_date"}) {
			t.Fatalf("expected [due_date], got %v", got)
		}
	})
}
