package entities

// FormField is a field declared by an intake form template.
type FormField struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type FormTemplate struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Fields []FormField `json:"fields"`
}

func (t FormTemplate) HasField(id string) bool {
	for _, f := range t.Fields {
		if f.ID == id {
			return true
		}
	}
	return false
}

type ConditionOperator string

const (
	ConditionEquals    ConditionOperator = "equals"
	ConditionNotEquals ConditionOperator = "not_equals"
	ConditionPresent   ConditionOperator = "present"
	ConditionAbsent    ConditionOperator = "absent"
	ConditionIn        ConditionOperator = "in"
)

// FieldCondition is evaluated against submitted form data. For ConditionIn, Value is a
// comma-separated list.
type FieldCondition struct {
	FieldID  string            `json:"field_id"`
	Operator ConditionOperator `json:"operator"`
	Value    string            `json:"value,omitempty"`
}

type RuleEffect string

const (
	RuleEffectShow    RuleEffect = "show"
	RuleEffectRequire RuleEffect = "require"
	RuleEffectHide    RuleEffect = "hide"
)

// ConditionalRule applies Effect to FieldID when Condition holds.
type ConditionalRule struct {
	FieldID   string         `json:"field_id"`
	Condition FieldCondition `json:"condition"`
	Effect    RuleEffect     `json:"effect"`
}

// FormMapping is the administrative configuration tying a category (ProductID empty) or a
// product override to a form template.
type FormMapping struct {
	CategoryID       string            `json:"category_id"`
	ProductID        string            `json:"product_id,omitempty"`
	FormTemplateID   string            `json:"form_template_id"`
	RequiredFieldIDs []string          `json:"required_field_ids"`
	ConditionalRules []ConditionalRule `json:"conditional_rules,omitempty"`
}

// FormRequirement is the resolved template and field requirements for a category/product pair.
// An empty FormTemplateID means no intake form is configured.
type FormRequirement struct {
	CategoryID       string            `json:"category_id"`
	ProductID        string            `json:"product_id,omitempty"`
	FormTemplateID   string            `json:"form_template_id,omitempty"`
	RequiredFieldIDs []string          `json:"required_field_ids"`
	ConditionalRules []ConditionalRule `json:"conditional_rules,omitempty"`
}

func (r FormRequirement) Clone() FormRequirement {
	out := r
	out.RequiredFieldIDs = append([]string(nil), r.RequiredFieldIDs...)
	out.ConditionalRules = append([]ConditionalRule(nil), r.ConditionalRules...)
	return out
}
