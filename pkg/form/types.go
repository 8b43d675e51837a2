package form

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
	FieldTypeObject  FieldType = "object"
)

const (
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleEnum      = "enum"
)

// ValidationRule represents a single declarative constraint applied to a
// field. Use the Rule* constants for the canonical kinds (min/max,
// minLength/maxLength, pattern, enum). Numeric bounds and length limits
// encode their threshold in Params["value"], pattern rules keep the original
// expression in Params["pattern"], and enum rules list accepted values in
// Params["values"] (comma separated). Params["message"] overrides the message
// template used when the rule fails.
type ValidationRule struct {
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// Type identifies a form's schema/configuration. Validator optionally names a
// strategy override registered with the engine; when empty the engine falls
// back to its process-wide default strategy.
type Type struct {
	Name      string `json:"name"`
	Validator string `json:"validator,omitempty"`
}

// Form is one level of a form tree: the declared items, the submitted values
// for this level, and the validation outputs (Errors, Valid) the engine
// writes. Tree shape is never changed by validation; only Errors and Valid
// are.
type Form struct {
	Type   Type           `json:"type"`
	Items  []Item         `json:"items,omitempty"`
	Values map[string]any `json:"values,omitempty"`
	Errors Errors         `json:"errors,omitempty"`
	Valid  bool           `json:"valid"`
}

// Item is the closed union over the kinds of content a form level can hold:
// Field, Nested, and Collection. Code walking a tree should type-switch over
// these three and treat anything else as a contract violation.
type Item interface {
	isItem()
}

// Field is a leaf input. Validation strategies inspect it; the traversal
// engine never recurses into it.
type Field struct {
	Name        string           `json:"name"`
	Type        FieldType        `json:"type"`
	Required    bool             `json:"required"`
	Label       string           `json:"label,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty"`
}

func (Field) isItem() {}

// Nested wraps exactly one child form: a required, always-present sub-form
// such as an embedded one-to-one relation. Nested children have no removal
// concept and are always validated.
type Nested struct {
	Name string `json:"name"`
	Form *Form  `json:"form"`
}

func (Nested) isItem() {}

// Collection wraps an ordered list of child forms with individual removal
// markers: a repeatable one-to-many relation. RemovalKey optionally names a
// value on each entry's form whose truthy submission marks the entry for
// removal (for example "_destroy").
type Collection struct {
	Name       string            `json:"name"`
	RemovalKey string            `json:"removalKey,omitempty"`
	Entries    []CollectionEntry `json:"entries,omitempty"`
}

func (Collection) isItem() {}

// CollectionEntry pairs a child form with its removal marker. Entries marked
// for removal skip validation entirely and have Valid forced true.
type CollectionEntry struct {
	Form    *Form `json:"form"`
	Removed bool  `json:"removed,omitempty"`
}

// Fields returns the plain field items declared at this level, in order.
func (f *Form) Fields() []Field {
	if f == nil || len(f.Items) == 0 {
		return nil
	}
	out := make([]Field, 0, len(f.Items))
	for _, item := range f.Items {
		if fld, ok := item.(Field); ok {
			out = append(out, fld)
		}
	}
	return out
}

// Clone returns a copy of the form that owns its Errors map, Values map, and
// Items slice. Child forms referenced by nested and collection items are
// shared; callers replacing children must assign fresh items rather than
// mutate through the shared pointers.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	out := *f
	out.Errors = f.Errors.Clone()
	if f.Items != nil {
		out.Items = make([]Item, len(f.Items))
		copy(out.Items, f.Items)
	}
	if f.Values != nil {
		out.Values = make(map[string]any, len(f.Values))
		for key, value := range f.Values {
			out.Values[key] = value
		}
	}
	return &out
}
