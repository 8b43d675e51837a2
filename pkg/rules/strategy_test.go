package rules_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalid/pkg/form"
	"github.com/goliatone/go-formvalid/pkg/rules"
)

func validateValues(t *testing.T, strategy *rules.Strategy, items []form.Item, values map[string]any) form.Errors {
	t.Helper()

	out, err := strategy.Validate(&form.Form{Items: items, Values: values})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return out.Errors
}

func TestStrategy_Required(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{Name: "name", Type: form.FieldTypeString, Required: true}}

	cases := []struct {
		name   string
		values map[string]any
		want   form.Errors
	}{
		{"missing", nil, form.Errors{"name": {"can't be blank"}}},
		{"blank string", map[string]any{"name": "   "}, form.Errors{"name": {"can't be blank"}}},
		{"present", map[string]any{"name": "ok"}, form.Errors{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := validateValues(t, strategy, items, tc.values)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStrategy_BlankSkipsOtherRules(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "nickname",
		Type: form.FieldTypeString,
		Validations: []form.ValidationRule{
			{Kind: form.RuleMinLength, Params: map[string]string{"value": "3"}},
		},
	}}

	got := validateValues(t, strategy, items, nil)
	if len(got) != 0 {
		t.Fatalf("optional blank field should pass, got %v", got)
	}
}

func TestStrategy_LengthRules(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "title",
		Type: form.FieldTypeString,
		Validations: []form.ValidationRule{
			{Kind: form.RuleMinLength, Params: map[string]string{"value": "3"}},
			{Kind: form.RuleMaxLength, Params: map[string]string{"value": "5"}},
		},
	}}

	got := validateValues(t, strategy, items, map[string]any{"title": "ab"})
	want := form.Errors{"title": {"is too short (minimum is 3 characters)"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("min length mismatch (-want +got):\n%s", diff)
	}

	got = validateValues(t, strategy, items, map[string]any{"title": "abcdef"})
	want = form.Errors{"title": {"is too long (maximum is 5 characters)"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("max length mismatch (-want +got):\n%s", diff)
	}

	if got := validateValues(t, strategy, items, map[string]any{"title": "abcd"}); len(got) != 0 {
		t.Fatalf("in-range value should pass, got %v", got)
	}
}

func TestStrategy_NumericBounds(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "age",
		Type: form.FieldTypeInteger,
		Validations: []form.ValidationRule{
			{Kind: form.RuleMin, Params: map[string]string{"value": "18"}},
			{Kind: form.RuleMax, Params: map[string]string{"value": "120"}},
		},
	}}

	got := validateValues(t, strategy, items, map[string]any{"age": 16})
	want := form.Errors{"age": {"must be greater than or equal to 18"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("min mismatch (-want +got):\n%s", diff)
	}

	// String submissions coerce before comparing.
	got = validateValues(t, strategy, items, map[string]any{"age": "130"})
	want = form.Errors{"age": {"must be less than or equal to 120"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("max mismatch (-want +got):\n%s", diff)
	}

	if got := validateValues(t, strategy, items, map[string]any{"age": 42}); len(got) != 0 {
		t.Fatalf("in-range value should pass, got %v", got)
	}
}

func TestStrategy_Pattern(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "slug",
		Type: form.FieldTypeString,
		Validations: []form.ValidationRule{
			{Kind: form.RulePattern, Params: map[string]string{"pattern": `^[a-z0-9-]+$`}},
		},
	}}

	got := validateValues(t, strategy, items, map[string]any{"slug": "Hello World"})
	want := form.Errors{"slug": {"is invalid"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pattern mismatch (-want +got):\n%s", diff)
	}

	if got := validateValues(t, strategy, items, map[string]any{"slug": "hello-world"}); len(got) != 0 {
		t.Fatalf("matching value should pass, got %v", got)
	}
}

func TestStrategy_Enum(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "status",
		Type: form.FieldTypeString,
		Validations: []form.ValidationRule{
			{Kind: form.RuleEnum, Params: map[string]string{"values": "draft, published, archived"}},
		},
	}}

	got := validateValues(t, strategy, items, map[string]any{"status": "deleted"})
	want := form.Errors{"status": {"is not included in the list"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}

	if got := validateValues(t, strategy, items, map[string]any{"status": "draft"}); len(got) != 0 {
		t.Fatalf("accepted value should pass, got %v", got)
	}
}

func TestStrategy_PerRuleMessageOverride(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name: "title",
		Type: form.FieldTypeString,
		Validations: []form.ValidationRule{
			{Kind: form.RuleMinLength, Params: map[string]string{
				"value":   "3",
				"message": "needs at least {{ value }} characters",
			}},
		},
	}}

	got := validateValues(t, strategy, items, map[string]any{"title": "ab"})
	want := form.Errors{"title": {"needs at least 3 characters"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("override mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategy_CustomMessageSet(t *testing.T) {
	strategy := rules.New(rules.WithMessages(map[string]string{
		rules.KindRequired: "este campo es obligatorio",
	}))
	items := []form.Item{form.Field{Name: "name", Type: form.FieldTypeString, Required: true}}

	got := validateValues(t, strategy, items, nil)
	want := form.Errors{"name": {"este campo es obligatorio"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("custom message mismatch (-want +got):\n%s", diff)
	}
}

func TestStrategy_BrokenRulesFailFast(t *testing.T) {
	strategy := rules.New()

	_, err := strategy.Validate(&form.Form{
		Items: []form.Item{form.Field{
			Name: "slug",
			Type: form.FieldTypeString,
			Validations: []form.ValidationRule{
				{Kind: form.RulePattern, Params: map[string]string{"pattern": "(["}},
			},
		}},
		Values: map[string]any{"slug": "x"},
	})
	if err == nil || !strings.Contains(err.Error(), "compile pattern") {
		t.Fatalf("expected pattern compile error, got %v", err)
	}

	_, err = strategy.Validate(&form.Form{
		Items: []form.Item{form.Field{
			Name:        "age",
			Type:        form.FieldTypeInteger,
			Validations: []form.ValidationRule{{Kind: form.RuleMin}},
		}},
		Values: map[string]any{"age": 1},
	})
	if err == nil {
		t.Fatalf("expected missing param error")
	}
}

func TestStrategy_UnknownKindsIgnored(t *testing.T) {
	strategy := rules.New()
	items := []form.Item{form.Field{
		Name:        "title",
		Type:        form.FieldTypeString,
		Validations: []form.ValidationRule{{Kind: "uiOnlyHint"}},
	}}

	if got := validateValues(t, strategy, items, map[string]any{"title": "ok"}); len(got) != 0 {
		t.Fatalf("unknown kinds should be skipped, got %v", got)
	}
}

func TestStrategy_DoesNotTouchValidOrRecurse(t *testing.T) {
	strategy := rules.New()
	child := &form.Form{
		Items: []form.Item{form.Field{Name: "email", Type: form.FieldTypeString, Required: true}},
	}
	input := &form.Form{
		Valid: true,
		Items: []form.Item{
			form.Field{Name: "title", Type: form.FieldTypeString, Required: true},
			form.Nested{Name: "author", Form: child},
		},
	}

	out, err := strategy.Validate(input)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !out.Valid {
		t.Fatalf("strategy must not write Valid")
	}
	if len(child.Errors) != 0 {
		t.Fatalf("strategy must not recurse into children")
	}
	want := form.Errors{"title": {"can't be blank"}}
	if diff := cmp.Diff(want, out.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}
