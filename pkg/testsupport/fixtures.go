package testsupport

import (
	"testing"

	"github.com/goliatone/go-formvalid/pkg/form"
	"github.com/goliatone/go-formvalid/pkg/validate"
)

// StaticStrategy returns a strategy reporting a fixed error payload for every
// form it sees, letting traversal tests run without real rules.
func StaticStrategy(name string, errs map[string][]string) validate.Strategy {
	return validate.StrategyFunc(name, func(f *form.Form) (*form.Form, error) {
		out := f.Clone()
		out.Errors = form.Errors(errs).Clone()
		if out.Errors == nil {
			out.Errors = form.Errors{}
		}
		return out, nil
	})
}

// CleanStrategy returns a strategy that reports no errors.
func CleanStrategy(name string) validate.Strategy {
	return StaticStrategy(name, nil)
}

// MustValidate runs the engine and fails the test on configuration errors so
// assertions stay focused on the returned tree.
func MustValidate(t *testing.T, engine *validate.Engine, f *form.Form) *form.Form {
	t.Helper()

	out, err := engine.Validate(f)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	return out
}

// TextField builds a string field, optionally required.
func TextField(name string, required bool, rules ...form.ValidationRule) form.Field {
	return form.Field{
		Name:        name,
		Type:        form.FieldTypeString,
		Required:    required,
		Validations: rules,
	}
}
