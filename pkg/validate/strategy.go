package validate

import (
	"fmt"

	"github.com/goliatone/go-formvalid/pkg/form"
)

// Strategy produces raw per-field error messages for one form level.
//
// Contract: implementations populate the returned form's Errors based on its
// values and declared items, must not write Valid, and must not recurse into
// nested or collection children — recursion belongs to the engine. Returning
// an error is the fail-fast path for broken collaborator wiring, not for
// unsuccessful validation (that is data: Errors populated, Valid false).
type Strategy interface {
	Name() string
	Validate(f *form.Form) (*form.Form, error)
}

// StrategyFunc adapts a plain function into a named Strategy.
func StrategyFunc(name string, fn func(*form.Form) (*form.Form, error)) Strategy {
	return strategyFunc{name: name, fn: fn}
}

type strategyFunc struct {
	name string
	fn   func(*form.Form) (*form.Form, error)
}

func (s strategyFunc) Name() string {
	return s.name
}

func (s strategyFunc) Validate(f *form.Form) (*form.Form, error) {
	if s.fn == nil {
		return nil, fmt.Errorf("validate: strategy %q has no function", s.name)
	}
	return s.fn(f)
}
