package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formvalid/pkg/form"
)

// TranslateFunc maps a raw error message to its display representation. A nil
// function behaves as identity. Translation never changes which fields carry
// errors or how many messages each field has — only message content.
type TranslateFunc func(message string) string

// RemovalFunc decides whether a collection entry is marked for removal.
// Removed entries skip validation entirely and have Valid forced true.
type RemovalFunc func(c form.Collection, entry form.CollectionEntry) bool

// DefaultRemoval honours the entry's Removed marker and, when the collection
// declares a RemovalKey, a truthy submitted value under that key on the
// entry's form (the "_destroy" convention).
func DefaultRemoval(c form.Collection, entry form.CollectionEntry) bool {
	if entry.Removed {
		return true
	}
	key := strings.TrimSpace(c.RemovalKey)
	if key == "" || entry.Form == nil {
		return false
	}
	return truthy(entry.Form.Values[key])
}

// Option customises the engine configuration.
type Option func(*Engine)

// WithDefaultStrategy sets the process-wide fallback strategy used when a
// form type declares no validator override.
func WithDefaultStrategy(strategy Strategy) Option {
	return func(e *Engine) {
		e.defaultStrategy = strategy
	}
}

// WithStrategy registers a named strategy that form types can select through
// Type.Validator. Panics on duplicate names; registration is init-time
// wiring.
func WithStrategy(strategy Strategy) Option {
	return func(e *Engine) {
		e.registry.MustRegister(strategy)
	}
}

// WithRegistry replaces the engine's strategy registry. Apply before any
// WithStrategy options.
func WithRegistry(registry *StrategyRegistry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.registry = registry
		}
	}
}

// WithTranslator sets the error translation function applied to every raw
// message at every level. Nil restores the identity behaviour.
func WithTranslator(fn TranslateFunc) Option {
	return func(e *Engine) {
		e.translate = fn
	}
}

// WithRemoval replaces the predicate deciding whether a collection entry is
// marked for removal.
func WithRemoval(fn RemovalFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.removal = fn
		}
	}
}

// Engine walks a form tree, delegating field-level validation to the resolved
// strategy at each level and computing Valid bottom-up. It is safe for
// concurrent use once constructed.
type Engine struct {
	defaultStrategy Strategy
	registry        *StrategyRegistry
	translate       TranslateFunc
	removal         RemovalFunc
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{
		registry: NewStrategyRegistry(),
		removal:  DefaultRemoval,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Validate returns a structurally identical tree with Errors translated and
// Valid populated at every level. The input tree is not mutated; callers
// receive either a fully validated tree or an error, never a partial result.
//
// Errors are configuration or collaborator failures (no resolvable strategy,
// a strategy returning a malformed result); unsuccessful validation is not an
// error — it is Errors populated and Valid false on the returned tree.
func (e *Engine) Validate(f *form.Form) (*form.Form, error) {
	if f == nil {
		return nil, errors.New("validate: form is required")
	}
	return e.validateLevel(f)
}

func (e *Engine) validateLevel(f *form.Form) (*form.Form, error) {
	strategy, err := e.resolveStrategy(f)
	if err != nil {
		return nil, err
	}

	result, err := strategy.Validate(f)
	if err != nil {
		return nil, fmt.Errorf("validate: strategy %q: %w", strategy.Name(), err)
	}
	if result == nil {
		return nil, fmt.Errorf("validate: strategy %q returned no form", strategy.Name())
	}

	out := result.Clone()
	out.Errors = e.translateErrors(out.Errors)

	for i, item := range out.Items {
		switch it := item.(type) {
		case form.Field:
			// Leaves carry no children; nothing to do.
		case form.Nested:
			if it.Form == nil {
				return nil, fmt.Errorf("validate: nested item %q has no form", it.Name)
			}
			child, err := e.validateLevel(it.Form)
			if err != nil {
				return nil, err
			}
			it.Form = child
			out.Items[i] = it
		case form.Collection:
			entries := make([]form.CollectionEntry, len(it.Entries))
			for j, entry := range it.Entries {
				if entry.Form == nil {
					return nil, fmt.Errorf("validate: collection %q entry %d has no form", it.Name, j)
				}
				if e.removal(it, entry) {
					child := entry.Form.Clone()
					child.Valid = true
					entry.Form = child
				} else {
					child, err := e.validateLevel(entry.Form)
					if err != nil {
						return nil, err
					}
					entry.Form = child
				}
				entries[j] = entry
			}
			it.Entries = entries
			out.Items[i] = it
		default:
			return nil, fmt.Errorf("validate: unknown form item %T", item)
		}
	}

	out.Valid = aggregateValid(out)
	return out, nil
}

// resolveStrategy resolves independently at every level: the form type's
// named override first, then the engine default. Neither being available is
// a configuration error.
func (e *Engine) resolveStrategy(f *form.Form) (Strategy, error) {
	if name := strings.TrimSpace(f.Type.Validator); name != "" {
		return e.registry.Get(name)
	}
	if e.defaultStrategy == nil {
		return nil, fmt.Errorf("validate: no strategy for form type %q and no default configured", f.Type.Name)
	}
	return e.defaultStrategy, nil
}

func (e *Engine) translateErrors(errs form.Errors) form.Errors {
	if e.translate == nil || len(errs) == 0 {
		return errs
	}
	out := make(form.Errors, len(errs))
	for field, messages := range errs {
		if messages == nil {
			out[field] = nil
			continue
		}
		translated := make([]string, len(messages))
		for i, message := range messages {
			translated[i] = e.translate(message)
		}
		out[field] = translated
	}
	return out
}

// aggregateValid combines the three predicates: own error sequences all
// empty, every nested child valid, every collection entry valid. Removed
// entries were already forced valid, so the scan is uniform.
func aggregateValid(f *form.Form) bool {
	if !f.Errors.Empty() {
		return false
	}
	for _, item := range f.Items {
		switch it := item.(type) {
		case form.Nested:
			if it.Form != nil && !it.Form.Valid {
				return false
			}
		case form.Collection:
			for _, entry := range it.Entries {
				if entry.Form != nil && !entry.Form.Valid {
					return false
				}
			}
		}
	}
	return true
}

func truthy(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "on":
			return true
		}
		return false
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
