package formvalid

import (
	"github.com/goliatone/go-formvalid/pkg/form"
	"github.com/goliatone/go-formvalid/pkg/validate"
)

// Form re-exports the tree node type for convenience.
type Form = form.Form

// Type identifies a form's schema/configuration.
type Type = form.Type

// Item is the closed union over form content kinds.
type Item = form.Item

// Field is a leaf input.
type Field = form.Field

// Nested wraps exactly one always-validated child form.
type Nested = form.Nested

// Collection wraps an ordered list of child forms with removal markers.
type Collection = form.Collection

// CollectionEntry pairs a child form with its removal marker.
type CollectionEntry = form.CollectionEntry

// Errors maps field keys to ordered message sequences.
type Errors = form.Errors

// Strategy produces raw per-field error messages for one form level.
type Strategy = validate.Strategy

// Engine walks a form tree and computes validity bottom-up.
type Engine = validate.Engine

// Option customises the engine configuration.
type Option = validate.Option

// New exposes the engine constructor from the top-level module.
func New(options ...validate.Option) *validate.Engine {
	return validate.New(options...)
}

// Validate builds an engine from the provided options and validates the
// tree. It is the simplest entry point for callers that validate once.
func Validate(f *form.Form, options ...validate.Option) (*form.Form, error) {
	return validate.New(options...).Validate(f)
}

// WithDefaultStrategy forwards the engine option for callers importing only
// the root package.
func WithDefaultStrategy(strategy validate.Strategy) validate.Option {
	return validate.WithDefaultStrategy(strategy)
}

// WithStrategy registers a named strategy override.
func WithStrategy(strategy validate.Strategy) validate.Option {
	return validate.WithStrategy(strategy)
}

// WithTranslator sets the error translation function.
func WithTranslator(fn validate.TranslateFunc) validate.Option {
	return validate.WithTranslator(fn)
}

// WithRemoval replaces the collection removal predicate.
func WithRemoval(fn validate.RemovalFunc) validate.Option {
	return validate.WithRemoval(fn)
}
