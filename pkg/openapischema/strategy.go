// Package openapischema adapts an OpenAPI object schema into a validation
// strategy: field values are checked against the matching property schemas
// and schema violations surface as raw per-field messages.
package openapischema

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formvalid/pkg/form"
)

const defaultName = "openapi"

const blankMessage = "can't be blank"

// Option configures the strategy before construction.
type Option func(*Strategy)

// WithName overrides the registry name (defaults to "openapi").
func WithName(name string) Option {
	return func(s *Strategy) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.name = trimmed
		}
	}
}

// Strategy validates one form level against an OpenAPI object schema. Only
// fields declared on the form are checked, so schema properties without a
// matching field are ignored and the error key set stays tied to the form.
type Strategy struct {
	name   string
	schema *openapi3.Schema
}

// New constructs a strategy around an already-resolved schema.
func New(schema *openapi3.Schema, options ...Option) *Strategy {
	s := &Strategy{
		name:   defaultName,
		schema: schema,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// FromFile loads an OpenAPI document and builds a strategy from the named
// component schema.
func FromFile(ctx context.Context, path, component string, options ...Option) (*Strategy, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("openapischema: document path is required")
	}
	component = strings.TrimSpace(component)
	if component == "" {
		return nil, errors.New("openapischema: component schema name is required")
	}

	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapischema: load document: %w", err)
	}
	if doc.Components == nil {
		return nil, fmt.Errorf("openapischema: document %q has no component schemas", path)
	}
	ref, ok := doc.Components.Schemas[component]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapischema: component schema %q not found", component)
	}
	return New(ref.Value, options...), nil
}

// Name identifies the strategy in a registry.
func (s *Strategy) Name() string {
	return s.name
}

// Validate returns a copy of the form with Errors populated from schema
// violations. Missing or blank values only error when the field is required
// by the schema or the form; non-blank values are checked against the
// matching property schema.
func (s *Strategy) Validate(f *form.Form) (*form.Form, error) {
	if s == nil || s.schema == nil {
		return nil, errors.New("openapischema: schema is required")
	}
	if f == nil {
		return nil, errors.New("openapischema: form is required")
	}

	required := make(map[string]struct{}, len(s.schema.Required))
	for _, name := range s.schema.Required {
		required[name] = struct{}{}
	}

	out := f.Clone()
	out.Errors = form.Errors{}

	for _, fld := range f.Fields() {
		value, present := lookupValue(f.Values, fld.Name)
		if !present || isBlank(value) {
			_, need := required[fld.Name]
			if need || fld.Required {
				out.Errors[fld.Name] = append(out.Errors[fld.Name], blankMessage)
			}
			continue
		}

		prop := s.property(fld.Name)
		if prop == nil {
			continue
		}
		if err := prop.VisitJSON(jsonValue(value), openapi3.MultiErrors()); err != nil {
			out.Errors[fld.Name] = append(out.Errors[fld.Name], schemaMessages(err)...)
		}
	}
	return out, nil
}

func (s *Strategy) property(name string) *openapi3.Schema {
	if s.schema.Properties == nil {
		return nil
	}
	ref, ok := s.schema.Properties[name]
	if !ok || ref == nil {
		return nil
	}
	return ref.Value
}

// schemaMessages flattens kin-openapi validation errors into display-friendly
// raw messages, preferring the schema error reason over the full error text.
func schemaMessages(err error) []string {
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		out := make([]string, 0, len(multi))
		for _, entry := range multi {
			out = append(out, schemaMessages(entry)...)
		}
		return form.NormalizeMessages(out)
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		if reason := strings.TrimSpace(schemaErr.Reason); reason != "" {
			return []string{reason}
		}
	}

	message := strings.TrimSpace(err.Error())
	if message == "" {
		return nil
	}
	return []string{message}
}

func lookupValue(values map[string]any, name string) (any, bool) {
	if values == nil {
		return nil, false
	}
	value, ok := values[name]
	return value, ok
}

// jsonValue coerces Go numerics into the float64 representation kin-openapi
// expects for JSON-decoded values.
func jsonValue(value any) any {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return value
	}
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	default:
		return false
	}
}
