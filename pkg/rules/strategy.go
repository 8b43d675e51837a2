package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/goliatone/go-formvalid/pkg/form"
)

const defaultName = "rules"

// Option configures the strategy before construction.
type Option func(*Strategy)

// WithName overrides the registry name (defaults to "rules"). Useful when
// registering multiple instances with different message sets.
func WithName(name string) Option {
	return func(s *Strategy) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.name = trimmed
		}
	}
}

// WithMessages overrides the default message template for the given rule
// kinds. Templates receive the rule params as context (see Messages).
func WithMessages(templates map[string]string) Option {
	return func(s *Strategy) {
		for kind, tpl := range templates {
			kind = strings.TrimSpace(kind)
			if kind == "" || strings.TrimSpace(tpl) == "" {
				continue
			}
			s.messages.set(kind, tpl)
		}
	}
}

// Strategy evaluates Field.Required and Field.Validations against the form's
// submitted values. It populates Errors only, never touches Valid, and never
// recurses into nested or collection children.
type Strategy struct {
	name     string
	messages *Messages

	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// New constructs a rules strategy applying any provided options.
func New(options ...Option) *Strategy {
	s := &Strategy{
		name:     defaultName,
		messages: newMessages(),
		patterns: make(map[string]*regexp.Regexp),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Name identifies the strategy in a registry.
func (s *Strategy) Name() string {
	return s.name
}

// Validate returns a copy of the form with Errors populated from the declared
// rules. Broken rule definitions (an invalid pattern, a malformed message
// template) fail fast with an error rather than producing partial results.
func (s *Strategy) Validate(f *form.Form) (*form.Form, error) {
	if f == nil {
		return nil, errors.New("rules: form is required")
	}

	out := f.Clone()
	out.Errors = form.Errors{}

	for _, fld := range f.Fields() {
		messages, err := s.validateField(fld, f.Values[fld.Name])
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			out.Errors[fld.Name] = messages
		}
	}
	return out, nil
}

func (s *Strategy) validateField(fld form.Field, value any) ([]string, error) {
	var out []string

	if isBlank(value) {
		if fld.Required {
			message, err := s.messages.render(KindRequired, nil, "")
			if err != nil {
				return nil, err
			}
			out = append(out, message)
		}
		// Presence is the required rule's job; remaining rules only apply
		// to submitted values.
		return out, nil
	}

	for _, rule := range fld.Validations {
		failed, err := s.check(rule, value)
		if err != nil {
			return nil, err
		}
		if !failed {
			continue
		}
		message, err := s.messages.render(rule.Kind, rule.Params, rule.Params["message"])
		if err != nil {
			return nil, err
		}
		out = append(out, message)
	}
	return out, nil
}

func (s *Strategy) check(rule form.ValidationRule, value any) (bool, error) {
	switch rule.Kind {
	case form.RuleMin:
		threshold, err := paramFloat(rule, "value")
		if err != nil {
			return false, err
		}
		number, ok := asFloat(value)
		return ok && number < threshold, nil
	case form.RuleMax:
		threshold, err := paramFloat(rule, "value")
		if err != nil {
			return false, err
		}
		number, ok := asFloat(value)
		return ok && number > threshold, nil
	case form.RuleMinLength:
		limit, err := paramInt(rule, "value")
		if err != nil {
			return false, err
		}
		text, ok := value.(string)
		return ok && utf8.RuneCountInString(text) < limit, nil
	case form.RuleMaxLength:
		limit, err := paramInt(rule, "value")
		if err != nil {
			return false, err
		}
		text, ok := value.(string)
		return ok && utf8.RuneCountInString(text) > limit, nil
	case form.RulePattern:
		expr := strings.TrimSpace(rule.Params["pattern"])
		if expr == "" {
			return false, fmt.Errorf("rules: pattern rule needs a %q param", "pattern")
		}
		re, err := s.pattern(expr)
		if err != nil {
			return false, err
		}
		text, ok := value.(string)
		return ok && !re.MatchString(text), nil
	case form.RuleEnum:
		accepted := splitList(rule.Params["values"])
		if len(accepted) == 0 {
			return false, fmt.Errorf("rules: enum rule needs a %q param", "values")
		}
		candidate := strings.TrimSpace(fmt.Sprint(value))
		for _, entry := range accepted {
			if entry == candidate {
				return false, nil
			}
		}
		return true, nil
	default:
		// Unknown kinds are ignored so models can carry renderer-only
		// hints without breaking validation.
		return false, nil
	}
}

func (s *Strategy) pattern(expr string) (*regexp.Regexp, error) {
	s.mu.RLock()
	re, ok := s.patterns[expr]
	s.mu.RUnlock()
	if ok {
		return re, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if re, ok := s.patterns[expr]; ok {
		return re, nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("rules: compile pattern %q: %w", expr, err)
	}
	s.patterns[expr] = re
	return re, nil
}

func paramFloat(rule form.ValidationRule, key string) (float64, error) {
	raw := strings.TrimSpace(rule.Params[key])
	if raw == "" {
		return 0, fmt.Errorf("rules: %s rule needs a %q param", rule.Kind, key)
	}
	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("rules: %s rule param %q: %w", rule.Kind, key, err)
	}
	return number, nil
}

func paramInt(rule form.ValidationRule, key string) (int, error) {
	raw := strings.TrimSpace(rule.Params[key])
	if raw == "" {
		return 0, fmt.Errorf("rules: %s rule needs a %q param", rule.Kind, key)
	}
	number, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("rules: %s rule param %q: %w", rule.Kind, key, err)
	}
	return number, nil
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		number, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return number, true
	default:
		return 0, false
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

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
