package rules

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formvalid/pkg/form"
)

// KindRequired keys the message used when a required field is blank. Required
// is a field flag rather than a ValidationRule kind, but its message is
// configurable through the same template set.
const KindRequired = "required"

// Default message templates per rule kind. Templates are pongo2 expressions
// receiving the rule params as context, so "{{ value }}" interpolates the
// configured threshold.
var defaultTemplates = map[string]string{
	KindRequired:       "can't be blank",
	form.RuleMin:       "must be greater than or equal to {{ value }}",
	form.RuleMax:       "must be less than or equal to {{ value }}",
	form.RuleMinLength: "is too short (minimum is {{ value }} characters)",
	form.RuleMaxLength: "is too long (maximum is {{ value }} characters)",
	form.RulePattern:   "is invalid",
	form.RuleEnum:      "is not included in the list",
}

// Messages renders raw error messages from per-kind pongo2 templates.
// Compiled templates are cached; a rule's Params["message"] overrides the
// kind template for that rule only.
type Messages struct {
	mu        sync.RWMutex
	templates map[string]string
	compiled  map[string]*pongo2.Template
}

func newMessages() *Messages {
	templates := make(map[string]string, len(defaultTemplates))
	for kind, tpl := range defaultTemplates {
		templates[kind] = tpl
	}
	return &Messages{
		templates: templates,
		compiled:  make(map[string]*pongo2.Template),
	}
}

func (m *Messages) set(kind, template string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[kind] = template
}

// render produces the message for a failed rule. An explicit override (the
// rule's own message param) wins over the kind template; both are rendered
// with the rule params as context.
func (m *Messages) render(kind string, params map[string]string, override string) (string, error) {
	source := strings.TrimSpace(override)
	if source == "" {
		m.mu.RLock()
		source = m.templates[kind]
		m.mu.RUnlock()
	}
	if source == "" {
		return "", fmt.Errorf("rules: no message template for rule kind %q", kind)
	}

	if !strings.Contains(source, "{{") && !strings.Contains(source, "{%") {
		return source, nil
	}

	tpl, err := m.template(source)
	if err != nil {
		return "", err
	}

	ctx := make(pongo2.Context, len(params))
	for key, value := range params {
		ctx[key] = value
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("rules: render message for rule kind %q: %w", kind, err)
	}
	return strings.TrimSpace(out), nil
}

func (m *Messages) template(source string) (*pongo2.Template, error) {
	m.mu.RLock()
	tpl, ok := m.compiled[source]
	m.mu.RUnlock()
	if ok {
		return tpl, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if tpl, ok := m.compiled[source]; ok {
		return tpl, nil
	}
	tpl, err := pongo2.FromString(source)
	if err != nil {
		return nil, fmt.Errorf("rules: parse message template %q: %w", source, err)
	}
	m.compiled[source] = tpl
	return tpl, nil
}
