package form

import "strings"

// Errors maps a field key to the ordered raw (or translated) messages
// reported against it. A missing key and a key holding an empty sequence are
// equivalent: both mean "no errors for that field".
type Errors map[string][]string

// Add appends messages to a field's error sequence, skipping blanks.
func (e Errors) Add(field string, messages ...string) {
	if e == nil {
		return
	}
	field = strings.TrimSpace(field)
	if field == "" {
		return
	}
	for _, message := range messages {
		if strings.TrimSpace(message) == "" {
			continue
		}
		e[field] = append(e[field], message)
	}
}

// Empty reports whether every error sequence in the map is empty.
func (e Errors) Empty() bool {
	for _, messages := range e {
		if len(messages) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the error map. A nil receiver clones to nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for field, messages := range e {
		if messages == nil {
			out[field] = nil
			continue
		}
		copied := make([]string, len(messages))
		copy(copied, messages)
		out[field] = copied
	}
	return out
}

// NormalizeMessages trims whitespace and removes duplicates while preserving
// order. Returns nil when nothing survives.
func NormalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// MergeMessages concatenates and normalises message slices, trimming
// whitespace and dropping duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return NormalizeMessages(combined)
}
