// Package rules provides the built-in validation strategy: it evaluates the
// declarative constraints carried by a form's fields (required, min/max,
// minLength/maxLength, pattern, enum) against the submitted values and
// reports raw messages rendered from configurable templates.
package rules
