// Package validate walks a form tree top-down, runs a pluggable validation
// strategy at every level, translates raw error messages, and computes
// validity bottom-up with removed collection entries forced valid. Strategy
// resolution, translation, and removal detection are all injected through
// engine options so the same tree can be validated under different
// configurations in one process.
package validate
