// Package builder owns the last link of the chain: executing received text
// as commands against the builder's own grid.
//
// Ownership boundary:
// - parse, validate and apply of received instructions
// - action log and undo by replay
// - self-assessment helpers (display, suggestions, error estimate)
package builder
