// Package command owns the text command grammar.
//
// Ownership boundary:
// - syntactic parse of free text into a Command (Parse)
// - semantic bounds validation against a grid (Validate)
//
// The two phases are independent: a command can parse cleanly and still be
// rejected by Validate. Neither phase mutates a grid.
package command
