// Package describe owns the first link of the relay chain: turning a target
// grid into outgoing text.
//
// Ownership boundary:
// - description strategies (rows, columns, quadrants, RLE, patterns, script)
// - strategy hints and effectiveness scoring
// - log of descriptions sent
package describe
