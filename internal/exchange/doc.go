// Package exchange owns one end-to-end run of the relay chain.
//
// Ownership boundary:
// - describer -> relays -> channel -> builder step pipeline
// - outcome classification, metrics and step logging
// - run reports (text, YAML, JSON)
package exchange
