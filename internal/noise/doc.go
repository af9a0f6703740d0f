// Package noise owns message corruption between relays.
//
// Ownership boundary:
// - tiered word-level noise (forget, misinterpret, reorder)
// - typo generation
// - strategic, memory-decay, and channel-interference effects
// - protocol length limits
// - substitution dictionaries
//
// All randomness comes from an injected Source so runs are reproducible.
package noise
