// Package protocol owns the text wire formats used between relays.
//
// Ownership boundary:
// - versioned envelope encoding (dispatch, compressed, binary)
// - envelope decoding on the receiving side
// - bandwidth line splitting
package protocol
