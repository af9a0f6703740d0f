// Package relay owns the middle links of the chain: relays that receive a
// message, garble it, and pass it on within their line budget.
//
// Ownership boundary:
// - message processing (noise, paraphrase, personality, line limits)
// - bounded message history and recall
// - bandwidth accounting and clarification requests
package relay
