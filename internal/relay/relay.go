package relay

import (
	"fmt"
	"strings"

	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/protocol"
)

const (
	DefaultMaxLines   = 2
	DefaultLineLength = 50
	DefaultBandwidth  = 100

	charsPerUnit = 10

	sentenceShuffleChance = 0.30
	rushedPrefixChance    = 0.30
	detailPrefixChance    = 0.40
	rushedMaxLen          = 100
	rushedSuffix          = "... hurry!"

	summaryLimit = 3

	RecallFailed = "I don't remember that far back."
)

var (
	rushedPrefixes = []string{"Quick: ", "Fast: ", "Rush: "}
	detailPrefixes = []string{"Confirming: ", "Detailed: ", "Noting: "}

	paraphrases = strings.NewReplacer(
		"row", "line",
		"column", "vertical",
		"grid", "layout",
		"pattern", "arrangement",
	)
	jargon = strings.NewReplacer(
		"line", "row vector",
		"vertical", "column vector",
		"layout", "matrix configuration",
	)
)

// Traits shape how a relay rewrites what it passes on.
type Traits struct {
	DetailOriented bool `toml:"detail_oriented" yaml:"detail_oriented" json:"detail_oriented"`
	Rushed         bool `toml:"rushed" yaml:"rushed" json:"rushed"`
	Technical      bool `toml:"technical" yaml:"technical" json:"technical"`
}

// Relay receives messages and forwards a degraded version. Randomness is
// drawn from the engine's Source.
type Relay struct {
	engine *noise.Engine
	src    noise.Source

	maxLines     int
	lineLength   int
	bandwidth    int
	maxBandwidth int
	canAsk       bool
	traits       Traits

	history  *History
	received []string
	sent     []string
}

type Option func(*Relay)

func WithMaxLines(n int) Option {
	return func(r *Relay) { r.maxLines = n }
}

func WithLineLength(n int) Option {
	return func(r *Relay) { r.lineLength = n }
}

// WithBandwidth sets the per-turn bandwidth in units of ten characters.
func WithBandwidth(units int) Option {
	return func(r *Relay) {
		r.maxBandwidth = units
		r.bandwidth = units
	}
}

func WithHistory(capacity int) Option {
	return func(r *Relay) { r.history = NewHistory(capacity) }
}

func WithTraits(t Traits) Option {
	return func(r *Relay) { r.traits = t }
}

func New(engine *noise.Engine, opts ...Option) *Relay {
	if engine == nil {
		engine = noise.New(nil)
	}
	r := &Relay{
		engine:       engine,
		src:          engine.Source(),
		maxLines:     DefaultMaxLines,
		lineLength:   DefaultLineLength,
		bandwidth:    DefaultBandwidth,
		maxBandwidth: DefaultBandwidth,
		canAsk:       true,
		history:      NewHistory(DefaultHistory),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process passes msg through noise, paraphrase, personality and the line
// limit, in that order.
func (r *Relay) Process(msg string) string {
	r.record(msg)
	return r.forward(r.engine.ApplyNoise(msg))
}

// ProcessWithContext is Process with context-aware noise.
func (r *Relay) ProcessWithContext(msg, context string) string {
	r.record(msg)
	return r.forward(r.engine.ApplyStrategicNoise(msg, context))
}

// Recall returns a decayed copy of the message received turnsAgo turns back.
func (r *Relay) Recall(turnsAgo int) string {
	if turnsAgo <= 0 {
		return RecallFailed
	}
	msg, ok := r.history.Back(turnsAgo)
	if !ok {
		return RecallFailed
	}
	return "I recall: " + r.engine.ApplyMemoryDecay(msg, turnsAgo)
}

// Summarize joins up to three messages and counts the rest.
func (r *Relay) Summarize(msgs []string) string {
	if len(msgs) == 0 {
		return "No messages to summarize."
	}
	shown := msgs[:min(len(msgs), summaryLimit)]
	out := "Summary of previous messages: " + strings.Join(shown, "... ")
	if extra := len(msgs) - summaryLimit; extra > 0 {
		out += fmt.Sprintf("... and %d more", extra)
	}
	return out
}

func (r *Relay) RequestClarification(part string) string {
	templates := []string{
		"Can you repeat the part about " + part + "?",
		"I didn't catch the " + part + " clearly.",
		"Could you clarify " + part + "?",
		"The " + part + " was unclear, please repeat.",
		"Say again about " + part + "?",
	}
	return templates[r.src.IntN(len(templates))]
}

// CanSend reports whether length characters fit the remaining bandwidth.
func (r *Relay) CanSend(length int) bool {
	return r.bandwidth-length/charsPerUnit >= 0
}

// Spend deducts the cost of length characters if it fits.
func (r *Relay) Spend(length int) bool {
	if !r.CanSend(length) {
		return false
	}
	r.bandwidth -= length / charsPerUnit
	return true
}

func (r *Relay) Bandwidth() int { return r.bandwidth }

func (r *Relay) ResetBandwidth() { r.bandwidth = r.maxBandwidth }

// Chunk splits msg into lines within the relay's line budget.
func (r *Relay) Chunk(msg string) []string {
	return protocol.SplitByBandwidth(msg, r.maxLines, r.lineLength)
}

func (r *Relay) CanAsk() bool { return r.canAsk }

// UseAsk spends the single request for a repeat.
func (r *Relay) UseAsk() { r.canAsk = false }

func (r *Relay) Traits() Traits { return r.traits }

func (r *Relay) SetTraits(t Traits) { r.traits = t }

func (r *Relay) Sent() []string { return append([]string(nil), r.sent...) }

func (r *Relay) Received() []string { return append([]string(nil), r.received...) }

// History returns remembered messages, oldest first.
func (r *Relay) History() []string { return r.history.Recent() }

func (r *Relay) record(msg string) {
	r.received = append(r.received, msg)
	r.history.Push(msg)
}

func (r *Relay) forward(noisy string) string {
	out := r.limitLines(r.personality(r.paraphrase(noisy)))
	r.sent = append(r.sent, out)
	return out
}

// paraphrase splits on '.', may shuffle every sentence after the first,
// and swaps common lower-case words for synonyms.
func (r *Relay) paraphrase(msg string) string {
	var sentences []string
	for _, s := range strings.Split(msg, ".") {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return msg
	}
	if r.src.Float64() < sentenceShuffleChance && len(sentences) > 1 {
		tail := sentences[1:]
		for i := len(tail) - 1; i > 0; i-- {
			j := r.src.IntN(i + 1)
			tail[i], tail[j] = tail[j], tail[i]
		}
	}
	for i, s := range sentences {
		sentences[i] = paraphrases.Replace(s)
	}
	return strings.Join(sentences, ". ")
}

func (r *Relay) personality(msg string) string {
	out := msg
	if r.traits.Rushed {
		if runes := []rune(out); len(runes) > rushedMaxLen {
			out = string(runes[:rushedMaxLen]) + rushedSuffix
		}
		if r.src.Float64() < rushedPrefixChance {
			out = rushedPrefixes[r.src.IntN(len(rushedPrefixes))] + out
		}
	}
	if r.traits.DetailOriented && !r.traits.Rushed {
		if r.src.Float64() < detailPrefixChance {
			out = detailPrefixes[r.src.IntN(len(detailPrefixes))] + out
		}
	}
	if r.traits.Technical {
		out = jargon.Replace(out)
	}
	return out
}

func (r *Relay) limitLines(msg string) string {
	return strings.Join(r.Chunk(msg), "\n")
}
