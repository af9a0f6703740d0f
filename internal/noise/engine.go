package noise

import (
	"slices"
	"strings"
)

const (
	// Ellipsis marks text cut short by truncation.
	Ellipsis = "..."
	// CutoffMarker marks text lost to channel interference.
	CutoffMarker = "---"
	// Forgotten replaces a message whose every word decayed.
	Forgotten = "I forgot..."

	staticChars = "#%&*@$!~"

	urgentTruncateChance = 0.30
	staticChance         = 0.20
	cutoutChance         = 0.15
	decayPerTurn         = 0.2
	maxDecay             = 0.8
	minShuffleWords      = 4
	maxDuplicateLen      = 10
)

var numerals = map[string]string{
	"1": "one",
	"2": "two",
	"3": "three",
	"4": "four",
}

// Engine corrupts text according to a Profile. It is not safe for
// concurrent use because it shares one Source across calls.
type Engine struct {
	src     Source
	profile Profile
	dict    *Dictionaries
}

type Option func(*Engine)

// WithTier selects a preset profile.
func WithTier(t Tier) Option {
	return func(e *Engine) { e.profile = t.Profile() }
}

// WithProfile installs custom probabilities, clamped into [0, 1]. Use
// SetProfile to reject out-of-range values instead.
func WithProfile(p Profile) Option {
	return func(e *Engine) { e.profile = p.Clamped() }
}

func WithDictionaries(d *Dictionaries) Option {
	return func(e *Engine) {
		if d != nil {
			e.dict = d
		}
	}
}

// New builds an Engine at medium severity. A nil src falls back to a
// fixed-seed source.
func New(src Source, opts ...Option) *Engine {
	if src == nil {
		src = NewSource(1)
	}
	e := &Engine{
		src:     src,
		profile: Medium.Profile(),
		dict:    DefaultDictionaries(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) SetSeverity(t Tier) { e.profile = t.Profile() }

func (e *Engine) SetProfile(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	e.profile = p
	return nil
}

func (e *Engine) Profile() Profile { return e.profile }

func (e *Engine) Dictionaries() *Dictionaries { return e.dict }

// Source exposes the engine's randomness so collaborators draw from the
// same sequence.
func (e *Engine) Source() Source { return e.src }

// ApplyNoise draws one roll per word, then one roll for reordering.
func (e *Engine) ApplyNoise(text string) string {
	p := e.profile
	words := strings.Fields(text)
	out := make([]string, 0, len(words))
	for _, w := range words {
		roll := e.src.Float64()
		switch {
		case roll < p.Forget:
			// forgotten
		case roll < p.Forget+p.Misinterpret:
			out = append(out, e.misinterpret(w))
		case roll < p.Forget+p.Misinterpret+p.Reorder:
			out = append(out, e.Typo(w))
		default:
			out = append(out, w)
		}
	}
	if e.src.Float64() < p.Reorder && len(out) >= minShuffleWords {
		e.shuffle(out[1 : len(out)-1])
	}
	return strings.Join(out, " ")
}

// ApplyStrategicNoise applies ApplyNoise and then context-driven effects.
// "urgent" may halve the message; "technical" swaps jargon for simpler words.
func (e *Engine) ApplyStrategicNoise(text, context string) string {
	out := e.ApplyNoise(text)
	ctx := strings.ToLower(context)
	if strings.Contains(ctx, "urgent") && e.src.Float64() < urgentTruncateChance {
		out = firstHalf(out) + Ellipsis
	}
	if strings.Contains(ctx, "technical") {
		for _, term := range e.dict.TechnicalTerms() {
			idx := strings.Index(asciiUpper(out), term)
			if idx < 0 {
				continue
			}
			variants, _ := e.dict.LookupTechnical(term)
			out = out[:idx] + variants[e.src.IntN(len(variants))] + out[idx+len(term):]
		}
	}
	return out
}

// ApplyMemoryDecay drops words with probability min(0.8, 0.2*turnDelay).
func (e *Engine) ApplyMemoryDecay(text string, turnDelay int) string {
	factor := min(maxDecay, float64(turnDelay)*decayPerTurn)
	if factor <= 0 {
		return text
	}
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if e.src.Float64() > factor {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return Forgotten
	}
	return strings.Join(kept, " ")
}

// ApplyChannelInterference may inject one static character and may
// independently cut the message in half.
func (e *Engine) ApplyChannelInterference(text string) string {
	out := text
	if e.src.Float64() < staticChance {
		r := []rune(out)
		pos := 0
		if len(r) > 0 {
			pos = e.src.IntN(len(r))
		}
		ch := rune(staticChars[e.src.IntN(len(staticChars))])
		out = string(slices.Insert(r, pos, ch))
	}
	if e.src.Float64() < cutoutChance {
		out = firstHalf(out) + CutoffMarker
	}
	return out
}

// ApplyProtocolLimits truncates text so the result never exceeds maxLength
// characters, marking the cut with Ellipsis.
func (e *Engine) ApplyProtocolLimits(text string, maxLength int) string {
	return Truncate(text, maxLength)
}

// Truncate is ApplyProtocolLimits without an engine.
func Truncate(text string, maxLength int) string {
	r := []rune(text)
	if len(r) <= maxLength {
		return text
	}
	if maxLength < len(Ellipsis) {
		return Ellipsis[:max(maxLength, 0)]
	}
	return string(r[:maxLength-len(Ellipsis)]) + Ellipsis
}

func (e *Engine) misinterpret(word string) string {
	if variants, ok := e.dict.LookupMisheard(word); ok {
		return variants[e.src.IntN(len(variants))]
	}
	if n, ok := numerals[word]; ok {
		return n
	}
	return e.Typo(word)
}

func (e *Engine) shuffle(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := e.src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func firstHalf(s string) string {
	r := []rune(s)
	return string(r[:len(r)/2])
}

// asciiUpper upper-cases ASCII letters only so byte offsets stay aligned
// with the input.
func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
