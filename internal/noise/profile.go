package noise

import (
	"fmt"
	"strings"
)

// Tier selects a preset noise profile.
type Tier int

const (
	Low Tier = iota
	Medium
	High
	Extreme
)

func (t Tier) String() string {
	switch t {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Extreme:
		return "extreme"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier accepts tier names case-insensitively.
func ParseTier(raw string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	case "extreme":
		return Extreme, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTier, raw)
	}
}

// Profile holds per-word probabilities. Forget, Misinterpret and Reorder
// share one roll, so their sum is the chance a word is touched at all.
type Profile struct {
	Forget       float64 `toml:"forget" yaml:"forget" json:"forget"`
	Misinterpret float64 `toml:"misinterpret" yaml:"misinterpret" json:"misinterpret"`
	Reorder      float64 `toml:"reorder" yaml:"reorder" json:"reorder"`
}

// Profile returns the preset for t. Unknown tiers fall back to medium.
func (t Tier) Profile() Profile {
	switch t {
	case Low:
		return Profile{Forget: 0.05, Misinterpret: 0.08, Reorder: 0.02}
	case High:
		return Profile{Forget: 0.25, Misinterpret: 0.35, Reorder: 0.20}
	case Extreme:
		return Profile{Forget: 0.40, Misinterpret: 0.50, Reorder: 0.30}
	default:
		return Profile{Forget: 0.15, Misinterpret: 0.20, Reorder: 0.10}
	}
}

// Clamped pulls every probability into [0, 1]. NaN becomes 0.
func (p Profile) Clamped() Profile {
	clamp := func(v float64) float64 {
		if v != v {
			return 0
		}
		return min(1, max(0, v))
	}
	return Profile{
		Forget:       clamp(p.Forget),
		Misinterpret: clamp(p.Misinterpret),
		Reorder:      clamp(p.Reorder),
	}
}

// Validate checks every probability is inside [0, 1].
func (p Profile) Validate() error {
	check := func(name string, v float64) error {
		if v < 0 || v > 1 || v != v {
			return fmt.Errorf("%w: %s=%v", ErrInvalidProbability, name, v)
		}
		return nil
	}
	if err := check("forget", p.Forget); err != nil {
		return err
	}
	if err := check("misinterpret", p.Misinterpret); err != nil {
		return err
	}
	return check("reorder", p.Reorder)
}
