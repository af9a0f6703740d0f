package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/relayctl/internal/describe"
	"github.com/danmuck/relayctl/internal/grid"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/protocol"
	"github.com/danmuck/relayctl/internal/relay"
)

// DefaultPattern is the first training target.
const DefaultPattern = "ABCDAADDCBBADCCC"

const (
	maxGridSize = 26
	maxHops     = 10
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Strategy string        `toml:"strategy"`
	Grid     GridConfig    `toml:"grid"`
	Noise    NoiseConfig   `toml:"noise"`
	Channel  ChannelConfig `toml:"channel"`
	Relay    RelayConfig   `toml:"relay"`
}

// GridConfig selects the target. An empty pattern means a random target
// drawn from Symbols.
type GridConfig struct {
	Size    int    `toml:"size"`
	Pattern string `toml:"pattern"`
	Symbols string `toml:"symbols"`
}

// NoiseConfig picks a tier; Profile, when set, overrides the tier's
// probabilities. Seed 0 asks the caller to pick one.
type NoiseConfig struct {
	Tier       string         `toml:"tier"`
	Seed       uint64         `toml:"seed"`
	Dictionary string         `toml:"dictionary,omitempty"`
	Profile    *noise.Profile `toml:"profile,omitempty"`
}

type ChannelConfig struct {
	Protocol     string `toml:"protocol"`
	Interference bool   `toml:"interference"`
	MaxLength    int    `toml:"max_length"`
	MaxLines     int    `toml:"max_lines"`
	LineLength   int    `toml:"line_length"`
	Bandwidth    int    `toml:"bandwidth"`
}

// RelayConfig describes the chain between describer and builder. Context,
// when set, switches relays to context-aware noise.
type RelayConfig struct {
	Hops    int          `toml:"hops"`
	History int          `toml:"history"`
	Context string       `toml:"context,omitempty"`
	Traits  relay.Traits `toml:"traits"`
}

func Default() Config {
	return Config{
		Strategy: string(describe.StrategyScript),
		Grid: GridConfig{
			Size:    4,
			Pattern: DefaultPattern,
			Symbols: grid.DefaultSymbols,
		},
		Noise: NoiseConfig{
			Tier: noise.Low.String(),
		},
		Channel: ChannelConfig{
			Protocol:   protocol.V1.String(),
			MaxLength:  120,
			MaxLines:   relay.DefaultMaxLines,
			LineLength: relay.DefaultLineLength,
			Bandwidth:  relay.DefaultBandwidth,
		},
		Relay: RelayConfig{
			Hops:    1,
			History: relay.DefaultHistory,
		},
	}
}

// Load overlays the TOML file at path (if any) and then RELAYCTL_*
// environment variables on top of Default, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := overlayEnv(&cfg, nil); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}

	if meta.IsDefined("grid", "size") && !meta.IsDefined("grid", "pattern") {
		cfg.Grid.Pattern = ""
	}

	if meta.IsDefined("noise", "profile") {
		decoded := cfg.Noise.Profile
		base := tierProfile(cfg.Noise.Tier)
		if meta.IsDefined("noise", "profile", "forget") {
			base.Forget = decoded.Forget
		}
		if meta.IsDefined("noise", "profile", "misinterpret") {
			base.Misinterpret = decoded.Misinterpret
		}
		if meta.IsDefined("noise", "profile", "reorder") {
			base.Reorder = decoded.Reorder
		}
		cfg.Noise.Profile = &base
	}
	return nil
}

func (c Config) Validate() error {
	if c.Grid.Size < 1 || c.Grid.Size > maxGridSize {
		return fmt.Errorf("%w: grid.size %d outside [1,%d]", ErrInvalidConfig, c.Grid.Size, maxGridSize)
	}
	if c.Grid.Pattern != "" {
		g, err := grid.FromFlatString(c.Grid.Pattern)
		if err != nil {
			return fmt.Errorf("%w: grid.pattern: %w", ErrInvalidConfig, err)
		}
		if g.Size() != c.Grid.Size {
			return fmt.Errorf("%w: grid.pattern is %dx%d but grid.size is %d", ErrInvalidConfig, g.Size(), g.Size(), c.Grid.Size)
		}
	}
	if _, err := grid.Random(1, c.Grid.Symbols, zeroSource{}); err != nil {
		return fmt.Errorf("%w: grid.symbols: %w", ErrInvalidConfig, err)
	}
	if _, err := c.NoiseProfile(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.ProtocolVersion(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.StrategyValue(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Channel.MaxLength < 1 {
		return fmt.Errorf("%w: channel.max_length must be positive", ErrInvalidConfig)
	}
	if c.Channel.MaxLines < 0 || c.Channel.LineLength < 0 {
		return fmt.Errorf("%w: channel line limits must not be negative", ErrInvalidConfig)
	}
	if c.Channel.Bandwidth < 1 {
		return fmt.Errorf("%w: channel.bandwidth must be positive", ErrInvalidConfig)
	}
	if c.Relay.Hops < 1 || c.Relay.Hops > maxHops {
		return fmt.Errorf("%w: relay.hops %d outside [1,%d]", ErrInvalidConfig, c.Relay.Hops, maxHops)
	}
	if c.Relay.History < 1 {
		return fmt.Errorf("%w: relay.history must be positive", ErrInvalidConfig)
	}
	return nil
}

// NoiseProfile resolves the custom profile or the tier preset.
func (c Config) NoiseProfile() (noise.Profile, error) {
	tier, err := noise.ParseTier(c.Noise.Tier)
	if err != nil {
		return noise.Profile{}, err
	}
	if c.Noise.Profile == nil {
		return tier.Profile(), nil
	}
	if err := c.Noise.Profile.Validate(); err != nil {
		return noise.Profile{}, err
	}
	return *c.Noise.Profile, nil
}

func (c Config) ProtocolVersion() (protocol.Version, error) {
	return protocol.ParseVersion(c.Channel.Protocol)
}

func (c Config) StrategyValue() (describe.Strategy, error) {
	return describe.ParseStrategy(c.Strategy)
}

// Target builds the target grid, drawing from rng when no pattern is set.
func (c Config) Target(rng grid.IntSource) (*grid.Grid, error) {
	if c.Grid.Pattern != "" {
		return grid.FromFlatString(c.Grid.Pattern)
	}
	return grid.Random(c.Grid.Size, c.Grid.Symbols, rng)
}

// Dictionaries loads the configured dictionary file or the built-in one.
func (c Config) Dictionaries() (*noise.Dictionaries, error) {
	if strings.TrimSpace(c.Noise.Dictionary) == "" {
		return noise.DefaultDictionaries(), nil
	}
	return noise.LoadDictionariesFile(c.Noise.Dictionary)
}

func tierProfile(raw string) noise.Profile {
	tier, err := noise.ParseTier(raw)
	if err != nil {
		return noise.Medium.Profile()
	}
	return tier.Profile()
}

type zeroSource struct{}

func (zeroSource) IntN(int) int { return 0 }
