package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RELAYCTL_"

// envOverrides mirrors the overridable settings. It is seeded from the
// current config so unset variables leave values untouched.
type envOverrides struct {
	Strategy       string `env:"STRATEGY"`
	GridSize       int    `env:"GRID_SIZE"`
	GridPattern    string `env:"GRID_PATTERN"`
	GridSymbols    string `env:"GRID_SYMBOLS"`
	NoiseTier      string `env:"NOISE_TIER"`
	NoiseSeed      uint64 `env:"NOISE_SEED"`
	NoiseDict      string `env:"NOISE_DICTIONARY"`
	Protocol       string `env:"CHANNEL_PROTOCOL"`
	Interference   bool   `env:"CHANNEL_INTERFERENCE"`
	MaxLength      int    `env:"CHANNEL_MAX_LENGTH"`
	MaxLines       int    `env:"CHANNEL_MAX_LINES"`
	LineLength     int    `env:"CHANNEL_LINE_LENGTH"`
	Bandwidth      int    `env:"CHANNEL_BANDWIDTH"`
	Hops           int    `env:"RELAY_HOPS"`
	History        int    `env:"RELAY_HISTORY"`
	Context        string `env:"RELAY_CONTEXT"`
	DetailOriented bool   `env:"RELAY_DETAIL_ORIENTED"`
	Rushed         bool   `env:"RELAY_RUSHED"`
	Technical      bool   `env:"RELAY_TECHNICAL"`
}

// overlayEnv applies RELAYCTL_* variables from environ, or from the process
// environment when environ is nil.
func overlayEnv(cfg *Config, environ map[string]string) error {
	if environ == nil {
		environ = env.ToMap(os.Environ())
	}
	o := envOverrides{
		Strategy:       cfg.Strategy,
		GridSize:       cfg.Grid.Size,
		GridPattern:    cfg.Grid.Pattern,
		GridSymbols:    cfg.Grid.Symbols,
		NoiseTier:      cfg.Noise.Tier,
		NoiseSeed:      cfg.Noise.Seed,
		NoiseDict:      cfg.Noise.Dictionary,
		Protocol:       cfg.Channel.Protocol,
		Interference:   cfg.Channel.Interference,
		MaxLength:      cfg.Channel.MaxLength,
		MaxLines:       cfg.Channel.MaxLines,
		LineLength:     cfg.Channel.LineLength,
		Bandwidth:      cfg.Channel.Bandwidth,
		Hops:           cfg.Relay.Hops,
		History:        cfg.Relay.History,
		Context:        cfg.Relay.Context,
		DetailOriented: cfg.Relay.Traits.DetailOriented,
		Rushed:         cfg.Relay.Traits.Rushed,
		Technical:      cfg.Relay.Traits.Technical,
	}
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	_, sizeSet := environ[EnvPrefix+"GRID_SIZE"]
	_, patternSet := environ[EnvPrefix+"GRID_PATTERN"]
	if sizeSet && !patternSet && o.GridSize != cfg.Grid.Size {
		o.GridPattern = ""
	}
	_, tierSet := environ[EnvPrefix+"NOISE_TIER"]
	if tierSet {
		cfg.Noise.Profile = nil
	}

	cfg.Strategy = o.Strategy
	cfg.Grid = GridConfig{Size: o.GridSize, Pattern: o.GridPattern, Symbols: o.GridSymbols}
	cfg.Noise.Tier = o.NoiseTier
	cfg.Noise.Seed = o.NoiseSeed
	cfg.Noise.Dictionary = o.NoiseDict
	cfg.Channel = ChannelConfig{
		Protocol:     o.Protocol,
		Interference: o.Interference,
		MaxLength:    o.MaxLength,
		MaxLines:     o.MaxLines,
		LineLength:   o.LineLength,
		Bandwidth:    o.Bandwidth,
	}
	cfg.Relay.Hops = o.Hops
	cfg.Relay.History = o.History
	cfg.Relay.Context = o.Context
	cfg.Relay.Traits.DetailOriented = o.DetailOriented
	cfg.Relay.Traits.Rushed = o.Rushed
	cfg.Relay.Traits.Technical = o.Technical
	return nil
}
