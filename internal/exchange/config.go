package exchange

import (
	"errors"
	"fmt"

	"github.com/danmuck/relayctl/internal/config"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/protocol"
	"github.com/danmuck/relayctl/internal/relay"
)

var ErrInvalidConfig = errors.New("exchange: invalid config")

// Config is the resolved channel and relay setup for a run.
type Config struct {
	Seed         uint64
	Profile      noise.Profile
	Dictionaries *noise.Dictionaries
	Version      protocol.Version
	Interference bool
	MaxLength    int
	MaxLines     int
	LineLength   int
	Bandwidth    int
	Hops         int
	History      int
	Context      string
	Traits       relay.Traits
}

// FromConfig resolves file-level configuration into exchange settings.
func FromConfig(c config.Config) (Config, error) {
	profile, err := c.NoiseProfile()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	version, err := c.ProtocolVersion()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	dict, err := c.Dictionaries()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return Config{
		Seed:         c.Noise.Seed,
		Profile:      profile,
		Dictionaries: dict,
		Version:      version,
		Interference: c.Channel.Interference,
		MaxLength:    c.Channel.MaxLength,
		MaxLines:     c.Channel.MaxLines,
		LineLength:   c.Channel.LineLength,
		Bandwidth:    c.Channel.Bandwidth,
		Hops:         c.Relay.Hops,
		History:      c.Relay.History,
		Context:      c.Relay.Context,
		Traits:       c.Relay.Traits,
	}, nil
}

func (c Config) validate() error {
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !c.Version.Valid() {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, protocol.ErrUnsupportedVersion, int(c.Version))
	}
	if c.MaxLength < 1 {
		return fmt.Errorf("%w: max length must be positive", ErrInvalidConfig)
	}
	if c.Bandwidth < 1 {
		return fmt.Errorf("%w: bandwidth must be positive", ErrInvalidConfig)
	}
	if c.Hops < 1 {
		return fmt.Errorf("%w: at least one relay is required", ErrInvalidConfig)
	}
	return nil
}
