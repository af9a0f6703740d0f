package exchange

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/danmuck/relayctl/internal/config"
	"github.com/danmuck/relayctl/internal/describe"
	"github.com/danmuck/relayctl/internal/grid"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/protocol"
	"github.com/danmuck/relayctl/internal/testutil/testlog"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// quietConfig relays without noise through three hops.
func quietConfig() Config {
	return Config{
		Seed:       42,
		Version:    protocol.V1,
		MaxLength:  120,
		MaxLines:   2,
		LineLength: 50,
		Bandwidth:  100,
		Hops:       3,
		History:    10,
	}
}

func target(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromFlatString(config.DefaultPattern)
	require.NoError(t, err)
	return g
}

func run(t *testing.T, cfg Config, strategy describe.Strategy) Report {
	t.Helper()
	ex, err := New(cfg, target(t), noise.NewSource(cfg.Seed), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	report, err := ex.Run(context.Background(), strategy)
	require.NoError(t, err)
	return report
}

func TestQuietScriptRebuildsTarget(t *testing.T) {
	testlog.Start(t)
	report := run(t, quietConfig(), describe.StrategyScript)

	// CLEAR plus one SET per cell; the default pattern has no uniform rows.
	require.Len(t, report.Steps, 17)
	assert.Equal(t, Outcomes{Applied: 17}, report.Outcomes)
	assert.Equal(t, 17, report.Outcomes.Total())
	assert.InDelta(t, 100.0, report.Accuracy, 1e-9)
	assert.Equal(t, report.Target, report.Result)
	assert.Equal(t, report.Target, report.Difference)

	first := report.Steps[0]
	assert.Equal(t, "CLEAR", first.Original)
	assert.Equal(t, []string{"[DISPATCH] CLEAR [END]"}, first.Transmitted)
	assert.Equal(t, "CLEAR", first.Received)
	assert.Equal(t, "CLEAR", first.Command)

	second := report.Steps[1]
	assert.Equal(t, "SET(1,1)=A", second.Relayed)
	assert.Equal(t, "SET(1,1)=A", second.Command)
	assert.Empty(t, second.Error)
}

func TestBinaryProtocolLosesCoordinates(t *testing.T) {
	testlog.Start(t)
	cfg := quietConfig()
	cfg.Version = protocol.V3
	report := run(t, cfg, describe.StrategyScript)

	assert.Equal(t, Outcomes{Applied: 1, Unrecognized: 16}, report.Outcomes)
	assert.Equal(t, "SET(A,A)=A", report.Steps[1].Received)
	assert.Contains(t, report.Steps[1].Error, "didn't understand")
	assert.Zero(t, report.Accuracy)
}

func TestForgetfulRelaysDeliverNothing(t *testing.T) {
	testlog.Start(t)
	cfg := quietConfig()
	cfg.Profile = noise.Profile{Forget: 1}
	report := run(t, cfg, describe.StrategyScript)

	assert.Equal(t, 17, report.Outcomes.Unrecognized)
	for _, step := range report.Steps {
		assert.Empty(t, step.Relayed)
		assert.Empty(t, step.Command)
	}
}

func TestBandwidthExhaustionDropsSteps(t *testing.T) {
	testlog.Start(t)
	cfg := quietConfig()
	cfg.Bandwidth = 1
	report := run(t, cfg, describe.StrategyScript)

	assert.Equal(t, Outcomes{Dropped: 17}, report.Outcomes)
	for _, step := range report.Steps {
		assert.Nil(t, step.Transmitted)
		assert.Contains(t, step.Error, "bandwidth exhausted")
	}
	assert.Zero(t, report.Accuracy)
}

func TestProseStrategyIsOneMessage(t *testing.T) {
	testlog.Start(t)
	report := run(t, quietConfig(), describe.StrategyRows)

	require.Len(t, report.Steps, 1)
	assert.Equal(t, OutcomeUnrecognized, report.Steps[0].Outcome)
	assert.Contains(t, report.Steps[0].Original, "Row 1: A B C D")
}

func TestSeededRunsAreReproducible(t *testing.T) {
	testlog.Start(t)
	cfg := quietConfig()
	cfg.Profile = noise.Extreme.Profile()
	cfg.Interference = true
	cfg.Context = "urgent technical"
	cfg.Seed = 7

	a := run(t, cfg, describe.StrategyScript)
	b := run(t, cfg, describe.StrategyScript)
	assert.NotEqual(t, a.ID, b.ID)
	b.ID = a.ID
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("seeded runs diverged (-first +second):\n%s", diff)
	}
}

func TestRunStopsOnCanceledContext(t *testing.T) {
	testlog.Start(t)
	ex, err := New(quietConfig(), target(t), nil, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ex.Run(ctx, describe.StrategyScript)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunRejectsUnknownStrategy(t *testing.T) {
	testlog.Start(t)
	ex, err := New(quietConfig(), target(t), nil, WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	_, err = ex.Run(context.Background(), describe.Strategy("semaphore"))
	require.ErrorIs(t, err, describe.ErrUnknownStrategy)
}

func TestNewValidates(t *testing.T) {
	testlog.Start(t)
	_, err := New(quietConfig(), nil, nil)
	require.ErrorIs(t, err, ErrNilTarget)

	cases := map[string]func(*Config){
		"hops":      func(c *Config) { c.Hops = 0 },
		"length":    func(c *Config) { c.MaxLength = 0 },
		"bandwidth": func(c *Config) { c.Bandwidth = 0 },
		"version":   func(c *Config) { c.Version = 9 },
		"profile":   func(c *Config) { c.Profile.Reorder = 2 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := quietConfig()
			mutate(&cfg)
			_, err := New(cfg, target(t), nil)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestFromConfigResolvesDefaults(t *testing.T) {
	testlog.Start(t)
	cfg, err := FromConfig(config.Default())
	require.NoError(t, err)
	assert.Equal(t, protocol.V1, cfg.Version)
	assert.Equal(t, noise.Low.Profile(), cfg.Profile)
	assert.Equal(t, 1, cfg.Hops)
	assert.NotNil(t, cfg.Dictionaries)

	bad := config.Default()
	bad.Channel.Protocol = "v7"
	_, err = FromConfig(bad)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestReportRenderings(t *testing.T) {
	testlog.Start(t)
	report := run(t, quietConfig(), describe.StrategyScript)

	text := report.Text()
	assert.Contains(t, text, "accuracy: 100.0%")
	assert.Contains(t, text, "outcomes: applied=17 unrecognized=0 rejected=0 dropped=0")
	assert.Contains(t, text, "A B C D   A B C D   A B C D")

	raw, err := report.YAML()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(raw, &doc))
	assert.Equal(t, "script", doc["strategy"])
	assert.Equal(t, report.ID, doc["id"])
	assert.Len(t, doc["steps"], 17)

	raw, err = report.JSON()
	require.NoError(t, err)
	var back Report
	require.NoError(t, json.Unmarshal(raw, &back))
	if diff := cmp.Diff(report, back); diff != "" {
		t.Fatalf("json report mismatch (-want +got):\n%s", diff)
	}

	assert.Contains(t, report.Transcript(), `1. "CLEAR" -> "CLEAR" [applied]`)
}
