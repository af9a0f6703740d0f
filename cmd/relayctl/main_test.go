package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/relayctl/internal/exchange"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/testutil/testlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const quietConfig = `
[noise]
seed = 3

[noise.profile]
forget = 0.0
misinterpret = 0.0
reorder = 0.0
`

func TestParseCommand(t *testing.T) {
	testlog.Start(t)
	out, err := execute(t, "parse", "SET(2,3)=A")
	require.NoError(t, err)
	assert.Equal(t, "kind: set_cell\ncommand: SET(2,3)=A\nvalid: true (4x4)\n", out)

	out, err = execute(t, "parse", "--size", "4", "FILL", "ROW", "5", "WITH", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "command: FILL ROW 5 WITH B")
	assert.Contains(t, out, "valid: false (4x4)")

	out, err = execute(t, "parse", "make", "it", "pretty")
	require.NoError(t, err)
	assert.Equal(t, "kind: invalid\nvalid: false (unrecognized)\n", out)

	_, err = execute(t, "parse", "--size", "0", "CLEAR")
	require.Error(t, err)
}

func TestEncodeAndDecodeCommands(t *testing.T) {
	testlog.Start(t)
	out, err := execute(t, "encode", "--width", "12", "--lines", "0", "FILL", "ROW", "1", "WITH", "A")
	require.NoError(t, err)
	assert.Equal(t, "[DISPATCH]\nFILL ROW 1\nWITH A [END]\n", out)

	out, err = execute(t, "encode", "--version", "v3", "hi")
	require.NoError(t, err)
	assert.Equal(t, "[BIN:8-9-]\n", out)

	out, err = execute(t, "encode", "--compress", "--version", "2", "fill", "row", "1")
	require.NoError(t, err)
	assert.Equal(t, "[COMP:fill r 1]\n", out)

	_, err = execute(t, "encode", "--version", "v9", "x")
	require.Error(t, err)

	out, err = execute(t, "decode", "[DISPATCH] CLEAR [END]")
	require.NoError(t, err)
	assert.Equal(t, "version: v1\nbody: CLEAR\n", out)

	out, err = execute(t, "decode", "[BIN:8-9-]")
	require.NoError(t, err)
	assert.Equal(t, "version: v3\nbody: HI\n", out)

	out, err = execute(t, "decode", "plain", "words")
	require.NoError(t, err)
	assert.Equal(t, "version: none\nbody: plain words\n", out)
}

func TestNoiseCommandIsSeeded(t *testing.T) {
	testlog.Start(t)
	args := []string{"noise", "--tier", "extreme", "--seed", "11", "--interference", "FILL ROW 2 WITH C AND THEN SET(1,1)=A"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	out, err := execute(t, "noise", "--max-length", "6", "--tier", "low", "--decay", "0", "abcdefghij")
	require.NoError(t, err)
	assert.LessOrEqual(t, len([]rune(out))-1, 6)

	_, err = execute(t, "noise", "--tier", "deafening", "hello")
	require.ErrorIs(t, err, noise.ErrUnknownTier)
}

func TestConfigInitAndValidate(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "relayctl.toml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote config template")

	_, err = execute(t, "config", "init", path)
	require.ErrorContains(t, err, "already exists")

	_, err = execute(t, "config", "init", "--force", path)
	require.NoError(t, err)

	out, err = execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "validated config at "+path)

	bad := writeFile(t, "bad.toml", "[relay]\nhops = 0\n")
	_, err = execute(t, "config", "validate", bad)
	require.Error(t, err)
}

func TestRunQuietExchange(t *testing.T) {
	testlog.Start(t)
	cfg := writeFile(t, "quiet.toml", quietConfig)
	metrics := filepath.Join(t.TempDir(), "relayctl.prom")

	var copied string
	prev := clipboardWriteAll
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}
	defer func() { clipboardWriteAll = prev }()

	out, err := execute(t, "run", "--config", cfg, "--format", "json", "--copy", "--metrics-file", metrics)
	require.NoError(t, err)

	var report exchange.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "script", report.Strategy)
	assert.Equal(t, uint64(3), report.Seed)
	assert.InDelta(t, 100.0, report.Accuracy, 1e-9)
	assert.Equal(t, 17, report.Outcomes.Applied)

	assert.Contains(t, copied, `1. "CLEAR" -> "CLEAR" [applied]`)

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "relayctl_exchange_runs_total")
	assert.Contains(t, string(data), `relayctl_exchange_steps_total{outcome="applied",strategy="script"}`)
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	testlog.Start(t)
	cfg := writeFile(t, "quiet.toml", quietConfig)

	out, err := execute(t, "run", "-c", cfg, "--strategy", "rows", "--seed", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "strategy=rows protocol=v1 hops=1 seed=9")
	assert.Contains(t, out, "outcomes: applied=0 unrecognized=1 rejected=0 dropped=0")

	out, err = execute(t, "run", "-c", cfg, "--tier", "high", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "forget: 0.25")

	_, err = execute(t, "run", "-c", cfg, "--format", "xml")
	require.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "run", "-c", cfg, "--strategy", "interpretive-dance")
	require.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	testlog.Start(t)
	out, err := execute(t, "describe", "--strategy", "script", "--hints")
	require.NoError(t, err)
	assert.Contains(t, out, "target:\nA B C D\nA A D D\nC B B A\nD C C C\n")
	assert.Contains(t, out, "CLEAR\nSET(1,1)=A\n")
	assert.Contains(t, out, "effectiveness: 0.00")
}
