package observability

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/relayctl/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	testlog.Start(t)
	RegisterMetrics()
	RegisterMetrics()

	before := testutil.ToFloat64(exchangeSteps.WithLabelValues("rows", "applied"))
	RecordStep("rows", "applied")
	RecordStep("rows", "applied")
	if got := testutil.ToFloat64(exchangeSteps.WithLabelValues("rows", "applied")); got != before+2 {
		t.Fatalf("expected %v applied steps, got %v", before+2, got)
	}
	RecordRun("rows", 87.5)
}

func TestWriteMetricsFile(t *testing.T) {
	testlog.Start(t)
	RecordStep("script", "rejected")
	path := filepath.Join(t.TempDir(), "relayctl.prom")
	if err := WriteMetricsFile(path); err != nil {
		t.Fatalf("write metrics: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `relayctl_exchange_steps_total{outcome="rejected",strategy="script"}`) {
		t.Fatalf("metrics file missing step counter:\n%s", data)
	}
}

func TestLogStepLevelFollowsOutcome(t *testing.T) {
	testlog.Start(t)
	prev := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	defer zerolog.SetGlobalLevel(prev)

	cases := map[string]string{
		"applied":      `"level":"info"`,
		"unrecognized": `"level":"warn"`,
		"rejected":     `"level":"warn"`,
		"dropped":      `"level":"error"`,
	}
	for outcome, want := range cases {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		LogStep(logger, Step{Exchange: "x", Index: 2, Outcome: outcome, Err: errors.New("boom")})
		out := buf.String()
		if !strings.Contains(out, want) || !strings.Contains(out, `"step":2`) || !strings.Contains(out, `"error":"boom"`) {
			t.Fatalf("%s: unexpected log line %s", outcome, out)
		}
	}
}
