package exchange

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/danmuck/relayctl/internal/noise"
	"gopkg.in/yaml.v3"
)

// Step is the record of one message through the chain.
type Step struct {
	Index       int      `yaml:"index" json:"index"`
	Original    string   `yaml:"original" json:"original"`
	Relayed     string   `yaml:"relayed" json:"relayed"`
	Transmitted []string `yaml:"transmitted,omitempty" json:"transmitted,omitempty"`
	Received    string   `yaml:"received" json:"received"`
	Command     string   `yaml:"command,omitempty" json:"command,omitempty"`
	Outcome     Outcome  `yaml:"outcome" json:"outcome"`
	Error       string   `yaml:"error,omitempty" json:"error,omitempty"`
}

type Outcomes struct {
	Applied      int `yaml:"applied" json:"applied"`
	Unrecognized int `yaml:"unrecognized" json:"unrecognized"`
	Rejected     int `yaml:"rejected" json:"rejected"`
	Dropped      int `yaml:"dropped" json:"dropped"`
}

func (o *Outcomes) add(out Outcome) {
	switch out {
	case OutcomeApplied:
		o.Applied++
	case OutcomeUnrecognized:
		o.Unrecognized++
	case OutcomeRejected:
		o.Rejected++
	case OutcomeDropped:
		o.Dropped++
	}
}

func (o Outcomes) Total() int {
	return o.Applied + o.Unrecognized + o.Rejected + o.Dropped
}

// Report summarizes a finished run. Grids are stored as space-separated rows.
type Report struct {
	ID          string        `yaml:"id" json:"id"`
	Strategy    string        `yaml:"strategy" json:"strategy"`
	Seed        uint64        `yaml:"seed" json:"seed"`
	Profile     noise.Profile `yaml:"profile" json:"profile"`
	Protocol    string        `yaml:"protocol" json:"protocol"`
	Hops        int           `yaml:"hops" json:"hops"`
	Target      []string      `yaml:"target" json:"target"`
	Result      []string      `yaml:"result" json:"result"`
	Difference  []string      `yaml:"difference" json:"difference"`
	Accuracy    float64       `yaml:"accuracy" json:"accuracy"`
	Pattern     string        `yaml:"pattern" json:"pattern"`
	Suggestions []string      `yaml:"suggestions,omitempty" json:"suggestions,omitempty"`
	Outcomes    Outcomes      `yaml:"outcomes" json:"outcomes"`
	Steps       []Step        `yaml:"steps" json:"steps"`
}

func (r Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}

func (r Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Text renders the report for a terminal.
func (r Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "exchange %s\n", r.ID)
	fmt.Fprintf(&b, "strategy=%s protocol=%s hops=%d seed=%d\n", r.Strategy, r.Protocol, r.Hops, r.Seed)
	fmt.Fprintf(&b, "noise forget=%.2f misinterpret=%.2f reorder=%.2f\n\n",
		r.Profile.Forget, r.Profile.Misinterpret, r.Profile.Reorder)

	width := 0
	for _, row := range r.Target {
		width = max(width, len(row))
	}
	width = max(width, len("target"))
	fmt.Fprintf(&b, "%-*s   %-*s   %s\n", width, "target", width, "result", "diff")
	for i := range r.Target {
		fmt.Fprintf(&b, "%-*s   %-*s   %s\n", width, r.Target[i], width, at(r.Result, i), at(r.Difference, i))
	}

	fmt.Fprintf(&b, "\naccuracy: %.1f%%\n", r.Accuracy)
	fmt.Fprintf(&b, "pattern: %s\n", r.Pattern)
	fmt.Fprintf(&b, "outcomes: applied=%d unrecognized=%d rejected=%d dropped=%d\n",
		r.Outcomes.Applied, r.Outcomes.Unrecognized, r.Outcomes.Rejected, r.Outcomes.Dropped)
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	return b.String()
}

// Transcript lists what was said and what arrived, one step per line.
func (r Report) Transcript() string {
	var b strings.Builder
	for _, s := range r.Steps {
		fmt.Fprintf(&b, "%d. %q -> %q [%s]\n", s.Index, s.Original, s.Received, s.Outcome)
	}
	return b.String()
}

func at(rows []string, i int) string {
	if i < len(rows) {
		return rows[i]
	}
	return ""
}
