package exchange

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/relayctl/internal/builder"
	"github.com/danmuck/relayctl/internal/command"
	"github.com/danmuck/relayctl/internal/describe"
	"github.com/danmuck/relayctl/internal/grid"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/observability"
	"github.com/danmuck/relayctl/internal/protocol"
	"github.com/danmuck/relayctl/internal/relay"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Outcome classifies what the builder made of one relayed message.
type Outcome string

const (
	OutcomeApplied      Outcome = "applied"
	OutcomeUnrecognized Outcome = "unrecognized"
	OutcomeRejected     Outcome = "rejected"
	OutcomeDropped      Outcome = "dropped"
)

var ErrNilTarget = errors.New("exchange: nil target")

// Exchange runs a describer, a chain of relays and a builder against one
// target. All randomness comes from the Source given to New.
type Exchange struct {
	cfg    Config
	target *grid.Grid
	src    noise.Source
	logger zerolog.Logger
}

type Option func(*Exchange)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Exchange) { e.logger = logger }
}

func New(cfg Config, target *grid.Grid, src noise.Source, opts ...Option) (*Exchange, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Dictionaries == nil {
		cfg.Dictionaries = noise.DefaultDictionaries()
	}
	if src == nil {
		src = noise.NewSource(cfg.Seed)
	}
	e := &Exchange{
		cfg:    cfg,
		target: target.Clone(),
		src:    src,
		logger: observability.Component("exchange"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Run describes the target with strategy and relays every message to a
// fresh builder. Line-oriented strategies send one message per line.
func (e *Exchange) Run(ctx context.Context, strategy describe.Strategy) (Report, error) {
	id := uuid.New().String()
	logger := e.logger.With().Str("exchange", id).Str("strategy", string(strategy)).Logger()

	describer := describe.New(e.target)
	text, err := describer.Describe(strategy)
	if err != nil {
		return Report{}, err
	}
	messages := []string{text}
	if strategy.LineOriented() {
		messages = strings.Split(text, "\n")
	}

	engine := noise.New(e.src, noise.WithProfile(e.cfg.Profile), noise.WithDictionaries(e.cfg.Dictionaries))
	chain := make([]*relay.Relay, e.cfg.Hops)
	for i := range chain {
		chain[i] = relay.New(engine,
			relay.WithMaxLines(e.cfg.MaxLines),
			relay.WithLineLength(e.cfg.LineLength),
			relay.WithBandwidth(e.cfg.Bandwidth),
			relay.WithHistory(e.cfg.History),
			relay.WithTraits(e.cfg.Traits),
		)
	}
	b := builder.New(e.target.Size())

	logger.Info().
		Int("messages", len(messages)).
		Int("hops", e.cfg.Hops).
		Str("protocol", e.cfg.Version.String()).
		Msg("exchange_start")

	report := Report{
		ID:       id,
		Strategy: string(strategy),
		Seed:     e.cfg.Seed,
		Profile:  e.cfg.Profile,
		Protocol: e.cfg.Version.String(),
		Hops:     e.cfg.Hops,
		Target:   rowsOf(e.target),
	}
	for i, msg := range messages {
		if err := ctx.Err(); err != nil {
			return Report{}, fmt.Errorf("exchange %s interrupted at step %d: %w", id, i+1, err)
		}
		step := e.step(i+1, msg, engine, chain, b)
		report.Steps = append(report.Steps, step)
		report.Outcomes.add(step.Outcome)

		observability.RecordStep(string(strategy), string(step.Outcome))
		var stepErr error
		if step.Error != "" {
			stepErr = errors.New(step.Error)
		}
		observability.LogStep(logger, observability.Step{
			Exchange: id,
			Index:    step.Index,
			Original: step.Original,
			Relayed:  step.Relayed,
			Lines:    step.Transmitted,
			Outcome:  string(step.Outcome),
			Err:      stepErr,
		})
	}

	result := b.Grid()
	report.Result = rowsOf(result)
	report.Difference = rowsOf(e.target.Difference(result))
	report.Accuracy = e.target.Accuracy(result)
	report.Pattern = result.DetectPattern()
	report.Suggestions = b.Suggestions()

	observability.RecordRun(string(strategy), report.Accuracy)
	logger.Info().
		Float64("accuracy", report.Accuracy).
		Int("applied", report.Outcomes.Applied).
		Int("unrecognized", report.Outcomes.Unrecognized).
		Int("rejected", report.Outcomes.Rejected).
		Int("dropped", report.Outcomes.Dropped).
		Msg("exchange_done")
	return report, nil
}

func (e *Exchange) step(index int, msg string, engine *noise.Engine, chain []*relay.Relay, b *builder.Builder) Step {
	step := Step{Index: index, Original: msg}

	relayed := msg
	for _, r := range chain {
		if e.cfg.Context != "" {
			relayed = r.ProcessWithContext(relayed, e.cfg.Context)
		} else {
			relayed = r.Process(relayed)
		}
	}
	step.Relayed = relayed

	wire := relayed
	if e.cfg.Interference {
		wire = engine.ApplyChannelInterference(wire)
	}
	wire = engine.ApplyProtocolLimits(wire, e.cfg.MaxLength)
	frame := protocol.Encode(wire, e.cfg.Version)

	last := chain[len(chain)-1]
	if !last.Spend(len(frame)) {
		step.Outcome = OutcomeDropped
		step.Error = fmt.Sprintf("bandwidth exhausted: %d units left", last.Bandwidth())
		return step
	}
	step.Transmitted = last.Chunk(frame)

	_, body, err := protocol.Decode(strings.Join(step.Transmitted, " "))
	if err != nil && !errors.Is(err, protocol.ErrUnframed) {
		step.Outcome = OutcomeUnrecognized
		step.Error = err.Error()
		return step
	}
	step.Received = body
	if cmd := command.Parse(body); cmd.Kind() != command.KindInvalid {
		step.Command = cmd.String()
	}

	switch err := b.Execute(body); {
	case err == nil:
		step.Outcome = OutcomeApplied
	case errors.Is(err, builder.ErrOutOfBounds):
		step.Outcome = OutcomeRejected
		step.Error = err.Error()
	default:
		step.Outcome = OutcomeUnrecognized
		step.Error = err.Error()
	}
	return step
}

func rowsOf(g *grid.Grid) []string {
	return strings.Split(g.String(), "\n")
}
