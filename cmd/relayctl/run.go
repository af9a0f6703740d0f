package main

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/danmuck/relayctl/internal/config"
	"github.com/danmuck/relayctl/internal/exchange"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/danmuck/relayctl/internal/observability"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// Replaced in tests.
var clipboardWriteAll = clipboard.WriteAll

type runOptions struct {
	configPath  string
	strategy    string
	tier        string
	seed        uint64
	format      string
	copy        bool
	metricsFile string
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one exchange from describer to builder",
		Long: `Run describes the target grid with the chosen strategy, relays every
message through the configured chain and reports how much of the grid the
builder reconstructed.

A seed of 0 picks a time-based seed; the report always shows the seed used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExchange(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	f.StringVarP(&opts.strategy, "strategy", "s", "", "description strategy (overrides config)")
	f.StringVar(&opts.tier, "tier", "", "noise tier: low|medium|high|extreme (overrides config)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed (overrides config)")
	f.StringVarP(&opts.format, "format", "o", "text", "report format: text|yaml|json")
	f.BoolVar(&opts.copy, "copy", false, "copy the step transcript to the clipboard")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "write prometheus metrics to this file after the run")
	return cmd
}

func runExchange(cmd *cobra.Command, opts runOptions) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if opts.tier != "" {
		cfg.Noise.Tier = opts.tier
		cfg.Noise.Profile = nil
	}
	if cmd.Flags().Changed("seed") {
		cfg.Noise.Seed = opts.seed
	}
	if cfg.Noise.Seed == 0 {
		cfg.Noise.Seed = uint64(time.Now().UnixNano())
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	render, err := reportRenderer(opts.format)
	if err != nil {
		return err
	}

	strategy, err := cfg.StrategyValue()
	if err != nil {
		return err
	}
	xcfg, err := exchange.FromConfig(cfg)
	if err != nil {
		return err
	}
	src := noise.NewSource(cfg.Noise.Seed)
	target, err := cfg.Target(src)
	if err != nil {
		return err
	}
	ex, err := exchange.New(xcfg, target, src)
	if err != nil {
		return err
	}
	report, err := ex.Run(cmd.Context(), strategy)
	if err != nil {
		return err
	}

	out, err := render(report)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)

	if opts.copy {
		if err := clipboardWriteAll(report.Transcript()); err != nil {
			log.Warn().Err(err).Msg("clipboard_copy_failed")
		}
	}
	if opts.metricsFile != "" {
		if err := observability.WriteMetricsFile(opts.metricsFile); err != nil {
			return fmt.Errorf("write metrics (%s): %w", opts.metricsFile, err)
		}
	}
	return nil
}

func reportRenderer(format string) (func(exchange.Report) (string, error), error) {
	switch format {
	case "", "text":
		return func(r exchange.Report) (string, error) { return r.Text(), nil }, nil
	case "yaml":
		return func(r exchange.Report) (string, error) {
			b, err := r.YAML()
			return string(b), err
		}, nil
	case "json":
		return func(r exchange.Report) (string, error) {
			b, err := r.JSON()
			return string(b) + "\n", err
		}, nil
	default:
		return nil, fmt.Errorf("unknown format %q (want text|yaml|json)", format)
	}
}
