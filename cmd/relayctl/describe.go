package main

import (
	"fmt"

	"github.com/danmuck/relayctl/internal/config"
	"github.com/danmuck/relayctl/internal/describe"
	"github.com/danmuck/relayctl/internal/noise"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var (
		configPath string
		strategy   string
		hints      bool
	)
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print what the describer would send for the target grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if strategy != "" {
				cfg.Strategy = strategy
			}
			s, err := cfg.StrategyValue()
			if err != nil {
				return err
			}
			target, err := cfg.Target(noise.NewSource(cfg.Noise.Seed))
			if err != nil {
				return err
			}

			d := describe.New(target)
			text, err := d.Describe(s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "target:\n%s\n\n%s\n", target, text)
			if hints {
				fmt.Fprintf(out, "\neffectiveness: %.2f\n", d.Effectiveness(string(s)))
				for _, h := range d.Hints() {
					fmt.Fprintf(out, "hint: %s\n", h)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "description strategy")
	cmd.Flags().BoolVar(&hints, "hints", false, "also print strategy hints")
	return cmd
}
