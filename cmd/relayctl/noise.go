package main

import (
	"fmt"

	"github.com/danmuck/relayctl/internal/noise"
	"github.com/spf13/cobra"
)

type noiseOptions struct {
	tier         string
	seed         uint64
	context      string
	decay        int
	interference bool
	maxLength    int
}

func newNoiseCmd() *cobra.Command {
	var opts noiseOptions
	cmd := &cobra.Command{
		Use:   "noise <text...>",
		Short: "Corrupt text the way one relay hop would",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tier, err := noise.ParseTier(opts.tier)
			if err != nil {
				return err
			}
			e := noise.New(noise.NewSource(opts.seed), noise.WithTier(tier))

			text := joinArgs(args)
			if opts.context != "" {
				text = e.ApplyStrategicNoise(text, opts.context)
			} else {
				text = e.ApplyNoise(text)
			}
			if opts.decay > 0 {
				text = e.ApplyMemoryDecay(text, opts.decay)
			}
			if opts.interference {
				text = e.ApplyChannelInterference(text)
			}
			if opts.maxLength > 0 {
				text = e.ApplyProtocolLimits(text, opts.maxLength)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.tier, "tier", noise.Medium.String(), "noise tier: low|medium|high|extreme")
	f.Uint64Var(&opts.seed, "seed", 1, "random seed")
	f.StringVar(&opts.context, "context", "", "message context, e.g. urgent or technical")
	f.IntVar(&opts.decay, "decay", 0, "turns of memory decay to apply")
	f.BoolVar(&opts.interference, "interference", false, "apply channel interference")
	f.IntVar(&opts.maxLength, "max-length", 0, "truncate to this many characters (0 = no limit)")
	return cmd
}
