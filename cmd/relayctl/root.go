package main

import (
	"strings"

	"github.com/danmuck/relayctl/internal/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "relayctl",
		Short: "Relay a grid description through noisy messengers",
		Long: `relayctl describes a target grid, passes the description through a chain
of relays that forget, mishear and reorder words, frames it for a limited
channel, and lets a builder reconstruct the grid from whatever arrives.

Each stage is also available on its own: parse, noise, encode and decode.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.ConfigureRuntime()
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRunCmd(),
		newDescribeCmd(),
		newParseCmd(),
		newNoiseCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newConfigCmd(),
	)
	return root
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
