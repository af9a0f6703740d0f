package main

import (
	"errors"
	"fmt"

	"github.com/danmuck/relayctl/internal/protocol"
	"github.com/danmuck/relayctl/internal/relay"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var (
		version  string
		lines    int
		width    int
		compress bool
	)
	cmd := &cobra.Command{
		Use:   "encode <text...>",
		Short: "Frame text for the channel and split it into lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := protocol.ParseVersion(version)
			if err != nil {
				return err
			}
			text := joinArgs(args)
			if compress {
				text = protocol.CompressDescription(text)
			}
			for _, line := range protocol.SplitByBandwidth(protocol.Encode(text, v), lines, width) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&version, "version", protocol.V1.String(), "protocol version: v1|v2|v3")
	f.IntVar(&lines, "lines", relay.DefaultMaxLines, "maximum lines (0 = unlimited)")
	f.IntVar(&width, "width", relay.DefaultLineLength, "maximum line width (0 = no wrapping)")
	f.BoolVar(&compress, "compress", false, "abbreviate row and column before framing")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <frame...>",
		Short: "Strip a channel frame and print its version and body",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, body, err := protocol.Decode(joinArgs(args))
			if errors.Is(err, protocol.ErrUnframed) {
				fmt.Fprintf(cmd.OutOrStdout(), "version: none\nbody: %s\n", body)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version: %s\nbody: %s\n", v, body)
			return nil
		},
	}
}
