package main

import (
	"fmt"

	"github.com/danmuck/relayctl/internal/command"
	"github.com/danmuck/relayctl/internal/grid"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "parse <text...>",
		Short: "Parse a builder command and check it against a grid size",
		Long:  "Parse reads one command in the builder grammar:\n\n" + command.Help(),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if size < 1 {
				return fmt.Errorf("size must be positive, got %d", size)
			}
			out := cmd.OutOrStdout()
			c := command.Parse(joinArgs(args))
			fmt.Fprintf(out, "kind: %s\n", c.Kind())
			if c.Kind() == command.KindInvalid {
				fmt.Fprintln(out, "valid: false (unrecognized)")
				return nil
			}
			fmt.Fprintf(out, "command: %s\n", c)
			fmt.Fprintf(out, "valid: %t (%dx%d)\n", command.Validate(c, grid.New(size)), size, size)
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "size", 4, "grid size to validate against")
	return cmd
}
