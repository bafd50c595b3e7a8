// File: internal/cli/root.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Command tree of the txtimepub tool.

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is overridden at link time.
var Version = "dev"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Config string
	Format string // "text" | "json"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "txtimepub",
		Short: "Cyclic publisher with scheduled transmission",
		Long: `txtimepub publishes frames on a fixed cycle and asks the kernel to release
each one at an exact instant on CLOCK_TAI (SO_TXTIME / etf qdisc). Drops reported
on the socket error queue are logged after every send.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "path to YAML configuration")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewPlanCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}
