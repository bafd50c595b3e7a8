// File: internal/cli/version.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-txtime/internal/transport"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and platform capabilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := transport.DetectFeatures()
			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				return json.NewEncoder(out).Encode(map[string]any{
					"version":  Version,
					"features": f,
				})
			}
			_, err := fmt.Fprintf(out, "txtimepub %s (%s) scheduled-release=%t error-queue=%t raw-ethernet=%t\n",
				Version, f.OS, f.ScheduledRelease, f.ErrorQueue, f.RawEthernet)
			return err
		},
	}
}
