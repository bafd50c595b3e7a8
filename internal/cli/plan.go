// File: internal/cli/plan.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-txtime/control"
	"github.com/momentics/hioload-txtime/cycle"
)

// PlanOptions holds flags for the plan command.
type PlanOptions struct {
	*RootOptions
	Count     int
	Period    time.Duration
	GuardBand time.Duration
	Profile   string

	// Source overrides CLOCK_TAI (for testing).
	Source cycle.TimeSource
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlanOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the release instants a channel would use",
		Long: `Print the next release instants computed from the configured cycle without
opening a socket.

Example:
  txtimepub plan --count 4
  txtimepub plan --period 1ms --profile i5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Count, "count", "n", 8, "number of instants")
	cmd.Flags().DurationVar(&opts.Period, "period", 0, "cycle period (overrides config)")
	cmd.Flags().DurationVar(&opts.GuardBand, "guard-band", 0, "guard band (overrides config)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "guard band hardware profile (i5|mbox)")

	return cmd
}

type plannedRelease struct {
	Index   int    `json:"index"`
	Sec     uint64 `json:"sec"`
	Nsec    uint32 `json:"nsec"`
	Release uint64 `json:"release_ns"`
}

func runPlan(opts *PlanOptions, cmd *cobra.Command) error {
	cfg, err := control.Load(opts.Config)
	if err != nil {
		return err
	}
	if opts.Period > 0 {
		cfg.Cycle.Period = opts.Period
	}
	if opts.GuardBand > 0 {
		cfg.Cycle.GuardBand = opts.GuardBand
	}
	if opts.Profile != "" {
		cfg.Cycle.Profile = opts.Profile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.Count <= 0 {
		return fmt.Errorf("count must be positive, got %d", opts.Count)
	}

	src := opts.Source
	if src == nil {
		src = cycle.TAI()
	}
	clk := cycle.NewClock(cfg.CycleTiming(), src)
	plan := make([]plannedRelease, opts.Count)
	for i := range plan {
		in := clk.Advance()
		plan[i] = plannedRelease{Index: i, Sec: in.Sec, Nsec: in.Nsec, Release: in.UnixNano()}
	}
	return writePlan(cmd.OutOrStdout(), opts.Format, plan)
}

func writePlan(w io.Writer, format string, plan []plannedRelease) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}
	for _, p := range plan {
		if _, err := fmt.Fprintf(w, "%4d  %d.%09d  %d\n", p.Index, p.Sec, p.Nsec, p.Release); err != nil {
			return err
		}
	}
	return nil
}
