// File: internal/cli/run.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/momentics/hioload-txtime/affinity"
	"github.com/momentics/hioload-txtime/control"
	"github.com/momentics/hioload-txtime/cycle"
	"github.com/momentics/hioload-txtime/dispatch"
	"github.com/momentics/hioload-txtime/errqueue"
	"github.com/momentics/hioload-txtime/internal/transport"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Interface   string
	Transport   string
	Destination string
	Count       uint64
	CPU         int
	NoTxTime    bool
	StrictDrops bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Publish frames on a cycle with scheduled release",
		Long: `Open the configured channel and publish one frame per cycle until the
frame count is reached or the process is interrupted. SIGHUP reloads the log
level and strict drop setting from the configuration file.

Example:
  txtimepub run --config publisher.yaml
  txtimepub run --transport udp --dest 239.0.0.1:4840 --iface enp1s0 --count 1000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPublisher(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Interface, "iface", "i", "", "network interface (overrides config)")
	cmd.Flags().StringVarP(&opts.Transport, "transport", "t", "", "ethernet|udp (overrides config)")
	cmd.Flags().StringVar(&opts.Destination, "dest", "", "UDP multicast destination addr:port (overrides config)")
	cmd.Flags().Uint64VarP(&opts.Count, "count", "n", 0, "frames to publish, 0 runs until interrupted (overrides config)")
	cmd.Flags().IntVar(&opts.CPU, "cpu", -1, "pin the publish thread to this CPU (overrides config)")
	cmd.Flags().BoolVar(&opts.NoTxTime, "no-txtime", false, "send immediately without scheduled release")
	cmd.Flags().BoolVar(&opts.StrictDrops, "strict-drops", false, "count missed deadlines as publish failures")

	return cmd
}

// applyFlags overlays explicitly set flags on cfg.
func applyFlags(cfg *control.Config, opts *RunOptions, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("iface") {
		cfg.Channel.Interface = opts.Interface
	}
	if flags.Changed("transport") {
		cfg.Channel.Transport = opts.Transport
	}
	if flags.Changed("dest") {
		cfg.Channel.Destination = opts.Destination
	}
	if flags.Changed("count") {
		cfg.Loop.Count = opts.Count
	}
	if flags.Changed("cpu") {
		cfg.Loop.CPU = opts.CPU
	}
	if opts.NoTxTime {
		cfg.TxTime.Enabled = false
	}
	if opts.StrictDrops {
		cfg.TxTime.StrictDrops = true
	}
}

func runPublisher(opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := control.Load(opts.Config)
	if err != nil {
		return err
	}
	applyFlags(&cfg, opts, cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}
	kind, _ := cfg.TransportKind()

	log, level := control.NewLogger(cfg.Log, os.Stderr)
	slog.SetDefault(log)

	ch, err := transport.Open(transport.Options{
		Transport:    kind,
		Interface:    cfg.Channel.Interface,
		Destination:  cfg.Channel.Destination,
		EtherType:    cfg.Channel.EtherType,
		Priority:     cfg.Channel.Priority,
		TxTime:       cfg.TxTime.Enabled,
		DeadlineMode: cfg.Channel.DeadlineMode,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ch.Close(); closeErr != nil {
			log.Error("error closing channel", "error", closeErr)
		}
	}()
	log = log.With("channel", ch.ID().String(), "transport", kind.String())

	metrics := control.NewMetricsRegistry()
	monitor := errqueue.NewMonitor(errqueue.WithLogger(log), errqueue.WithHistory(cfg.TxTime.History))
	d := dispatch.New(ch, dispatch.Config{
		Cycle:         cfg.CycleTiming(),
		TxTimeEnabled: cfg.TxTime.Enabled,
		StrictDrops:   cfg.TxTime.StrictDrops,
	},
		dispatch.WithLogger(log),
		dispatch.WithMetrics(metrics),
		dispatch.WithDrainer(monitor),
	)

	control.RegisterPlatformProbes(metrics)
	metrics.RegisterProbe("cycle.next", func() any { return d.Clock().Next().String() })
	metrics.RegisterProbe("errqueue.recent", func() any { return len(monitor.Recent()) })

	var strict atomic.Bool
	strict.Store(cfg.TxTime.StrictDrops)
	store := control.NewStore(cfg)
	store.OnReload(func(c control.Config) {
		if l, err := control.ParseLevel(c.Log.Level); err == nil {
			level.Set(l)
		}
		strict.Store(c.TxTime.StrictDrops)
		log.Info("configuration reloaded", "level", c.Log.Level, "strict_drops", c.TxTime.StrictDrops)
	})

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go watchReload(ctx, opts.Config, store, log)

	loop := &publishLoop{
		d:       d,
		src:     cycle.TAI(),
		sleep:   time.Sleep,
		log:     log,
		period:  cfg.CycleTiming().Period,
		timed:   cfg.TxTime.Enabled,
		count:   cfg.Loop.Count,
		payload: make([]byte, cfg.Loop.PayloadSize),
		strict:  &strict,
	}

	release, err := affinity.PinPublisher(cfg.Loop.CPU)
	if err != nil {
		log.Warn("affinity pin failed", "cpu", cfg.Loop.CPU, "error", err)
	}
	log.Info("publisher starting",
		"period", cfg.CycleTiming().Period,
		"guard_band", cfg.CycleTiming().GuardBand,
		"txtime", cfg.TxTime.Enabled,
		"count", cfg.Loop.Count)
	err = loop.run(ctx)
	release()

	log.Info("publisher stopped",
		"published", loop.published,
		"failures", loop.failures,
		"metrics", metrics.GetSnapshot())
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "published %d frames, %d failures\n", loop.published, loop.failures); err != nil {
		return err
	}
	return nil
}

// watchReload reloads path into store on every SIGHUP.
func watchReload(ctx context.Context, path string, store *control.Store, log *slog.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if path == "" {
				log.Warn("SIGHUP ignored, no configuration file")
				continue
			}
			cfg, err := control.Load(path)
			if err != nil {
				log.Error("configuration reload failed", "error", err)
				continue
			}
			store.SetConfig(cfg)
		}
	}
}
