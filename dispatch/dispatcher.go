// File: dispatch/dispatcher.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-channel publish entry points for raw Ethernet and UDP multicast.

package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/control"
	"github.com/momentics/hioload-txtime/cycle"
	"github.com/momentics/hioload-txtime/errqueue"
	"github.com/momentics/hioload-txtime/txtime"
)

// Config is the scheduling behaviour of one channel.
type Config struct {
	Cycle cycle.Config
	// TxTimeEnabled attaches release instants and drains the error queue.
	// Disabled, frames are sent immediately.
	TxTimeEnabled bool
	// StrictDrops reports benign drops as ErrBenignDrop instead of success.
	StrictDrops bool
}

// DefaultConfig returns the default cycle with scheduled release on.
func DefaultConfig() Config {
	return Config{Cycle: cycle.DefaultConfig(), TxTimeEnabled: true}
}

// Drainer is the part of errqueue.Monitor the dispatcher uses.
type Drainer interface {
	DrainOne(fd int) (api.Verdict, error)
}

// Dispatcher publishes frames on one channel.
type Dispatcher struct {
	ch      api.Channel
	cfg     Config
	clock   *cycle.Clock
	sender  api.Sender
	drainer Drainer
	log     *slog.Logger
	metrics *control.MetricsRegistry
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithSender replaces the platform timed sender.
func WithSender(s api.Sender) Option {
	return func(d *Dispatcher) { d.sender = s }
}

// WithDrainer replaces the platform error queue monitor.
func WithDrainer(dr Drainer) Option {
	return func(d *Dispatcher) { d.drainer = dr }
}

// WithTimeSource replaces CLOCK_TAI as the clock the cycle is anchored on.
func WithTimeSource(src cycle.TimeSource) Option {
	return func(d *Dispatcher) { d.clock = cycle.NewClock(d.cfg.Cycle, src) }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithMetrics publishes counters into reg.
func WithMetrics(reg *control.MetricsRegistry) Option {
	return func(d *Dispatcher) { d.metrics = reg }
}

// New builds the dispatcher of ch. The cycle configuration is fixed for the
// lifetime of the dispatcher.
func New(ch api.Channel, cfg Config, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		ch:    ch,
		cfg:   cfg,
		clock: cycle.NewClock(cfg.Cycle, cycle.TAI()),
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.sender == nil {
		d.sender = txtime.NewSender(txtime.WithLogger(d.log))
	}
	if d.drainer == nil {
		d.drainer = errqueue.NewMonitor(errqueue.WithLogger(d.log))
	}
	if d.metrics == nil {
		d.metrics = control.NewMetricsRegistry()
	}
	return d
}

// Clock exposes the channel's cycle clock for inspection.
func (d *Dispatcher) Clock() *cycle.Clock { return d.clock }

// Metrics returns the registry the dispatcher counts into.
func (d *Dispatcher) Metrics() *control.MetricsRegistry { return d.metrics }

// SetStrictDrops switches benign drop reporting. Call it between publishes.
func (d *Dispatcher) SetStrictDrops(strict bool) { d.cfg.StrictDrops = strict }

// PublishEthernet sends payload on a raw Ethernet channel.
func (d *Dispatcher) PublishEthernet(payload []byte) error {
	return d.publishAs(api.TransportEthernet, payload)
}

// PublishUDP sends payload on a UDP multicast channel.
func (d *Dispatcher) PublishUDP(payload []byte) error {
	return d.publishAs(api.TransportUDPMulticast, payload)
}

// Publish sends payload using the channel's own transport.
func (d *Dispatcher) Publish(payload []byte) error {
	return d.publish(payload)
}

func (d *Dispatcher) publishAs(want api.Transport, payload []byte) error {
	if got := d.ch.Destination().Transport; got != want {
		return fmt.Errorf("dispatch: %s publish on %s channel: %w", want, got, api.ErrTransportMismatch)
	}
	return d.publish(payload)
}

func (d *Dispatcher) publish(payload []byte) error {
	var release uint64
	if d.cfg.TxTimeEnabled {
		release = d.clock.Advance().UnixNano()
		d.metrics.Set(control.MetricLastRelease, release)
	}

	n, err := d.sender.Send(d.ch, payload, release, d.cfg.TxTimeEnabled)
	if err != nil || n != len(payload) {
		d.metrics.Add(control.MetricShortSends, 1)
		if err != nil {
			return fmt.Errorf("dispatch: %w: %w", api.ErrShortSend, err)
		}
		return fmt.Errorf("dispatch: %w: %d of %d bytes", api.ErrShortSend, n, len(payload))
	}
	d.metrics.Add(control.MetricPublished, 1)

	if !d.cfg.TxTimeEnabled {
		return nil
	}
	verdict, err := d.drainer.DrainOne(d.ch.FD())
	switch verdict {
	case api.VerdictFatal:
		d.metrics.Add(control.MetricFatalCompletions, 1)
		if err == nil {
			err = api.ErrUnclassifiedCompletion
		}
		return fmt.Errorf("dispatch: %w", err)
	case api.VerdictBenign:
		d.metrics.Add(control.MetricBenignDrops, 1)
		if d.cfg.StrictDrops {
			return fmt.Errorf("dispatch: %w", api.ErrBenignDrop)
		}
	default:
		d.metrics.Add(control.MetricQueueEmpty, 1)
	}
	return nil
}
