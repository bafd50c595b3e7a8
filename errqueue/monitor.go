// File: errqueue/monitor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-then-drain classification of error queue notifications.

package errqueue

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/eapache/queue"
	"github.com/momentics/hioload-txtime/api"
)

// DefaultHistory is the number of drained records kept for inspection.
const DefaultHistory = 64

// Monitor classifies one pending notification per call.
type Monitor struct {
	poller api.CompletionPoller
	log    *slog.Logger

	mu      sync.Mutex
	history *queue.Queue
	depth   int
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithPoller replaces the platform poller.
func WithPoller(p api.CompletionPoller) Option {
	return func(m *Monitor) { m.poller = p }
}

// WithLogger sets the logger for drop and failure reports.
func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

// WithHistory sets how many drained records Recent returns. Zero disables the history.
func WithHistory(depth int) Option {
	return func(m *Monitor) { m.depth = depth }
}

// NewMonitor returns a monitor using the platform poller.
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		poller:  NewPoller(),
		log:     slog.Default(),
		history: queue.New(),
		depth:   DefaultHistory,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// DrainOne checks fd for a pending notification and classifies it.
// The error is non-nil exactly when the verdict is VerdictFatal.
func (m *Monitor) DrainOne(fd int) (api.Verdict, error) {
	rec, err := m.poller.PollCompletion(fd)
	if err != nil {
		m.log.Error("error queue drain failed", "fd", fd, "error", err)
		return api.VerdictFatal, err
	}
	if rec == nil {
		return api.VerdictEmpty, nil
	}
	m.remember(*rec)

	if rec.TxTimeDrop() {
		m.log.Info(fmt.Sprintf("packet with timestamp %d dropped due to %s", rec.Timestamp, rec.Reason()),
			"timestamp", rec.Timestamp,
			"code", uint8(rec.Code))
		return api.VerdictBenign, nil
	}
	m.log.Error("unclassified error queue notification",
		"origin", rec.Origin.String(),
		"code", uint8(rec.Code),
		"errno", rec.Errno,
		"timestamp", rec.Timestamp)
	return api.VerdictFatal, fmt.Errorf("errqueue: %s (errno %d): %w", rec.Reason(), rec.Errno, api.ErrUnclassifiedCompletion)
}

func (m *Monitor) remember(rec api.CompletionRecord) {
	if m.depth <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history.Add(rec)
	for m.history.Length() > m.depth {
		m.history.Remove()
	}
}

// Recent returns the drained records, oldest first.
func (m *Monitor) Recent() []api.CompletionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]api.CompletionRecord, m.history.Length())
	for i := range out {
		out[i] = m.history.Get(i).(api.CompletionRecord)
	}
	return out
}
