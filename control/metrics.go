// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector for publish channels.
// Exposes counters and debug probes in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"time"
)

// Counter names published by the dispatcher.
const (
	MetricPublished        = "publish.sent"
	MetricShortSends       = "publish.short_sends"
	MetricBenignDrops      = "errqueue.benign_drops"
	MetricFatalCompletions = "errqueue.fatal"
	MetricQueueEmpty       = "errqueue.empty"
	MetricLastRelease      = "cycle.last_release_ns"
)

// MetricsRegistry holds mutable counters and read-only probes evaluated on snapshot.
type MetricsRegistry struct {
	mu      sync.RWMutex
	metrics map[string]any
	probes  map[string]func() any
	updated time.Time
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		metrics: make(map[string]any),
		probes:  make(map[string]func() any),
	}
}

// RegisterProbe adds a value computed on every snapshot. Probes must not
// call back into the registry.
func (mr *MetricsRegistry) RegisterProbe(name string, fn func() any) {
	mr.mu.Lock()
	defer mr.mu.Unlock()
	mr.probes[name] = fn
}

// Set sets or updates a metric key.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.metrics[key] = value
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Add increments a counter. A key holding a non-counter value is replaced.
func (mr *MetricsRegistry) Add(key string, delta uint64) {
	mr.mu.Lock()
	cur, _ := mr.metrics[key].(uint64)
	mr.metrics[key] = cur + delta
	mr.updated = time.Now()
	mr.mu.Unlock()
}

// Counter returns a counter value, zero when unset.
func (mr *MetricsRegistry) Counter(key string) uint64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	v, _ := mr.metrics[key].(uint64)
	return v
}

// Updated returns the time of the last change.
func (mr *MetricsRegistry) Updated() time.Time {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return mr.updated
}

// GetSnapshot returns the latest counters together with the probe values.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.metrics)+len(mr.probes))
	for k, v := range mr.metrics {
		out[k] = v
	}
	for k, fn := range mr.probes {
		out[k] = fn()
	}
	return out
}
