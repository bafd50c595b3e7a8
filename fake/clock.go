// Package fake
// Author: momentics <momentics@gmail.com>
//
// Controllable time source.

package fake

import (
	"sync"
	"time"

	"github.com/momentics/hioload-txtime/cycle"
)

// TimeSource is a cycle.TimeSource returning a settable instant.
type TimeSource struct {
	mu    sync.Mutex
	now   cycle.Instant
	reads int
}

// NewTimeSource starts at sec.nsec.
func NewTimeSource(sec uint64, nsec uint32) *TimeSource {
	return &TimeSource{now: cycle.Instant{Sec: sec, Nsec: nsec}}
}

// Now implements cycle.TimeSource.
func (t *TimeSource) Now() cycle.Instant {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reads++
	return t.now
}

// Set moves the source.
func (t *TimeSource) Set(sec uint64, nsec uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = cycle.Instant{Sec: sec, Nsec: nsec}
}

// Reads returns how often Now was called.
func (t *TimeSource) Reads() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reads
}

// Add moves the source forward by d.
func (t *TimeSource) Add(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ns := t.now.UnixNano() + uint64(d)
	t.now = cycle.Instant{Sec: ns / uint64(time.Second), Nsec: uint32(ns % uint64(time.Second))}
}
