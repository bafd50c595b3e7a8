// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake error queue poller with injectable notifications.

package fake

import (
	"sync"

	"github.com/momentics/hioload-txtime/api"
)

// Poller is a fake implementation of api.CompletionPoller.
// Queued results are returned in order; an empty queue reports nothing pending.
type Poller struct {
	mu      sync.Mutex
	pending []pollResult
	calls   int
}

type pollResult struct {
	rec *api.CompletionRecord
	err error
}

// NewPoller creates a poller with an empty queue.
func NewPoller() *Poller {
	return &Poller{}
}

// PollCompletion implements api.CompletionPoller.
func (p *Poller) PollCompletion(int) (*api.CompletionRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if len(p.pending) == 0 {
		return nil, nil
	}
	r := p.pending[0]
	p.pending = p.pending[1:]
	return r.rec, r.err
}

// Push queues a notification.
func (p *Poller) Push(rec api.CompletionRecord) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, pollResult{rec: &rec})
}

// PushError queues a failing drain.
func (p *Poller) PushError(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, pollResult{err: err})
}

// Calls returns how many times PollCompletion ran.
func (p *Poller) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// MissedDeadline builds a txtime notification for a missed release.
func MissedDeadline(timestamp uint64) api.CompletionRecord {
	return api.CompletionRecord{
		Errno:     uint32(errnoECANCELED),
		Origin:    api.OriginTxTime,
		Code:      api.CodeTxTimeMissed,
		Timestamp: timestamp,
	}
}

// InvalidParam builds a txtime notification for a rejected release.
func InvalidParam(timestamp uint64) api.CompletionRecord {
	return api.CompletionRecord{
		Errno:     uint32(errnoEINVAL),
		Origin:    api.OriginTxTime,
		Code:      api.CodeTxTimeInvalidParam,
		Timestamp: timestamp,
	}
}

// errno values the kernel reports with txtime drops.
const (
	errnoEINVAL    = 22
	errnoECANCELED = 125
)
