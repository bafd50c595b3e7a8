// File: internal/cli/loop.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Periodic publish loop driving a dispatcher.

package cli

import (
	"context"
	"encoding/binary"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-txtime/cycle"
	"github.com/momentics/hioload-txtime/dispatch"
)

// publishLoop sends one frame per cycle. With scheduled release on, each
// frame is handed to the kernel one cycle before its release instant.
type publishLoop struct {
	d       *dispatch.Dispatcher
	src     cycle.TimeSource
	sleep   func(time.Duration)
	log     *slog.Logger
	period  time.Duration
	timed   bool
	count   uint64
	payload []byte
	strict  *atomic.Bool

	published uint64
	failures  uint64
}

// wait sleeps until target on the loop's time source.
func (l *publishLoop) wait(target uint64) {
	now := l.src.Now().UnixNano()
	if target > now {
		l.sleep(time.Duration(target - now))
	}
}

// align delays the first frame until just past a second boundary so the
// anchored release, a period plus guard band into that second, is ahead.
func (l *publishLoop) align() {
	now := l.src.Now()
	if now.Nsec == 0 {
		return
	}
	l.wait((now.Sec + 1) * uint64(time.Second))
}

func (l *publishLoop) run(ctx context.Context) error {
	if l.timed && !l.d.Clock().Initialized() {
		l.align()
	}
	for seq := uint64(0); l.count == 0 || seq < l.count; seq++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if l.strict != nil {
			l.d.SetStrictDrops(l.strict.Load())
		}

		if len(l.payload) >= 8 {
			binary.BigEndian.PutUint64(l.payload, seq)
		}
		if err := l.d.Publish(l.payload); err != nil {
			l.failures++
			l.log.Warn("publish failed", "seq", seq, "error", err)
		} else {
			l.published++
		}

		if l.timed && l.d.Clock().Initialized() {
			l.wait(l.d.Clock().Next().UnixNano())
		} else {
			l.sleep(l.period)
		}
	}
	return nil
}
