//go:build linux
// +build linux

// File: cycle/tai_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CLOCK_TAI time source. The etf qdisc compares release instants against
// CLOCK_TAI, so this is the default source on Linux.

package cycle

import (
	"time"

	"golang.org/x/sys/unix"
)

type taiSource struct{}

// TAI returns a time source reading CLOCK_TAI.
func TAI() TimeSource { return taiSource{} }

// ClockID is the clock the release instants refer to, for SO_TXTIME.
const ClockID = unix.CLOCK_TAI

func (taiSource) Now() Instant {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_TAI, &ts); err != nil {
		// Kernels without CLOCK_TAI still have a realtime clock.
		return fromTime(time.Now())
	}
	return Instant{Sec: uint64(ts.Sec), Nsec: uint32(ts.Nsec)}
}
