//go:build !linux
// +build !linux

// File: cycle/tai_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wall clock fallback for platforms without CLOCK_TAI.

package cycle

import "time"

type wallSource struct{}

// TAI returns the wall clock on platforms without CLOCK_TAI.
func TAI() TimeSource { return wallSource{} }

// ClockID has no meaning without SO_TXTIME.
const ClockID = -1

func (wallSource) Now() Instant { return fromTime(time.Now()) }
