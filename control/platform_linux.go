//go:build linux
// +build linux

// control/platform_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific debug probes.

package control

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// RegisterPlatformProbes sets Linux-specific debug metrics.
func RegisterPlatformProbes(mr *MetricsRegistry) {
	mr.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	mr.RegisterProbe("platform.clock_tai", func() any {
		var ts unix.Timespec
		return unix.ClockGettime(unix.CLOCK_TAI, &ts) == nil
	})
	mr.RegisterProbe("platform.tai_offset_s", func() any {
		var tai, rt unix.Timespec
		if unix.ClockGettime(unix.CLOCK_TAI, &tai) != nil || unix.ClockGettime(unix.CLOCK_REALTIME, &rt) != nil {
			return nil
		}
		// Rounded: the two reads are not simultaneous.
		return (tai.Nano() - rt.Nano() + 500_000_000) / 1_000_000_000
	})
}
