//go:build !linux
// +build !linux

// control/platform_other.go
// Author: momentics <momentics@gmail.com>
//
// Generic debug probes for platforms without CLOCK_TAI.

package control

import "runtime"

// RegisterPlatformProbes sets platform debug metrics.
func RegisterPlatformProbes(mr *MetricsRegistry) {
	mr.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	mr.RegisterProbe("platform.clock_tai", func() any { return false })
}
