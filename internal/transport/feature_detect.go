// File: internal/transport/feature_detect.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Advertises what the current platform offers for scheduled publishing.

package transport

import (
	"runtime"
)

// Features lists the scheduled-send capabilities of the platform.
type Features struct {
	ScheduledRelease bool
	ErrorQueue       bool
	RawEthernet      bool
	OS               string
}

// DetectFeatures returns the set of available features for this OS.
func DetectFeatures() Features {
	linux := runtime.GOOS == "linux"
	return Features{
		ScheduledRelease: linux,
		ErrorQueue:       linux,
		RawEthernet:      linux,
		OS:               runtime.GOOS,
	}
}
