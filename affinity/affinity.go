// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_stub.go) guarded by build tags.

package affinity

import "runtime"

// SetAffinity pins current OS thread to a given logical CPU/core on supported platforms.
// On unsupported platforms returns an error.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// PinPublisher locks the calling goroutine to its OS thread and, for a
// non-negative cpuID, pins that thread. The returned function releases the lock.
func PinPublisher(cpuID int) (release func(), err error) {
	runtime.LockOSThread()
	if cpuID >= 0 {
		if err := SetAffinity(cpuID); err != nil {
			runtime.UnlockOSThread()
			return func() {}, err
		}
	}
	return runtime.UnlockOSThread, nil
}
