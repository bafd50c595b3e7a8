// File: cycle/source.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package cycle

import "time"

func fromTime(t time.Time) Instant {
	return Instant{Sec: uint64(t.Unix()), Nsec: uint32(t.Nanosecond())}
}

// SourceFunc adapts a function to TimeSource.
type SourceFunc func() Instant

// Now calls f.
func (f SourceFunc) Now() Instant { return f() }

// Fixed returns a source that always reports the same instant.
func Fixed(sec uint64, nsec uint32) TimeSource {
	return SourceFunc(func() Instant { return Instant{Sec: sec, Nsec: nsec} })
}
