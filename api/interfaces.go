// File: api/interfaces.go
// Author: momentics <momentics@gmail.com>
//
// Contracts between the dispatcher and its send/completion collaborators.

package api

// Sender issues one send on a channel, optionally scheduled for release.
type Sender interface {
	// Send returns the number of bytes the stack accepted. When timed is
	// false the frame is sent immediately without ancillary data.
	Send(ch Channel, payload []byte, release uint64, timed bool) (int, error)
}

// ReleaseTimeAttacher appends the OS control record that requests
// transmission at instant (nanoseconds on the channel's txtime clock).
type ReleaseTimeAttacher interface {
	AttachReleaseTime(oob []byte, instant uint64) []byte
}

// CompletionPoller checks a socket's error queue without blocking.
type CompletionPoller interface {
	// PollCompletion returns nil, nil when nothing is pending.
	PollCompletion(fd int) (*CompletionRecord, error)
}
