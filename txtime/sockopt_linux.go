//go:build linux
// +build linux

// File: txtime/sockopt_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SO_TXTIME socket option.

package txtime

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/sys/unix"
)

// Flags of struct sock_txtime, linux/net_tstamp.h.
const (
	flagDeadlineMode = 1 << 0
	flagReportErrors = 1 << 1
)

// SocketOptions selects the SO_TXTIME behaviour of a socket.
type SocketOptions struct {
	// ClockID is the clock release instants refer to, normally CLOCK_TAI.
	ClockID int32
	// DeadlineMode lets the qdisc send a frame early, treating the instant as a deadline.
	DeadlineMode bool
	// ReportErrors asks the stack to queue drop notifications on the error queue.
	ReportErrors bool
}

// EnableSocket sets SO_TXTIME on fd.
func EnableSocket(fd int, opts SocketOptions) error {
	var flags uint32
	if opts.DeadlineMode {
		flags |= flagDeadlineMode
	}
	if opts.ReportErrors {
		flags |= flagReportErrors
	}
	// struct sock_txtime { clockid_t clockid; __u32 flags; }
	var raw [8]byte
	binary.NativeEndian.PutUint32(raw[0:4], uint32(opts.ClockID))
	binary.NativeEndian.PutUint32(raw[4:8], flags)
	if err := unix.SetsockoptString(fd, unix.SOL_SOCKET, unix.SO_TXTIME, string(raw[:])); err != nil {
		return fmt.Errorf("txtime: setsockopt SO_TXTIME: %w", err)
	}
	return nil
}
