//go:build !linux
// +build !linux

// File: txtime/sockopt_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package txtime

import "github.com/momentics/hioload-txtime/api"

// SocketOptions selects the SO_TXTIME behaviour of a socket.
type SocketOptions struct {
	ClockID      int32
	DeadlineMode bool
	ReportErrors bool
}

// EnableSocket is not supported outside Linux.
func EnableSocket(fd int, opts SocketOptions) error {
	return api.ErrNotSupported
}
