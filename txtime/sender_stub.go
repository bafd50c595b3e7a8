//go:build !linux
// +build !linux

// File: txtime/sender_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package txtime

import "github.com/momentics/hioload-txtime/api"

func sysTransmit(fd int, payload, oob []byte, dst api.Destination) (int, error) {
	return 0, api.ErrNotSupported
}
