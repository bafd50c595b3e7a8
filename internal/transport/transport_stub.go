//go:build !linux
// +build !linux

// internal/transport/transport_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package transport

import "github.com/momentics/hioload-txtime/api"

func openPlatform(Options) (int, api.Destination, error) {
	return -1, api.Destination{}, api.ErrNotSupported
}

func closeFD(int) error { return nil }
