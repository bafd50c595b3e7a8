//go:build !linux
// +build !linux

// File: txtime/attach_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No scheduled release outside Linux: frames leave immediately.

package txtime

import "github.com/momentics/hioload-txtime/api"

type noopAttacher struct{}

// NewAttacher returns an attacher that adds nothing.
func NewAttacher() api.ReleaseTimeAttacher { return noopAttacher{} }

func (noopAttacher) AttachReleaseTime(oob []byte, _ uint64) []byte { return oob }
