//go:build linux
// +build linux

// File: txtime/attach_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SCM_TXTIME control record construction.

package txtime

import (
	"encoding/binary"
	"unsafe"

	"github.com/momentics/hioload-txtime/api"
	"golang.org/x/sys/unix"
)

const txtimeLen = 8

type scmAttacher struct{}

// NewAttacher returns the SCM_TXTIME attacher.
func NewAttacher() api.ReleaseTimeAttacher { return scmAttacher{} }

// AttachReleaseTime appends one SOL_SOCKET/SCM_TXTIME record carrying instant.
func (scmAttacher) AttachReleaseTime(oob []byte, instant uint64) []byte {
	start := len(oob)
	space := unix.CmsgSpace(txtimeLen)
	if cap(oob)-start < space {
		grown := make([]byte, start, start+space)
		copy(grown, oob)
		oob = grown
	}
	oob = oob[:start+space]
	rec := oob[start:]
	clear(rec)

	h := (*unix.Cmsghdr)(unsafe.Pointer(&rec[0]))
	h.Level = unix.SOL_SOCKET
	h.Type = unix.SCM_TXTIME
	h.SetLen(unix.CmsgLen(txtimeLen))
	binary.NativeEndian.PutUint64(rec[unix.CmsgLen(0):], instant)
	return oob
}
