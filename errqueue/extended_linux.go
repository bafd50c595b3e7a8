//go:build linux
// +build linux

// File: errqueue/extended_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// struct sock_extended_err as delivered in error queue control messages.

package errqueue

import (
	"unsafe"

	"github.com/momentics/hioload-txtime/api"
	"golang.org/x/sys/unix"
)

const sizeofExtendedErr = int(unsafe.Sizeof(unix.SockExtendedErr{}))

// api carries its own copies so callers outside Linux can classify records.
// Each pair fails to compile if the values drift apart.
const (
	_ = api.OriginTxTime - unix.SO_EE_ORIGIN_TXTIME
	_ = unix.SO_EE_ORIGIN_TXTIME - api.OriginTxTime
	_ = api.CodeTxTimeInvalidParam - unix.SO_EE_CODE_TXTIME_INVALID_PARAM
	_ = unix.SO_EE_CODE_TXTIME_INVALID_PARAM - api.CodeTxTimeInvalidParam
	_ = api.CodeTxTimeMissed - unix.SO_EE_CODE_TXTIME_MISSED
	_ = unix.SO_EE_CODE_TXTIME_MISSED - api.CodeTxTimeMissed
)

// carriesExtendedErr reports whether a control message holds a
// sock_extended_err: IP_RECVERR, IPV6_RECVERR or a packet socket tx report.
func carriesExtendedErr(h unix.Cmsghdr) bool {
	switch {
	case h.Level == unix.SOL_IP && h.Type == unix.IP_RECVERR,
		h.Level == unix.SOL_IPV6 && h.Type == unix.IPV6_RECVERR,
		h.Level == unix.SOL_PACKET && h.Type == unix.PACKET_TX_TIMESTAMP:
		return true
	}
	return false
}

// decodeExtendedErr reads the record at the start of data. It reports false
// when data is too short.
func decodeExtendedErr(data []byte) (api.CompletionRecord, bool) {
	if len(data) < sizeofExtendedErr {
		return api.CompletionRecord{}, false
	}
	ee := (*unix.SockExtendedErr)(unsafe.Pointer(&data[0]))
	return api.CompletionRecord{
		Errno:     ee.Errno,
		Origin:    api.Origin(ee.Origin),
		Type:      ee.Type,
		Code:      api.Code(ee.Code),
		Timestamp: JoinTimestamp(ee.Data, ee.Info),
	}, true
}
