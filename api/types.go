// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations and constants for error queue notifications.

package api

import "fmt"

// Origin mirrors ee_origin of struct sock_extended_err.
type Origin uint8

// Code mirrors ee_code of struct sock_extended_err.
type Code uint8

// Values from linux/errqueue.h; the Linux build checks them against x/sys.
const (
	OriginNone      Origin = 0
	OriginLocal     Origin = 1
	OriginICMP      Origin = 2
	OriginICMP6     Origin = 3
	OriginTxStatus  Origin = 4
	OriginZeroCopy  Origin = 5
	OriginTxTime    Origin = 6
	OriginTimestamp Origin = OriginTxStatus

	CodeTxTimeInvalidParam Code = 1
	CodeTxTimeMissed       Code = 2
)

func (o Origin) String() string {
	switch o {
	case OriginNone:
		return "none"
	case OriginLocal:
		return "local"
	case OriginICMP:
		return "icmp"
	case OriginICMP6:
		return "icmp6"
	case OriginTxStatus:
		return "tx-status"
	case OriginZeroCopy:
		return "zerocopy"
	case OriginTxTime:
		return "txtime"
	default:
		return fmt.Sprintf("origin(%d)", uint8(o))
	}
}

// CompletionRecord is one decoded error queue notification.
type CompletionRecord struct {
	Errno  uint32
	Origin Origin
	Type   uint8
	Code   Code
	// Timestamp is the release instant of the affected frame: ee_data in the
	// high 32 bits, ee_info in the low 32 bits.
	Timestamp uint64
}

// TxTimeDrop reports whether the record is a scheduled-release drop the
// stack reports for missed deadlines or invalid parameters.
func (r CompletionRecord) TxTimeDrop() bool {
	if r.Origin != OriginTxTime {
		return false
	}
	return r.Code == CodeTxTimeInvalidParam || r.Code == CodeTxTimeMissed
}

// Reason returns a short human readable description of the record.
func (r CompletionRecord) Reason() string {
	if r.Origin == OriginTxTime {
		switch r.Code {
		case CodeTxTimeInvalidParam:
			return "invalid params"
		case CodeTxTimeMissed:
			return "missed deadline"
		}
	}
	return fmt.Sprintf("%s code %d", r.Origin, r.Code)
}

// Verdict is the outcome of draining one notification.
type Verdict int

const (
	// VerdictEmpty means no notification was pending.
	VerdictEmpty Verdict = iota
	// VerdictBenign means the stack dropped a scheduled frame for an expected reason.
	VerdictBenign
	// VerdictFatal means the notification could not be received or classified.
	VerdictFatal
)

func (v Verdict) String() string {
	switch v {
	case VerdictEmpty:
		return "empty"
	case VerdictBenign:
		return "benign"
	case VerdictFatal:
		return "fatal"
	default:
		return "unknown"
	}
}
