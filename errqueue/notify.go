// File: errqueue/notify.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package errqueue

// JoinTimestamp concatenates the high (ee_data) and low (ee_info) halves of
// the release instant carried by a txtime notification.
func JoinTimestamp(hi, lo uint32) uint64 {
	return uint64(hi)<<32 | uint64(lo)
}
