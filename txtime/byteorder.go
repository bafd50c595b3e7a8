// File: txtime/byteorder.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package txtime

import "encoding/binary"

// Htons converts a host order 16-bit value to network order, as sockaddr_ll
// and AF_PACKET socket protocols expect. It is the identity on big-endian hosts.
func Htons(v uint16) uint16 {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return binary.NativeEndian.Uint16(b[:])
}
