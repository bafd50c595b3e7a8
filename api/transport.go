// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Channel abstraction consumed by the scheduled-send core. The channel owns
// the socket and its addressing; the core only borrows them per call.

package api

import (
	"fmt"
	"net/netip"
)

// Transport selects how a channel addresses its frames.
type Transport int

const (
	TransportUnknown Transport = iota
	// TransportEthernet sends raw link-layer frames through an AF_PACKET socket.
	TransportEthernet
	// TransportUDPMulticast sends datagrams to a multicast group.
	TransportUDPMulticast
)

// EtherTypeUADP is the EtherType registered for OPC UA UADP frames.
const EtherTypeUADP uint16 = 0xB62C

func (t Transport) String() string {
	switch t {
	case TransportEthernet:
		return "ethernet"
	case TransportUDPMulticast:
		return "udp"
	default:
		return "unknown"
	}
}

// ParseTransport accepts the names produced by Transport.String.
func ParseTransport(s string) (Transport, error) {
	switch s {
	case "ethernet", "eth":
		return TransportEthernet, nil
	case "udp", "udp-multicast":
		return TransportUDPMulticast, nil
	}
	return TransportUnknown, fmt.Errorf("transport %q: %w", s, ErrInvalidArgument)
}

// Destination carries the pre-resolved addressing data of a channel.
type Destination struct {
	Transport Transport
	// IfIndex and Protocol are used by TransportEthernet. Protocol is in host order.
	IfIndex  int
	Protocol uint16
	// Addr is used by TransportUDPMulticast.
	Addr netip.AddrPort
}

// Channel is the external collaborator owning the socket.
type Channel interface {
	// FD returns the socket descriptor.
	FD() int
	// Destination returns the addressing data for outgoing frames.
	Destination() Destination
}
