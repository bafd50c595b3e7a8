//go:build linux
// +build linux

// File: txtime/sender_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// sendmsg(2) with link-layer or internet destinations.

package txtime

import (
	"fmt"

	"github.com/momentics/hioload-txtime/api"
	"golang.org/x/sys/unix"
)

// Sockaddr converts a destination into the address sendmsg expects.
func Sockaddr(dst api.Destination) (unix.Sockaddr, error) {
	switch dst.Transport {
	case api.TransportEthernet:
		proto := dst.Protocol
		if proto == 0 {
			proto = api.EtherTypeUADP
		}
		return &unix.SockaddrLinklayer{
			Ifindex:  dst.IfIndex,
			Protocol: Htons(proto),
		}, nil
	case api.TransportUDPMulticast:
		if !dst.Addr.IsValid() {
			return nil, fmt.Errorf("txtime: udp destination not resolved: %w", api.ErrInvalidArgument)
		}
		addr := dst.Addr.Addr().Unmap()
		if addr.Is4() {
			return &unix.SockaddrInet4{Port: int(dst.Addr.Port()), Addr: addr.As4()}, nil
		}
		return &unix.SockaddrInet6{Port: int(dst.Addr.Port()), Addr: addr.As16()}, nil
	}
	return nil, fmt.Errorf("txtime: %s destination: %w", dst.Transport, api.ErrInvalidArgument)
}

func sysTransmit(fd int, payload, oob []byte, dst api.Destination) (int, error) {
	to, err := Sockaddr(dst)
	if err != nil {
		return 0, err
	}
	return unix.SendmsgN(fd, payload, oob, to, 0)
}
