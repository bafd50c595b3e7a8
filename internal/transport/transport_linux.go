//go:build linux
// +build linux

// internal/transport/transport_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux channel sockets: AF_PACKET raw frames and UDP multicast.

package transport

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/cycle"
	"github.com/momentics/hioload-txtime/txtime"
	"golang.org/x/sys/unix"
)

func openPlatform(opts Options) (int, api.Destination, error) {
	var (
		fd  int
		dst api.Destination
		err error
	)
	switch opts.Transport {
	case api.TransportEthernet:
		fd, dst, err = openEthernet(opts)
	case api.TransportUDPMulticast:
		fd, dst, err = openUDP(opts)
	default:
		return -1, dst, fmt.Errorf("transport: %s: %w", opts.Transport, api.ErrInvalidArgument)
	}
	if err != nil {
		return -1, dst, err
	}
	if err := configure(fd, opts); err != nil {
		_ = unix.Close(fd)
		return -1, dst, err
	}
	return fd, dst, nil
}

// openEthernet creates a raw socket bound to the interface and EtherType.
func openEthernet(opts Options) (int, api.Destination, error) {
	ifi, err := net.InterfaceByName(opts.Interface)
	if err != nil {
		return -1, api.Destination{}, fmt.Errorf("transport: interface %q: %w", opts.Interface, err)
	}
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW|unix.SOCK_CLOEXEC, int(txtime.Htons(opts.EtherType)))
	if err != nil {
		return -1, api.Destination{}, fmt.Errorf("transport: socket AF_PACKET: %w", err)
	}
	sa := &unix.SockaddrLinklayer{Protocol: txtime.Htons(opts.EtherType), Ifindex: ifi.Index}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return -1, api.Destination{}, fmt.Errorf("transport: bind %s: %w", opts.Interface, err)
	}
	return fd, api.Destination{
		Transport: api.TransportEthernet,
		IfIndex:   ifi.Index,
		Protocol:  opts.EtherType,
	}, nil
}

// openUDP creates a datagram socket for the multicast group.
func openUDP(opts Options) (int, api.Destination, error) {
	ap, err := netip.ParseAddrPort(opts.Destination)
	if err != nil {
		return -1, api.Destination{}, fmt.Errorf("transport: destination %q: %w", opts.Destination, err)
	}
	addr := ap.Addr().Unmap()
	ap = netip.AddrPortFrom(addr, ap.Port())

	family := unix.AF_INET6
	if addr.Is4() {
		family = unix.AF_INET
	}
	fd, err := unix.Socket(family, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, unix.IPPROTO_UDP)
	if err != nil {
		return -1, api.Destination{}, fmt.Errorf("transport: socket UDP: %w", err)
	}
	if opts.Interface != "" {
		if err := multicastInterface(fd, addr.Is4(), opts.Interface); err != nil {
			_ = unix.Close(fd)
			return -1, api.Destination{}, err
		}
	}
	return fd, api.Destination{Transport: api.TransportUDPMulticast, Addr: ap}, nil
}

func multicastInterface(fd int, v4 bool, name string) error {
	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return fmt.Errorf("transport: interface %q: %w", name, err)
	}
	if v4 {
		err = unix.SetsockoptIPMreqn(fd, unix.IPPROTO_IP, unix.IP_MULTICAST_IF, &unix.IPMreqn{Ifindex: int32(ifi.Index)})
	} else {
		err = unix.SetsockoptInt(fd, unix.IPPROTO_IPV6, unix.IPV6_MULTICAST_IF, ifi.Index)
	}
	if err != nil {
		return fmt.Errorf("transport: multicast interface %s: %w", name, err)
	}
	return nil
}

// configure applies the options shared by both transports.
func configure(fd int, opts Options) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("transport: nonblock: %w", err)
	}
	if opts.Priority > 0 {
		if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_PRIORITY, opts.Priority); err != nil {
			return fmt.Errorf("transport: SO_PRIORITY %d: %w", opts.Priority, err)
		}
	}
	if opts.TxTime {
		return txtime.EnableSocket(fd, txtime.SocketOptions{
			ClockID:      int32(cycle.ClockID),
			DeadlineMode: opts.DeadlineMode,
			ReportErrors: true,
		})
	}
	return nil
}

func closeFD(fd int) error {
	return unix.Close(fd)
}
