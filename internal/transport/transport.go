// Package transport
// Author: momentics <momentics@gmail.com>
//
// Platform-independent channel type and options.

package transport

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/momentics/hioload-txtime/api"
)

// Options describes the socket to open.
type Options struct {
	Transport api.Transport
	// Interface is required for Ethernet and optional for UDP, where it
	// selects the outgoing multicast interface.
	Interface string
	// Destination is the multicast group "addr:port" for UDP.
	Destination string
	// EtherType of raw frames, host order. Zero selects UADP.
	EtherType uint16
	Priority  int
	// TxTime enables SO_TXTIME with error reporting on CLOCK_TAI.
	TxTime       bool
	DeadlineMode bool
}

// Channel implements api.Channel over an owned socket.
type Channel struct {
	id    uuid.UUID
	fd    int
	dst   api.Destination
	iface string

	closeOnce sync.Once
	closeErr  error
}

// Open creates the socket described by opts.
func Open(opts Options) (*Channel, error) {
	if opts.Transport == api.TransportEthernet && opts.Interface == "" {
		return nil, fmt.Errorf("transport: ethernet channel needs an interface: %w", api.ErrInvalidArgument)
	}
	if opts.EtherType == 0 {
		opts.EtherType = api.EtherTypeUADP
	}
	fd, dst, err := openPlatform(opts)
	if err != nil {
		return nil, err
	}
	return &Channel{id: uuid.New(), fd: fd, dst: dst, iface: opts.Interface}, nil
}

// ID identifies the channel in logs.
func (c *Channel) ID() uuid.UUID { return c.id }

// FD implements api.Channel.
func (c *Channel) FD() int { return c.fd }

// Destination implements api.Channel.
func (c *Channel) Destination() api.Destination { return c.dst }

// Interface returns the configured interface name.
func (c *Channel) Interface() string { return c.iface }

// Close closes the socket. Repeated calls return the first result.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = closeFD(c.fd)
	})
	return c.closeErr
}
