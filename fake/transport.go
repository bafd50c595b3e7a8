// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for all core interfaces.

package fake

import (
	"net/netip"
	"sync"

	"github.com/momentics/hioload-txtime/api"
)

// Channel is a fake implementation of api.Channel.
type Channel struct {
	fd  int
	dst api.Destination
}

// NewEthernetChannel returns a raw-frame channel on ifindex.
func NewEthernetChannel(fd, ifindex int) *Channel {
	return &Channel{fd: fd, dst: api.Destination{
		Transport: api.TransportEthernet,
		IfIndex:   ifindex,
		Protocol:  api.EtherTypeUADP,
	}}
}

// NewUDPChannel returns a multicast channel sending to addr.
func NewUDPChannel(fd int, addr string) *Channel {
	return &Channel{fd: fd, dst: api.Destination{
		Transport: api.TransportUDPMulticast,
		Addr:      netip.MustParseAddrPort(addr),
	}}
}

// FD implements api.Channel.
func (c *Channel) FD() int { return c.fd }

// Destination implements api.Channel.
func (c *Channel) Destination() api.Destination { return c.dst }

// SentFrame is one call recorded by Sender.
type SentFrame struct {
	FD      int
	Payload []byte
	Release uint64
	Timed   bool
}

// Sender is a fake implementation of api.Sender.
type Sender struct {
	mu      sync.Mutex
	sent    []SentFrame
	short   int
	sendErr error
}

// NewSender creates a sender accepting every byte.
func NewSender() *Sender {
	return &Sender{short: -1}
}

// Send implements api.Sender.
func (s *Sender) Send(ch api.Channel, payload []byte, release uint64, timed bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.sent = append(s.sent, SentFrame{FD: ch.FD(), Payload: cp, Release: release, Timed: timed})

	if s.sendErr != nil {
		return -1, s.sendErr
	}
	if s.short >= 0 {
		return s.short, nil
	}
	return len(payload), nil
}

// SetShortCount makes Send report n accepted bytes. Negative restores full sends.
func (s *Sender) SetShortCount(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.short = n
}

// SetSendError configures the sender to fail.
func (s *Sender) SetSendError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErr = err
}

// Sent returns all frames passed to Send.
func (s *Sender) Sent() []SentFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentFrame, len(s.sent))
	copy(out, s.sent)
	return out
}
