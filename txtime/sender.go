// File: txtime/sender.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral part of the timed sender.

package txtime

import (
	"fmt"
	"log/slog"

	"github.com/momentics/hioload-txtime/api"
)

// transmitFunc issues a single sendmsg for the destination.
type transmitFunc func(fd int, payload, oob []byte, dst api.Destination) (int, error)

// Sender implements api.Sender.
type Sender struct {
	attacher api.ReleaseTimeAttacher
	transmit transmitFunc
	log      *slog.Logger
	oob      []byte
}

// Option configures a Sender.
type Option func(*Sender)

// WithAttacher replaces the platform attacher.
func WithAttacher(a api.ReleaseTimeAttacher) Option {
	return func(s *Sender) { s.attacher = a }
}

// WithLogger sets the logger used for send failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sender) { s.log = l }
}

// NewSender returns a sender using the platform attacher and sendmsg.
func NewSender(opts ...Option) *Sender {
	s := &Sender{
		attacher: NewAttacher(),
		transmit: sysTransmit,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Send implements api.Sender. The control buffer is reused between calls, so
// a Sender belongs to one publish loop.
func (s *Sender) Send(ch api.Channel, payload []byte, release uint64, timed bool) (int, error) {
	var oob []byte
	if timed {
		s.oob = s.attacher.AttachReleaseTime(s.oob[:0], release)
		oob = s.oob
	}
	dst := ch.Destination()
	n, err := s.transmit(ch.FD(), payload, oob, dst)
	if err != nil {
		s.log.Error("sendmsg failed",
			"transport", dst.Transport.String(),
			"release", release,
			"error", err)
		return n, fmt.Errorf("txtime: sendmsg: %w", err)
	}
	return n, nil
}
