//go:build linux
// +build linux

// File: errqueue/poller_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Zero-timeout poll(2) followed by recvmsg(2) with MSG_ERRQUEUE.

package errqueue

import (
	"errors"
	"fmt"

	"github.com/momentics/hioload-txtime/api"
	"golang.org/x/sys/unix"
)

// errPayload bounds the copy of the original frame returned with a notification.
const errPayload = 256

// Poller implements api.CompletionPoller on a socket's error queue.
// Buffers are reused between calls; a Poller serves one publish loop.
type Poller struct {
	fds  [1]unix.PollFd
	data []byte
	oob  []byte
}

// NewPoller allocates the receive buffers.
func NewPoller() api.CompletionPoller {
	return &Poller{
		data: make([]byte, errPayload),
		// Room for the extended error plus the offending address that
		// IP_RECVERR appends after it.
		oob: make([]byte, unix.CmsgSpace(sizeofExtendedErr+unix.SizeofSockaddrInet6)),
	}
}

// PollCompletion implements api.CompletionPoller.
func (p *Poller) PollCompletion(fd int) (*api.CompletionRecord, error) {
	// POLLERR is always reported, no events need to be requested.
	p.fds[0] = unix.PollFd{Fd: int32(fd)}
	n, err := unix.Poll(p.fds[:], 0)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return nil, nil
		}
		return nil, fmt.Errorf("errqueue: poll: %w: %w", api.ErrQueueReceive, err)
	}
	if n != 1 || p.fds[0].Revents&unix.POLLERR == 0 {
		return nil, nil
	}

	_, oobn, _, _, err := unix.Recvmsg(fd, p.data, p.oob, unix.MSG_ERRQUEUE|unix.MSG_DONTWAIT)
	if err != nil {
		return nil, fmt.Errorf("errqueue: recvmsg: %w: %w", api.ErrQueueReceive, err)
	}
	rec, err := parseNotification(p.oob[:oobn])
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// parseNotification picks the extended error out of the control data.
// Control messages of other kinds are skipped. A txtime record wins over any
// other origin found in the same message.
func parseNotification(oob []byte) (api.CompletionRecord, error) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return api.CompletionRecord{}, fmt.Errorf("errqueue: %w: %w", api.ErrMalformedNotification, err)
	}
	var (
		first api.CompletionRecord
		found bool
	)
	for _, m := range msgs {
		if !carriesExtendedErr(m.Header) {
			continue
		}
		rec, ok := decodeExtendedErr(m.Data)
		if !ok {
			continue
		}
		if rec.Origin == api.OriginTxTime {
			return rec, nil
		}
		if !found {
			first, found = rec, true
		}
	}
	if !found {
		return api.CompletionRecord{}, fmt.Errorf("errqueue: %d control messages: %w", len(msgs), api.ErrMalformedNotification)
	}
	return first, nil
}
