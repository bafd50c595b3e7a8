//go:build !linux
// +build !linux

// File: errqueue/poller_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Without scheduled release there is nothing asynchronous to report.

package errqueue

import "github.com/momentics/hioload-txtime/api"

type emptyPoller struct{}

// NewPoller returns a poller that never finds a notification.
func NewPoller() api.CompletionPoller { return emptyPoller{} }

func (emptyPoller) PollCompletion(int) (*api.CompletionRecord, error) { return nil, nil }
