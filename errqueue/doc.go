// File: errqueue/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package errqueue drains and classifies a socket's error queue after a
// scheduled send.
//
// The stack releases a timed frame asynchronously, so a drop is only visible
// later as a sock_extended_err notification. After every send the Monitor
// polls the socket with a zero timeout and, if an error is pending, receives
// exactly one notification. Missed deadlines and invalid parameters are
// expected in a tight schedule and classified as benign; everything else is
// fatal.
package errqueue
