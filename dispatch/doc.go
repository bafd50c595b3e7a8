// File: dispatch/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package dispatch sequences one scheduled publish: advance the channel's
// cycle clock, send with the release instant attached, then drain one error
// queue notification. A Dispatcher belongs to exactly one channel and must be
// called sequentially; channels publishing in parallel each get their own.
package dispatch
