// File: cycle/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Cycle-time bookkeeping for scheduled publishing.
// A Clock derives the release instant of every outgoing frame on one channel
// from a synchronized time source. The first instant is anchored one period
// plus a guard band into the current second; every later instant advances by
// exactly one period. Each channel owns its own Clock.

package cycle
