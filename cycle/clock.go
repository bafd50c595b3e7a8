// File: cycle/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-channel cycle clock producing phase-aligned release instants.

package cycle

import (
	"fmt"
	"time"
)

const nsPerSecond = uint64(time.Second)

// Default timing of a publish cycle.
const (
	DefaultPeriod    = 250 * time.Microsecond
	DefaultGuardBand = 25 * time.Microsecond
)

// Config is the immutable timing of one channel.
type Config struct {
	// Period between successive releases.
	Period time.Duration
	// GuardBand is added once, at anchoring, to place the first release past
	// the traffic-shaping window boundary.
	GuardBand time.Duration
}

// DefaultConfig returns a 250µs cycle with a 25µs guard band.
func DefaultConfig() Config {
	return Config{Period: DefaultPeriod, GuardBand: DefaultGuardBand}
}

// Validate checks that the period is positive and the guard band is not negative.
func (c Config) Validate() error {
	if c.Period <= 0 {
		return fmt.Errorf("cycle: period must be positive, got %s", c.Period)
	}
	if c.GuardBand < 0 {
		return fmt.Errorf("cycle: guard band must not be negative, got %s", c.GuardBand)
	}
	return nil
}

// Instant is a point on the txtime clock.
type Instant struct {
	Sec  uint64
	Nsec uint32
}

// UnixNano packs the instant into the 64-bit nanosecond count the kernel
// expects in an SCM_TXTIME record.
func (i Instant) UnixNano() uint64 {
	return i.Sec*nsPerSecond + uint64(i.Nsec)
}

// Time converts the instant for display. TAI instants are not shifted to UTC.
func (i Instant) Time() time.Time {
	return time.Unix(int64(i.Sec), int64(i.Nsec))
}

func (i Instant) String() string {
	return fmt.Sprintf("%d.%09d", i.Sec, i.Nsec)
}

// normalized builds sec + nsec nanoseconds with whole seconds carried out of nsec.
func normalized(sec uint64, nsec uint64) Instant {
	return Instant{
		Sec:  sec + nsec/nsPerSecond,
		Nsec: uint32(nsec % nsPerSecond),
	}
}

// TimeSource samples the synchronized clock the release instants refer to.
type TimeSource interface {
	Now() Instant
}

// Clock holds the next release instant of one channel.
// It is not safe for concurrent use; one caller advances it per frame.
type Clock struct {
	cfg         Config
	src         TimeSource
	next        Instant
	initialized bool
}

// NewClock creates a clock reading src on its first Advance.
func NewClock(cfg Config, src TimeSource) *Clock {
	return &Clock{cfg: cfg, src: src}
}

// Config returns the timing the clock was built with.
func (c *Clock) Config() Config { return c.cfg }

// Initialized reports whether the clock has been anchored.
func (c *Clock) Initialized() bool { return c.initialized }

// Next returns the last instant produced by Advance.
func (c *Clock) Next() Instant { return c.next }

// Advance moves to the next release instant and returns it.
//
// The first call keeps the sampled seconds and replaces the sub-second part
// with Period+GuardBand. Later calls add Period.
func (c *Clock) Advance() Instant {
	if !c.initialized {
		now := c.src.Now()
		c.next = normalized(now.Sec, uint64(c.cfg.Period)+uint64(c.cfg.GuardBand))
		c.initialized = true
		return c.next
	}
	c.next = normalized(c.next.Sec, uint64(c.next.Nsec)+uint64(c.cfg.Period))
	return c.next
}
