package cycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-txtime/cycle"
)

func TestAdvance_AnchorsFirstInstant(t *testing.T) {
	clk := cycle.NewClock(cycle.DefaultConfig(), cycle.Fixed(1_700_000_000, 123_456_789))
	require.False(t, clk.Initialized())

	first := clk.Advance()
	assert.True(t, clk.Initialized())
	assert.Equal(t, uint64(1_700_000_000), first.Sec)
	assert.Equal(t, uint32(275_000), first.Nsec, "sampled nanoseconds are replaced by period+guard band")
	assert.Equal(t, first, clk.Next())
}

func TestAdvance_StepsByPeriod(t *testing.T) {
	cfg := cycle.Config{Period: 250 * time.Microsecond, GuardBand: 25 * time.Microsecond}
	clk := cycle.NewClock(cfg, cycle.Fixed(42, 999_999_999))

	prev := clk.Advance()
	for i := 0; i < 10_000; i++ {
		next := clk.Advance()
		require.Less(t, next.Nsec, uint32(time.Second))
		require.Equal(t, prev.UnixNano()+uint64(cfg.Period), next.UnixNano(), "step %d", i)
		prev = next
	}
	// 275µs + 10000*250µs = 2.500275s past the anchor second.
	assert.Equal(t, cycle.Instant{Sec: 44, Nsec: 500_275_000}, prev)
}

func TestAdvance_SamplesSourceOnce(t *testing.T) {
	calls := 0
	src := cycle.SourceFunc(func() cycle.Instant {
		calls++
		return cycle.Instant{Sec: uint64(calls) * 100}
	})
	clk := cycle.NewClock(cycle.DefaultConfig(), src)
	clk.Advance()
	clk.Advance()
	clk.Advance()
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(100), clk.Next().Sec)
}

func TestAdvance_PeriodLongerThanOneSecond(t *testing.T) {
	cfg := cycle.Config{Period: 2500 * time.Millisecond, GuardBand: 400 * time.Millisecond}
	clk := cycle.NewClock(cfg, cycle.Fixed(10, 0))

	// 2.9s anchor carries two seconds and leaves 900ms.
	assert.Equal(t, cycle.Instant{Sec: 12, Nsec: 900_000_000}, clk.Advance())
	assert.Equal(t, cycle.Instant{Sec: 15, Nsec: 400_000_000}, clk.Advance())
	assert.Equal(t, cycle.Instant{Sec: 17, Nsec: 900_000_000}, clk.Advance())
}

func TestAdvance_IndependentClocks(t *testing.T) {
	a := cycle.NewClock(cycle.Config{Period: time.Millisecond}, cycle.Fixed(1, 0))
	b := cycle.NewClock(cycle.Config{Period: 3 * time.Millisecond}, cycle.Fixed(1, 0))
	for i := 0; i < 5; i++ {
		a.Advance()
	}
	b.Advance()
	assert.Equal(t, uint32(5*time.Millisecond), a.Next().Nsec)
	assert.Equal(t, uint32(3*time.Millisecond), b.Next().Nsec)
}

func TestInstant_UnixNano(t *testing.T) {
	in := cycle.Instant{Sec: 3, Nsec: 7}
	assert.Equal(t, uint64(3_000_000_007), in.UnixNano())
	assert.Equal(t, "3.000000007", in.String())
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, cycle.DefaultConfig().Validate())
	assert.Error(t, cycle.Config{}.Validate())
	assert.Error(t, cycle.Config{Period: time.Millisecond, GuardBand: -1}.Validate())
}

func TestTAI_ReportsNormalizedInstant(t *testing.T) {
	now := cycle.TAI().Now()
	assert.NotZero(t, now.Sec)
	assert.Less(t, now.Nsec, uint32(time.Second))
}
