package errqueue_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/errqueue"
	"github.com/momentics/hioload-txtime/fake"
)

func newMonitor(p *fake.Poller, opts ...errqueue.Option) (*errqueue.Monitor, *bytes.Buffer) {
	var logs bytes.Buffer
	l := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	opts = append([]errqueue.Option{errqueue.WithPoller(p), errqueue.WithLogger(l)}, opts...)
	return errqueue.NewMonitor(opts...), &logs
}

func TestDrainOne_Empty(t *testing.T) {
	p := fake.NewPoller()
	m, logs := newMonitor(p)

	v, err := m.DrainOne(3)
	require.NoError(t, err)
	assert.Equal(t, api.VerdictEmpty, v)
	assert.Empty(t, logs.String())
	assert.Empty(t, m.Recent())
}

func TestDrainOne_MissedDeadlineIsBenign(t *testing.T) {
	p := fake.NewPoller()
	p.Push(fake.MissedDeadline(errqueue.JoinTimestamp(1, 0)))
	m, logs := newMonitor(p)

	v, err := m.DrainOne(3)
	require.NoError(t, err)
	assert.Equal(t, api.VerdictBenign, v)
	assert.Contains(t, logs.String(), "missed deadline")
	assert.Contains(t, logs.String(), "timestamp=4294967296")

	recent := m.Recent()
	require.Len(t, recent, 1)
	assert.Equal(t, uint64(4294967296), recent[0].Timestamp)
}

func TestDrainOne_InvalidParamIsBenign(t *testing.T) {
	p := fake.NewPoller()
	p.Push(fake.InvalidParam(99))
	m, logs := newMonitor(p)

	v, err := m.DrainOne(3)
	require.NoError(t, err)
	assert.Equal(t, api.VerdictBenign, v)
	assert.Contains(t, logs.String(), "invalid params")
}

func TestDrainOne_UnknownCodeIsFatal(t *testing.T) {
	p := fake.NewPoller()
	p.Push(api.CompletionRecord{Origin: api.OriginTxTime, Code: 9, Timestamp: 5})
	m, _ := newMonitor(p)

	v, err := m.DrainOne(3)
	assert.Equal(t, api.VerdictFatal, v)
	assert.ErrorIs(t, err, api.ErrUnclassifiedCompletion)
}

func TestDrainOne_OtherOriginIsFatal(t *testing.T) {
	p := fake.NewPoller()
	p.Push(api.CompletionRecord{Origin: api.OriginLocal, Code: api.CodeTxTimeMissed, Errno: 90})
	m, logs := newMonitor(p)

	v, err := m.DrainOne(3)
	assert.Equal(t, api.VerdictFatal, v)
	assert.ErrorIs(t, err, api.ErrUnclassifiedCompletion)
	assert.Contains(t, logs.String(), "origin=local")
}

func TestDrainOne_ReceiveFailureIsFatal(t *testing.T) {
	p := fake.NewPoller()
	cause := errors.New("boom")
	p.PushError(errors.Join(api.ErrQueueReceive, cause))
	m, _ := newMonitor(p)

	v, err := m.DrainOne(3)
	assert.Equal(t, api.VerdictFatal, v)
	assert.ErrorIs(t, err, api.ErrQueueReceive)
	assert.ErrorIs(t, err, cause)
}

func TestDrainOne_DrainsOnePerCall(t *testing.T) {
	p := fake.NewPoller()
	p.Push(fake.MissedDeadline(1))
	p.Push(fake.MissedDeadline(2))
	m, _ := newMonitor(p)

	v, _ := m.DrainOne(3)
	assert.Equal(t, api.VerdictBenign, v)
	assert.Len(t, m.Recent(), 1)
	v, _ = m.DrainOne(3)
	assert.Equal(t, api.VerdictBenign, v)
	v, _ = m.DrainOne(3)
	assert.Equal(t, api.VerdictEmpty, v)
	assert.Equal(t, 3, p.Calls())
}

func TestRecent_Bounded(t *testing.T) {
	p := fake.NewPoller()
	for i := uint64(1); i <= 5; i++ {
		p.Push(fake.MissedDeadline(i))
	}
	m, _ := newMonitor(p, errqueue.WithHistory(3))
	for i := 0; i < 5; i++ {
		_, _ = m.DrainOne(3)
	}
	recent := m.Recent()
	require.Len(t, recent, 3)
	assert.Equal(t, uint64(3), recent[0].Timestamp)
	assert.Equal(t, uint64(5), recent[2].Timestamp)
}

func TestRecent_Disabled(t *testing.T) {
	p := fake.NewPoller()
	p.Push(fake.MissedDeadline(1))
	m, _ := newMonitor(p, errqueue.WithHistory(0))
	_, _ = m.DrainOne(3)
	assert.Empty(t, m.Recent())
}
