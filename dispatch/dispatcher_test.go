package dispatch_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-txtime/api"
	"github.com/momentics/hioload-txtime/control"
	"github.com/momentics/hioload-txtime/cycle"
	"github.com/momentics/hioload-txtime/dispatch"
	"github.com/momentics/hioload-txtime/errqueue"
	"github.com/momentics/hioload-txtime/fake"
)

type harness struct {
	sender *fake.Sender
	poller *fake.Poller
	clock  *fake.TimeSource
	d      *dispatch.Dispatcher
}

func newHarness(ch api.Channel, cfg dispatch.Config) *harness {
	h := &harness{
		sender: fake.NewSender(),
		poller: fake.NewPoller(),
		clock:  fake.NewTimeSource(1000, 500_000_000),
	}
	h.d = dispatch.New(ch, cfg,
		dispatch.WithSender(h.sender),
		dispatch.WithDrainer(errqueue.NewMonitor(errqueue.WithPoller(h.poller))),
		dispatch.WithTimeSource(h.clock),
	)
	return h
}

func TestPublishEthernet_SchedulesReleases(t *testing.T) {
	h := newHarness(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig())

	for i := 0; i < 3; i++ {
		require.NoError(t, h.d.PublishEthernet([]byte("uadp")))
	}
	sent := h.sender.Sent()
	require.Len(t, sent, 3)
	assert.Equal(t, uint64(1000*time.Second+275*time.Microsecond), sent[0].Release)
	assert.Equal(t, sent[0].Release+uint64(250*time.Microsecond), sent[1].Release)
	assert.Equal(t, sent[1].Release+uint64(250*time.Microsecond), sent[2].Release)
	for _, f := range sent {
		assert.True(t, f.Timed)
		assert.Equal(t, 5, f.FD)
	}
	assert.Equal(t, 1, h.clock.Reads())
	assert.Equal(t, 3, h.poller.Calls())

	m := h.d.Metrics()
	assert.Equal(t, uint64(3), m.Counter(control.MetricPublished))
	assert.Equal(t, uint64(3), m.Counter(control.MetricQueueEmpty))
	assert.Equal(t, sent[2].Release, m.GetSnapshot()[control.MetricLastRelease])
}

func TestPublishUDP_Succeeds(t *testing.T) {
	h := newHarness(fake.NewUDPChannel(6, "239.0.0.1:4840"), dispatch.DefaultConfig())
	require.NoError(t, h.d.PublishUDP([]byte("uadp")))
	require.NoError(t, h.d.Publish([]byte("uadp")))
	assert.Len(t, h.sender.Sent(), 2)
}

func TestPublish_TransportMismatch(t *testing.T) {
	h := newHarness(fake.NewUDPChannel(6, "239.0.0.1:4840"), dispatch.DefaultConfig())
	err := h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrTransportMismatch)
	assert.Empty(t, h.sender.Sent())
	assert.False(t, h.d.Clock().Initialized())
}

func TestPublish_ShortSendSkipsErrorQueue(t *testing.T) {
	h := newHarness(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig())
	h.sender.SetShortCount(2)
	h.poller.Push(fake.MissedDeadline(1))

	err := h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrShortSend)
	assert.Equal(t, 0, h.poller.Calls())
	assert.Equal(t, uint64(1), h.d.Metrics().Counter(control.MetricShortSends))
}

func TestPublish_SendErrorIsShortSend(t *testing.T) {
	h := newHarness(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig())
	cause := errors.New("ENOBUFS")
	h.sender.SetSendError(cause)

	err := h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrShortSend)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, h.poller.Calls())
}

func TestPublish_BenignDropIsSuccess(t *testing.T) {
	h := newHarness(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig())
	h.poller.Push(fake.MissedDeadline(errqueue.JoinTimestamp(1, 0)))

	require.NoError(t, h.d.PublishEthernet([]byte("uadp")))
	assert.Equal(t, uint64(1), h.d.Metrics().Counter(control.MetricBenignDrops))
}

func TestPublish_StrictDropsReportsFailure(t *testing.T) {
	cfg := dispatch.DefaultConfig()
	cfg.StrictDrops = true
	h := newHarness(fake.NewEthernetChannel(5, 2), cfg)
	h.poller.Push(fake.InvalidParam(7))

	err := h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrBenignDrop)

	h.d.SetStrictDrops(false)
	h.poller.Push(fake.InvalidParam(8))
	assert.NoError(t, h.d.PublishEthernet([]byte("uadp")))
}

func TestPublish_FatalCompletion(t *testing.T) {
	h := newHarness(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig())
	h.poller.Push(api.CompletionRecord{Origin: api.OriginTxTime, Code: 42})

	err := h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrUnclassifiedCompletion)
	assert.Equal(t, uint64(1), h.d.Metrics().Counter(control.MetricFatalCompletions))

	h.poller.PushError(api.ErrQueueReceive)
	err = h.d.PublishEthernet([]byte("uadp"))
	assert.ErrorIs(t, err, api.ErrQueueReceive)
}

func TestPublish_TxTimeDisabled(t *testing.T) {
	cfg := dispatch.DefaultConfig()
	cfg.TxTimeEnabled = false
	h := newHarness(fake.NewEthernetChannel(5, 2), cfg)
	h.poller.Push(fake.MissedDeadline(1))

	require.NoError(t, h.d.PublishEthernet([]byte("uadp")))
	require.NoError(t, h.d.PublishEthernet([]byte("uadp")))

	sent := h.sender.Sent()
	require.Len(t, sent, 2)
	for _, f := range sent {
		assert.False(t, f.Timed)
		assert.Zero(t, f.Release)
	}
	assert.Equal(t, 0, h.poller.Calls())
	assert.False(t, h.d.Clock().Initialized())
}

func TestPublish_ChannelsKeepIndependentPhase(t *testing.T) {
	fast := dispatch.Config{Cycle: cycle.Config{Period: time.Millisecond}, TxTimeEnabled: true}
	slow := dispatch.Config{Cycle: cycle.Config{Period: 10 * time.Millisecond}, TxTimeEnabled: true}
	a := newHarness(fake.NewEthernetChannel(5, 2), fast)
	b := newHarness(fake.NewUDPChannel(6, "239.0.0.1:4840"), slow)

	for i := 0; i < 4; i++ {
		require.NoError(t, a.d.Publish([]byte("a")))
	}
	require.NoError(t, b.d.Publish([]byte("b")))
	require.NoError(t, a.d.Publish([]byte("a")))

	assert.Equal(t, uint32(5*time.Millisecond), a.d.Clock().Next().Nsec)
	assert.Equal(t, uint32(10*time.Millisecond), b.d.Clock().Next().Nsec)
}

type fatalWithoutError struct{}

func (fatalWithoutError) DrainOne(int) (api.Verdict, error) { return api.VerdictFatal, nil }

func TestPublish_FatalWithoutCause(t *testing.T) {
	d := dispatch.New(fake.NewEthernetChannel(5, 2), dispatch.DefaultConfig(),
		dispatch.WithSender(fake.NewSender()),
		dispatch.WithDrainer(fatalWithoutError{}),
		dispatch.WithTimeSource(cycle.Fixed(1, 0)),
	)
	assert.ErrorIs(t, d.Publish([]byte("x")), api.ErrUnclassifiedCompletion)
}
