package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"prefsync/internal/recipient/channels"
	"prefsync/internal/recipient/entity"
	"prefsync/internal/recipient/lane"
	"prefsync/internal/recipient/metrics"
	"prefsync/internal/recipient/models"
	"prefsync/internal/recipient/ports"
	"prefsync/internal/recipient/ports/mocks"
	"prefsync/internal/recipient/store"
	dErrors "prefsync/pkg/domain-errors"
	prefsynctest "prefsync/pkg/testutil"
)

const (
	alice       models.Address = "+15550001"
	bob         models.Address = "+15550002"
	self        models.Address = "+15559999"
	defaultTone                = "content://settings/system/notification_sound"
	chimeTone                  = "content://media/internal/audio/chime.ogg"
)

var (
	testNow   = time.UnixMilli(1_700_000_000_000)
	fastRetry = lane.RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func newCoordinator(t *testing.T, st ports.PreferenceStore, ch ports.ChannelAdapter, opts ...Option) *Coordinator {
	t.Helper()
	d := entity.NewDispatcher()
	t.Cleanup(d.Close)

	registry := entity.NewRegistry(st, d, self)
	serial := lane.NewSerial(4, lane.WithRetry(fastRetry))
	pooled := lane.NewPooled(4, lane.WithRetry(fastRetry))

	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithDefaults(Defaults{Ringtone: defaultTone, Vibrate: true}),
	}
	c := New(registry, st, ch, serial, pooled, append(base, opts...)...)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = c.Close(ctx)
	})
	return c
}

type harness struct {
	coord    *Coordinator
	store    *store.InMemory
	channels *channels.InMemory
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{store: store.NewInMemory(), channels: channels.NewInMemory()}
	h.coord = newCoordinator(t, h.store, h.channels, opts...)
	return h
}

func (h *harness) flush(t *testing.T) {
	t.Helper()
	require.NoError(t, h.coord.Flush(testCtx(t)))
}

func (h *harness) recipient(t *testing.T, addr models.Address) models.Recipient {
	t.Helper()
	r, err := h.coord.Recipient(testCtx(t), addr)
	require.NoError(t, err)
	return r
}

func (h *harness) stored(t *testing.T, addr models.Address) models.Recipient {
	t.Helper()
	r, err := h.store.Get(testCtx(t), addr)
	require.NoError(t, err)
	return *r
}

func (h *harness) channel(t *testing.T, addr models.Address) *models.Channel {
	t.Helper()
	ch, err := h.coord.adapterChannel(testCtx(t), addr)
	require.NoError(t, err)
	return ch
}

// requireAgreement checks that store, adapter and entity name the same channel.
func (h *harness) requireAgreement(t *testing.T, addr models.Address) {
	t.Helper()
	storedID, err := h.coord.storedChannel(testCtx(t), addr)
	require.NoError(t, err)
	ch := h.channel(t, addr)
	r := h.recipient(t, addr)

	if ch == nil {
		assert.Empty(t, storedID, "store names a channel the adapter lacks for %s", addr)
		assert.Equal(t, models.NoChannel, r.ChannelState)
		return
	}
	assert.Equal(t, ch.ID, storedID, "store and adapter disagree for %s", addr)
	assert.Equal(t, ch.ID, r.NotificationChannel)
	assert.Equal(t, models.Active, r.ChannelState)
}

func TestCoordinator_Validation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer(reg)
	h := newHarness(t, WithMetrics(m))
	ctx := testCtx(t)

	tests := []struct {
		name string
		call func() error
	}{
		{"empty address", func() error { return h.coord.Unmute(ctx, "") }},
		{"unknown color", func() error { return h.coord.SetColor(ctx, alice, "chartreuse") }},
		{"unknown vibrate id", func() error { return h.coord.SetMessageVibrate(ctx, alice, models.VibrateState(7)) }},
		{"negative vibrate id", func() error { return h.coord.SetMessageVibrate(ctx, alice, models.VibrateState(-1)) }},
		{"relative ringtone uri", func() error {
			uri := "tones/chime.ogg"
			return h.coord.SetMessageRingtone(ctx, alice, &uri)
		}},
		{"mute on the local recipient", func() error { return h.coord.MuteUntil(ctx, self, testNow.Add(time.Hour)) }},
		{"vibrate on the local recipient", func() error { return h.coord.SetMessageVibrate(ctx, self, models.VibrateEnabled) }},
		{"custom channel on the local recipient", func() error { return h.coord.SetCustomNotifications(ctx, self, true) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		})
	}

	assert.Equal(t, float64(len(tests)), testutil.ToFloat64(m.ValidationFailures))
	assert.Equal(t, models.NewRecipient(alice), h.recipient(t, alice), "rejected intents must not touch the entity")
	h.flush(t)
	_, err := h.store.Get(ctx, alice)
	assert.Error(t, err, "rejected intents must not be persisted")
}

func TestCoordinator_LocalRecipientAcceptsColor(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.coord.SetColor(testCtx(t), self, "teal"))
	h.flush(t)
	assert.Equal(t, models.MaterialColor("teal"), h.stored(t, self).Color)
}

func TestCoordinator_Ringtone(t *testing.T) {
	h := newHarness(t)
	ctx := testCtx(t)

	prefsynctest.Given(t, "a custom tone", func(t *testing.T) {
		uri := chimeTone
		require.NoError(t, h.coord.SetMessageRingtone(ctx, alice, &uri))
		assert.Equal(t, models.CustomRingtone(chimeTone), h.recipient(t, alice).MessageRingtone)
		h.flush(t)

		prefsynctest.Then(t, "store and a new channel carry it", func(t *testing.T) {
			assert.Equal(t, models.CustomRingtone(chimeTone), h.stored(t, alice).MessageRingtone)
			ch := h.channel(t, alice)
			require.NotNil(t, ch)
			assert.Equal(t, models.CustomRingtone(chimeTone), ch.Ringtone)
			h.requireAgreement(t, alice)
		})
	})

	prefsynctest.When(t, "the process default is chosen", func(t *testing.T) {
		uri := defaultTone
		require.NoError(t, h.coord.SetMessageRingtone(ctx, alice, &uri))
		assert.True(t, h.recipient(t, alice).MessageRingtone.IsUnset())
		h.flush(t)

		prefsynctest.Then(t, "it is stored as unset", func(t *testing.T) {
			assert.Equal(t, models.RingtoneUnset, h.stored(t, alice).MessageRingtone)
			assert.Equal(t, models.RingtoneUnset, h.channel(t, alice).Ringtone)
		})
	})

	prefsynctest.When(t, "silence is chosen", func(t *testing.T) {
		require.NoError(t, h.coord.SetMessageRingtone(ctx, alice, nil))
		h.flush(t)

		prefsynctest.Then(t, "it is stored as explicit silence", func(t *testing.T) {
			got := h.stored(t, alice).MessageRingtone
			assert.Equal(t, models.RingtoneSilent, got)
			assert.NotEqual(t, models.RingtoneUnset, got)
			assert.Equal(t, models.RingtoneSilent, h.channel(t, alice).Ringtone)
		})
	})

	prefsynctest.When(t, "an empty uri is chosen", func(t *testing.T) {
		empty := ""
		require.NoError(t, h.coord.SetMessageRingtone(ctx, bob, &empty))
		h.flush(t)
		assert.Equal(t, models.RingtoneSilent, h.stored(t, bob).MessageRingtone)
	})

	prefsynctest.When(t, "the tone is reset", func(t *testing.T) {
		require.NoError(t, h.coord.ResetMessageRingtone(ctx, alice))
		h.flush(t)
		assert.Equal(t, models.RingtoneUnset, h.stored(t, alice).MessageRingtone)
		h.requireAgreement(t, alice)
	})
}

func TestCoordinator_VibrateEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockPropagationQueue(ctrl)
	h := newHarness(t, WithPropagationQueue(queue))
	ctx := testCtx(t)
	require.NoError(t, h.store.Save(ctx, models.Recipient{
		Address: alice, Registered: models.Registered, Color: models.DefaultColor,
	}))

	require.NoError(t, h.coord.SetMessageVibrate(ctx, alice, models.VibrateEnabled))
	assert.Equal(t, models.VibrateEnabled, h.recipient(t, alice).MessageVibrate, "entity reflects the intent at once")

	h.flush(t)

	ch := h.channel(t, alice)
	require.NotNil(t, ch)
	assert.True(t, ch.Vibrate)
	assert.Equal(t, models.VibrateEnabled, h.stored(t, alice).MessageVibrate)
	assert.Equal(t, ch.ID, h.stored(t, alice).NotificationChannel)
	h.requireAgreement(t, alice)

	require.NoError(t, h.coord.SetMessageVibrate(ctx, alice, models.VibrateDisabled))
	h.flush(t)
	assert.False(t, h.channel(t, alice).Vibrate)
	assert.Equal(t, ch.ID, h.channel(t, alice).ID, "an existing channel is updated in place")
}

func TestCoordinator_ColorEndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockPropagationQueue(ctrl)
	h := newHarness(t,
		WithPropagationQueue(queue),
		WithJobIDGenerator(func() string { return "job-1" }),
	)
	ctx := testCtx(t)
	require.NoError(t, h.store.Save(ctx, models.Recipient{
		Address: alice, Registered: models.Registered, Color: models.DefaultColor,
	}))

	queue.EXPECT().
		Enqueue(gomock.Any(), ports.PropagationJob{
			ID:        "job-1",
			Recipient: alice,
			Kind:      models.PropagationColorChange,
			CreatedAt: testNow.UnixMilli(),
		}).
		Return(nil).
		Times(1)

	require.NoError(t, h.coord.SetColor(ctx, alice, "teal"))
	assert.Equal(t, models.MaterialColor("teal"), h.recipient(t, alice).Color)
	h.flush(t)
	assert.Equal(t, models.MaterialColor("teal"), h.stored(t, alice).Color)

	require.NoError(t, h.coord.SetColor(ctx, alice, "teal"))
	h.flush(t)
}

func TestCoordinator_ConcurrentSameColorCommitsOnce(t *testing.T) {
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	h := newHarness(t, WithMetrics(m))
	ctx := testCtx(t)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, h.coord.SetColor(ctx, alice, "teal"))
		}()
	}
	wg.Wait()
	h.flush(t)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.Mutations.WithLabelValues(string(models.FieldColor))))
	assert.Equal(t, models.MaterialColor("teal"), h.stored(t, alice).Color)
}

func TestCoordinator_ColorSkipsPropagation(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockPropagationQueue(ctrl)
	h := newHarness(t, WithPropagationQueue(queue))
	ctx := testCtx(t)
	require.NoError(t, h.store.Save(ctx, models.Recipient{
		Address: "group-1", IsGroup: true, Registered: models.Registered, Color: models.DefaultColor,
	}))

	require.NoError(t, h.coord.SetColor(ctx, "group-1", "red"))
	require.NoError(t, h.coord.SetColor(ctx, bob, "red"))
	h.flush(t)

	assert.Equal(t, models.MaterialColor("red"), h.stored(t, "group-1").Color)
	assert.Equal(t, models.MaterialColor("red"), h.stored(t, bob).Color)
}

func TestCoordinator_PropagationFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	queue := mocks.NewMockPropagationQueue(ctrl)
	h := newHarness(t, WithPropagationQueue(queue))
	ctx := testCtx(t)
	require.NoError(t, h.store.Save(ctx, models.Recipient{
		Address: alice, Registered: models.Registered, Color: models.DefaultColor,
	}))
	queue.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(assert.AnError).Times(1)

	require.NoError(t, h.coord.SetColor(ctx, alice, "blue"))
	h.flush(t)
	assert.Equal(t, models.MaterialColor("blue"), h.stored(t, alice).Color)
}

// gatedStore blocks the first SetMuted until released.
type gatedStore struct {
	*store.InMemory
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *gatedStore) SetMuted(ctx context.Context, addr models.Address, until int64) error {
	s.once.Do(func() {
		close(s.started)
		<-s.release
	})
	return s.InMemory.SetMuted(ctx, addr, until)
}

func TestCoordinator_MuteThenUnmute(t *testing.T) {
	st := &gatedStore{InMemory: store.NewInMemory(), started: make(chan struct{}), release: make(chan struct{})}
	coord := newCoordinator(t, st, channels.NewInMemory())
	ctx := testCtx(t)

	require.NoError(t, coord.MuteUntil(ctx, alice, testNow.Add(time.Hour)))
	r, err := coord.Recipient(ctx, alice)
	require.NoError(t, err)
	assert.True(t, r.IsMuted(testNow))

	<-st.started
	require.NoError(t, coord.Unmute(ctx, alice))
	r, err = coord.Recipient(ctx, alice)
	require.NoError(t, err)
	assert.False(t, r.IsMuted(testNow))

	close(st.release)
	require.NoError(t, coord.Flush(ctx))

	stored, err := st.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.MuteUntil)
	assert.True(t, st.MuteSet(alice), "unmute is stored, not left unset")
}

func TestCoordinator_MuteInThePastUnmutes(t *testing.T) {
	h := newHarness(t)
	ctx := testCtx(t)

	require.NoError(t, h.coord.MuteUntil(ctx, alice, testNow.Add(-time.Minute)))
	h.flush(t)
	assert.Equal(t, int64(0), h.stored(t, alice).MuteUntil)
	assert.True(t, h.store.MuteSet(alice))

	require.NoError(t, h.coord.MuteUntil(ctx, bob, testNow.Add(time.Hour)))
	h.flush(t)
	assert.Equal(t, testNow.Add(time.Hour).UnixMilli(), h.stored(t, bob).MuteUntil)
}

type removingListener struct {
	mu     sync.Mutex
	calls  int
	entity *entity.Entity
}

func (l *removingListener) OnRecipientModified(models.Recipient) {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()
	l.entity.RemoveListener(l)
}

func TestCoordinator_ListenerRemovedDuringCallback(t *testing.T) {
	h := newHarness(t)
	ctx := testCtx(t)

	e, err := h.coord.Entity(ctx, alice)
	require.NoError(t, err)
	l := &removingListener{entity: e}
	e.AddListener(l)

	require.NoError(t, h.coord.SetColor(ctx, alice, "red"))
	h.flush(t)
	require.NoError(t, h.coord.SetColor(ctx, alice, "blue"))
	require.NoError(t, h.coord.SetMessageVibrate(ctx, alice, models.VibrateDisabled))
	h.flush(t)

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Equal(t, 1, l.calls)
	assert.Zero(t, e.ListenerCount())
}

func TestCoordinator_RejectsAfterClose(t *testing.T) {
	h := newHarness(t)
	ctx := testCtx(t)
	require.NoError(t, h.coord.Close(ctx))

	err := h.coord.SetColor(ctx, alice, "red")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))

	_, err = h.coord.EnsureConsistency(ctx)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
