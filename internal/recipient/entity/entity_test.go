package entity

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prefsync/internal/recipient/models"
)

type recordingListener struct {
	mu       sync.Mutex
	seen     []models.Recipient
	onNotify func(models.Recipient)
}

func (l *recordingListener) OnRecipientModified(r models.Recipient) {
	l.mu.Lock()
	l.seen = append(l.seen, r)
	l.mu.Unlock()
	if l.onNotify != nil {
		l.onNotify(r)
	}
}

func (l *recordingListener) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

func (l *recordingListener) last() models.Recipient {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seen[len(l.seen)-1]
}

func newTestEntity(t *testing.T) (*Entity, *Dispatcher) {
	t.Helper()
	d := NewDispatcher()
	t.Cleanup(d.Close)
	return newEntity(models.NewRecipient("+15550001"), d), d
}

func flush(t *testing.T, d *Dispatcher) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, d.Flush(ctx))
}

func TestEntity_ApplyLocal(t *testing.T) {
	e, d := newTestEntity(t)
	l := &recordingListener{}
	e.AddListener(l)

	m := e.ApplyLocal(models.Mutation{Field: models.FieldColor, Value: models.MaterialColor("teal")})

	assert.Equal(t, uint64(1), m.Seq)
	assert.Equal(t, models.Address("+15550001"), m.Recipient)
	assert.Equal(t, models.MaterialColor("teal"), e.Get().Color, "snapshot reflects the change before delivery")

	flush(t, d)
	require.Equal(t, 1, l.count())
	assert.Equal(t, models.MaterialColor("teal"), l.last().Color)
}

func TestEntity_ApplyLocalIf(t *testing.T) {
	e, d := newTestEntity(t)
	l := &recordingListener{}
	e.AddListener(l)

	notTeal := func(r models.Recipient) bool { return r.Color != "teal" }
	m := models.Mutation{Field: models.FieldColor, Value: models.MaterialColor("teal")}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		committed int
	)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := e.ApplyLocalIf(m, notTeal); ok {
				mu.Lock()
				committed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	flush(t, d)

	assert.Equal(t, 1, committed)
	assert.Equal(t, uint64(1), e.Seq())
	assert.Equal(t, 1, l.count(), "listeners see one change")
}

func TestEntity_ListenerRegistrationIsIdempotent(t *testing.T) {
	e, d := newTestEntity(t)
	l := &recordingListener{}

	e.AddListener(l)
	e.AddListener(l)
	assert.Equal(t, 1, e.ListenerCount())

	e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: int64(10)})
	flush(t, d)
	assert.Equal(t, 1, l.count(), "double registration must not double notify")

	e.RemoveListener(&recordingListener{})
	assert.Equal(t, 1, e.ListenerCount(), "removing an unknown listener is a no-op")
	e.RemoveListener(l)
	e.RemoveListener(l)
	assert.Equal(t, 0, e.ListenerCount())
}

func TestEntity_ListenerRemovedDuringCallback(t *testing.T) {
	e, d := newTestEntity(t)

	var self *recordingListener
	self = &recordingListener{onNotify: func(models.Recipient) { e.RemoveListener(self) }}
	witness := &recordingListener{}
	e.AddListener(self)
	e.AddListener(witness)

	e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: int64(1)})
	flush(t, d)
	require.Equal(t, 1, self.count())

	for i := 2; i <= 5; i++ {
		e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: int64(i)})
	}
	flush(t, d)

	assert.Equal(t, 1, self.count(), "removed listener must never be invoked again")
	assert.Equal(t, 5, witness.count())
	assert.Equal(t, int64(5), witness.last().MuteUntil)
}

func TestEntity_RemovalBeforeDeliverySkipsListener(t *testing.T) {
	e, d := newTestEntity(t)

	gate := make(chan struct{})
	d.Post(func() { <-gate })

	l := &recordingListener{}
	e.AddListener(l)
	e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: int64(1)})
	e.RemoveListener(l)
	close(gate)

	flush(t, d)
	assert.Equal(t, 0, l.count())
}

func TestEntity_LateListenerDoesNotSeeEarlierMutation(t *testing.T) {
	e, d := newTestEntity(t)

	gate := make(chan struct{})
	d.Post(func() { <-gate })

	early := &recordingListener{}
	e.AddListener(early)
	e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: int64(1)})

	late := &recordingListener{}
	e.AddListener(late)
	close(gate)

	flush(t, d)
	assert.Equal(t, 1, early.count())
	assert.Equal(t, 0, late.count())
}

func TestEntity_ConcurrentCommitsDeliverInOrder(t *testing.T) {
	e, d := newTestEntity(t)
	l := &recordingListener{}
	e.AddListener(l)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v int64) {
			defer wg.Done()
			e.ApplyLocal(models.Mutation{Field: models.FieldMute, Value: v})
		}(int64(i))
	}
	wg.Wait()
	flush(t, d)

	require.Equal(t, 50, l.count())
	assert.Equal(t, e.Get(), l.last(), "last delivered snapshot equals the committed state")
	assert.Equal(t, uint64(50), e.Seq())
}

func TestDispatcher_RecoversFromListenerPanic(t *testing.T) {
	d := NewDispatcher()
	defer d.Close()

	ran := make(chan struct{})
	d.Post(func() { panic("boom") })
	d.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("dispatcher stopped after a panicking task")
	}
}

func TestDispatcher_RejectsAfterClose(t *testing.T) {
	d := NewDispatcher()
	d.Close()
	assert.False(t, d.Post(func() {}))
	assert.Error(t, d.Flush(context.Background()))
}
