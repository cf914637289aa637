package entity

import (
	"sync"

	"prefsync/internal/recipient/models"
)

// Listener observes a recipient. Implementations must be comparable (pointer
// receivers); registration is keyed on interface equality.
type Listener interface {
	OnRecipientModified(r models.Recipient)
}

// Entity is the in-memory, observable projection of one recipient. The
// coordinator is its only writer.
type Entity struct {
	dispatcher *Dispatcher

	mu        sync.Mutex
	snapshot  models.Recipient
	seq       uint64
	listeners []Listener
}

func newEntity(r models.Recipient, dispatcher *Dispatcher) *Entity {
	return &Entity{snapshot: r, dispatcher: dispatcher}
}

// Address returns the recipient's identity key.
func (e *Entity) Address() models.Address {
	return e.Get().Address
}

// Get returns the current snapshot.
func (e *Entity) Get() models.Recipient {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot
}

// AddListener registers l. Registering the same listener twice is a no-op.
func (e *Entity) AddListener(l Listener) {
	if l == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.indexOf(l) >= 0 {
		return
	}
	e.listeners = append(e.listeners, l)
}

// RemoveListener unregisters l. Unknown listeners are ignored.
func (e *Entity) RemoveListener(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.indexOf(l)
	if i < 0 {
		return
	}
	e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
}

// ListenerCount reports the number of registered listeners.
func (e *Entity) ListenerCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// ApplyLocal commits m to the snapshot and schedules delivery of the new
// snapshot on the dispatcher to every listener registered at commit time.
// A listener removed before its turn in that delivery is skipped. The
// committed mutation, with its sequence number, is returned.
func (e *Entity) ApplyLocal(m models.Mutation) models.Mutation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(m)
}

// ApplyLocalIf commits m only when cond holds for the current snapshot. The
// check and the commit happen under one lock. It reports whether m was
// committed.
func (e *Entity) ApplyLocalIf(m models.Mutation, cond func(models.Recipient) bool) (models.Mutation, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !cond(e.snapshot) {
		return m, false
	}
	return e.applyLocked(m), true
}

func (e *Entity) applyLocked(m models.Mutation) models.Mutation {
	e.seq++
	m.Seq = e.seq
	m.Recipient = e.snapshot.Address
	e.snapshot = m.Apply(e.snapshot)

	snap := e.snapshot
	targets := append([]Listener(nil), e.listeners...)
	if len(targets) > 0 {
		// Posting under the lock keeps delivery order equal to commit order.
		e.dispatcher.Post(func() {
			for _, l := range targets {
				if e.registered(l) {
					l.OnRecipientModified(snap)
				}
			}
		})
	}
	return m
}

// Seq returns the sequence number of the last committed mutation.
func (e *Entity) Seq() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.seq
}

func (e *Entity) registered(l Listener) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.indexOf(l) >= 0
}

func (e *Entity) indexOf(l Listener) int {
	for i, existing := range e.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}
