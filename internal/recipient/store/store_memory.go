package store

import (
	"context"
	"sync"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

type memoryRecord struct {
	recipient models.Recipient
	muteSet   bool
}

// InMemory is a PreferenceStore backed by a map. Setters create the record
// with default settings when it does not exist yet.
type InMemory struct {
	mu      sync.RWMutex
	records map[models.Address]*memoryRecord
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[models.Address]*memoryRecord)}
}

func (s *InMemory) Get(_ context.Context, addr models.Address) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	r := rec.recipient
	return &r, nil
}

// Save replaces the whole record. Transient entity state is not persisted.
func (s *InMemory) Save(_ context.Context, r models.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.IsLocal = false
	r.CustomNotifications = false
	r.ChannelState = models.NoChannel
	s.records[r.Address] = &memoryRecord{recipient: r, muteSet: r.MuteUntil != 0}
	return nil
}

func (s *InMemory) SetMuted(_ context.Context, addr models.Address, until int64) error {
	s.update(addr, func(rec *memoryRecord) {
		rec.recipient.MuteUntil = until
		rec.muteSet = true
	})
	return nil
}

func (s *InMemory) SetMessageRingtone(_ context.Context, addr models.Address, ringtone models.Ringtone) error {
	s.update(addr, func(rec *memoryRecord) { rec.recipient.MessageRingtone = ringtone })
	return nil
}

func (s *InMemory) SetMessageVibrate(_ context.Context, addr models.Address, vibrate models.VibrateState) error {
	s.update(addr, func(rec *memoryRecord) { rec.recipient.MessageVibrate = vibrate })
	return nil
}

func (s *InMemory) SetColor(_ context.Context, addr models.Address, color models.MaterialColor) error {
	s.update(addr, func(rec *memoryRecord) { rec.recipient.Color = color })
	return nil
}

func (s *InMemory) SetNotificationChannel(_ context.Context, addr models.Address, channelID string) error {
	s.update(addr, func(rec *memoryRecord) { rec.recipient.NotificationChannel = channelID })
	return nil
}

func (s *InMemory) ListNotificationChannels(_ context.Context) (map[models.Address]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[models.Address]string)
	for addr, rec := range s.records {
		if rec.recipient.NotificationChannel != "" {
			out[addr] = rec.recipient.NotificationChannel
		}
	}
	return out, nil
}

// MuteSet reports whether a mute value was ever written for addr, telling an
// explicit unmute (0) apart from a value that was never set.
func (s *InMemory) MuteSet(addr models.Address) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[addr]
	return ok && rec.muteSet
}

// Clear removes every record.
func (s *InMemory) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[models.Address]*memoryRecord)
}

func (s *InMemory) update(addr models.Address, fn func(*memoryRecord)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[addr]
	if !ok {
		rec = &memoryRecord{recipient: models.NewRecipient(addr)}
		s.records[addr] = rec
	}
	fn(rec)
}
