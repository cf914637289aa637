package channels

import (
	"context"
	"sort"
	"sync"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

// InMemory keeps channels in a map.
type InMemory struct {
	settings settings

	mu       sync.RWMutex
	channels map[models.Address]models.Channel
}

func NewInMemory(opts ...Option) *InMemory {
	return &InMemory{
		settings: newSettings(opts),
		channels: make(map[models.Address]models.Channel),
	}
}

// CreateChannelFor creates a channel for r, replacing any existing one, and
// returns the new id.
func (a *InMemory) CreateChannelFor(_ context.Context, r models.Recipient) (string, error) {
	ch := a.settings.channelFor(r)
	a.mu.Lock()
	defer a.mu.Unlock()
	a.channels[r.Address] = ch
	return ch.ID, nil
}

// DeleteChannelFor removes the channel. Deleting a missing channel succeeds.
func (a *InMemory) DeleteChannelFor(_ context.Context, addr models.Address) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.channels, addr)
	return nil
}

func (a *InMemory) UpdateRingtone(_ context.Context, addr models.Address, ringtone models.Ringtone) error {
	return a.update(addr, func(ch *models.Channel) { ch.Ringtone = ringtone })
}

func (a *InMemory) UpdateVibrate(_ context.Context, addr models.Address, enabled bool) error {
	return a.update(addr, func(ch *models.Channel) { ch.Vibrate = enabled })
}

func (a *InMemory) Channel(_ context.Context, addr models.Address) (*models.Channel, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	ch, ok := a.channels[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &ch, nil
}

// Channels lists every channel ordered by recipient.
func (a *InMemory) Channels(_ context.Context) ([]models.Channel, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]models.Channel, 0, len(a.channels))
	for _, ch := range a.channels {
		out = append(out, ch)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Recipient < out[j].Recipient })
	return out, nil
}

// Edit changes a channel the way a user editing it outside this service
// would.
func (a *InMemory) Edit(addr models.Address, fn func(*models.Channel)) error {
	return a.update(addr, fn)
}

func (a *InMemory) update(addr models.Address, fn func(*models.Channel)) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	ch, ok := a.channels[addr]
	if !ok {
		return sentinel.ErrNotFound
	}
	fn(&ch)
	a.channels[addr] = ch
	return nil
}
