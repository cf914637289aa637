package entity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"prefsync/internal/recipient/models"
	"prefsync/pkg/platform/sentinel"
)

// Loader reads the persisted record a new entity starts from.
type Loader interface {
	Get(ctx context.Context, addr models.Address) (*models.Recipient, error)
}

// Registry lazily creates one Entity per address and caches it for the
// process lifetime (or until Evict).
type Registry struct {
	loader       Loader
	dispatcher   *Dispatcher
	localAddress models.Address

	mu       sync.RWMutex
	entities map[models.Address]*Entity
	loads    singleflight.Group
}

// NewRegistry builds a registry whose entities deliver on dispatcher.
func NewRegistry(loader Loader, dispatcher *Dispatcher, localAddress models.Address) *Registry {
	return &Registry{
		loader:       loader,
		dispatcher:   dispatcher,
		localAddress: localAddress,
		entities:     make(map[models.Address]*Entity),
	}
}

// Dispatcher returns the owning loop shared by this registry's entities.
func (r *Registry) Dispatcher() *Dispatcher {
	return r.dispatcher
}

// LocalAddress returns the address of this device's own recipient.
func (r *Registry) LocalAddress() models.Address {
	return r.localAddress
}

// Get returns the cached entity for addr, loading it on first reference.
// A missing store record yields a recipient with default settings.
func (r *Registry) Get(ctx context.Context, addr models.Address) (*Entity, error) {
	if e, ok := r.Lookup(addr); ok {
		return e, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := r.loads.Do(addr.String(), func() (any, error) {
		if e, ok := r.Lookup(addr); ok {
			return e, nil
		}
		rec, err := r.load(loadCtx, addr)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if e, ok := r.entities[addr]; ok {
			return e, nil
		}
		e := newEntity(rec, r.dispatcher)
		r.entities[addr] = e
		return e, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Entity), nil
}

// Lookup returns an entity only if it is already cached.
func (r *Registry) Lookup(addr models.Address) (*Entity, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entities[addr]
	return e, ok
}

// Evict drops addr from the cache. Listeners on the evicted entity keep
// their registration but receive no further mutations.
func (r *Registry) Evict(addr models.Address) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entities, addr)
}

// Len reports the number of cached entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

func (r *Registry) load(ctx context.Context, addr models.Address) (models.Recipient, error) {
	stored, err := r.loader.Get(ctx, addr)
	var rec models.Recipient
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		rec = models.NewRecipient(addr)
	case err != nil:
		return models.Recipient{}, fmt.Errorf("load recipient %s: %w", addr, err)
	default:
		rec = *stored
	}

	rec.Address = addr
	rec.IsLocal = addr == r.localAddress
	rec.CustomNotifications = rec.HasChannel()
	if rec.HasChannel() {
		rec.ChannelState = models.Active
	} else {
		rec.ChannelState = models.NoChannel
	}
	return rec, nil
}
