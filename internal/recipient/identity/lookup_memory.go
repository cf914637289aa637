// Package identity reads remote identity records. Absence is a normal
// result, reported as a nil record with a nil error.
package identity

import (
	"context"
	"sync"

	"prefsync/internal/recipient/models"
)

type MemoryLookup struct {
	mu      sync.RWMutex
	records map[models.Address]models.IdentityRecord
}

func NewMemoryLookup() *MemoryLookup {
	return &MemoryLookup{records: make(map[models.Address]models.IdentityRecord)}
}

// Put stores or replaces rec.
func (l *MemoryLookup) Put(rec models.IdentityRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec.IdentityKey = append([]byte(nil), rec.IdentityKey...)
	l.records[rec.Address] = rec
}

func (l *MemoryLookup) FetchRemoteIdentity(_ context.Context, addr models.Address) (*models.IdentityRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.records[addr]
	if !ok {
		return nil, nil
	}
	rec.IdentityKey = append([]byte(nil), rec.IdentityKey...)
	return &rec, nil
}
