// Package ports declares the collaborators the recipient coordinator depends
// on. Implementations live in store, channels, propagation and identity.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"prefsync/internal/recipient/models"
)

// PreferenceStore persists per-recipient fields. Every setter is a single
// atomic field update; no multi-field transactions are assumed.
type PreferenceStore interface {
	// Get returns sentinel.ErrNotFound when the recipient has no record.
	Get(ctx context.Context, addr models.Address) (*models.Recipient, error)
	Save(ctx context.Context, r models.Recipient) error
	SetMuted(ctx context.Context, addr models.Address, until int64) error
	SetMessageRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error
	SetMessageVibrate(ctx context.Context, addr models.Address, vibrate models.VibrateState) error
	SetColor(ctx context.Context, addr models.Address, color models.MaterialColor) error
	// SetNotificationChannel stores the channel id; "" clears it.
	SetNotificationChannel(ctx context.Context, addr models.Address, channelID string) error
	// ListNotificationChannels returns every recipient with a stored channel id.
	ListNotificationChannels(ctx context.Context) (map[models.Address]string, error)
}

// ChannelAdapter maps a recipient to a notification channel configuration.
type ChannelAdapter interface {
	CreateChannelFor(ctx context.Context, r models.Recipient) (string, error)
	DeleteChannelFor(ctx context.Context, addr models.Address) error
	UpdateRingtone(ctx context.Context, addr models.Address, ringtone models.Ringtone) error
	UpdateVibrate(ctx context.Context, addr models.Address, enabled bool) error
	// Channel returns sentinel.ErrNotFound when no channel exists.
	Channel(ctx context.Context, addr models.Address) (*models.Channel, error)
	Channels(ctx context.Context) ([]models.Channel, error)
}

// PropagationJob notifies linked devices of a settings change.
type PropagationJob struct {
	ID        string
	Recipient models.Address
	Kind      models.PropagationKind
	CreatedAt int64
}

// PropagationQueue is fire-and-forget from the coordinator's perspective.
type PropagationQueue interface {
	Enqueue(ctx context.Context, job PropagationJob) error
}

// IdentityLookup fetches the remote identity of a recipient. A nil record
// with a nil error means no identity is known.
type IdentityLookup interface {
	FetchRemoteIdentity(ctx context.Context, addr models.Address) (*models.IdentityRecord, error)
}
