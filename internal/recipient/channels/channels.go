// Package channels implements the notification-channel facility: one custom
// channel per recipient carrying its ringtone and vibration settings.
package channels

import (
	"github.com/google/uuid"

	"prefsync/internal/recipient/models"
)

// Option configures an adapter.
type Option func(*settings)

type settings struct {
	defaultVibrate bool
	newID          func(models.Address) string
}

// WithDefaultVibrate sets the vibration used for recipients whose vibrate
// policy is DEFAULT.
func WithDefaultVibrate(enabled bool) Option {
	return func(s *settings) {
		s.defaultVibrate = enabled
	}
}

// WithIDGenerator overrides channel id generation.
func WithIDGenerator(fn func(models.Address) string) Option {
	return func(s *settings) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		defaultVibrate: true,
		newID: func(addr models.Address) string {
			return "recipient_" + addr.String() + "_" + uuid.NewString()
		},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) channelFor(r models.Recipient) models.Channel {
	return models.Channel{
		ID:        s.newID(r.Address),
		Recipient: r.Address,
		Ringtone:  r.MessageRingtone,
		Vibrate:   r.MessageVibrate.Resolve(s.defaultVibrate),
	}
}
