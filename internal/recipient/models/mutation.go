package models

import "time"

// Field names one mutable notification preference.
type Field string

const (
	FieldMute          Field = "mute"
	FieldRingtone      Field = "ringtone"
	FieldVibrate       Field = "vibrate"
	FieldColor         Field = "color"
	FieldCustomChannel Field = "custom_channel"
	FieldChannelID     Field = "channel_id"
)

// Mutation is one committed change to a recipient. Seq is assigned per
// recipient when the entity commits it; durable writes follow Seq order.
type Mutation struct {
	Recipient Address
	Field     Field
	Value     any
	Timestamp time.Time
	Seq       uint64
}

// Apply returns r with the mutation applied. Unknown fields leave r unchanged.
func (m Mutation) Apply(r Recipient) Recipient {
	switch m.Field {
	case FieldMute:
		r.MuteUntil, _ = m.Value.(int64)
	case FieldRingtone:
		r.MessageRingtone, _ = m.Value.(Ringtone)
	case FieldVibrate:
		r.MessageVibrate, _ = m.Value.(VibrateState)
	case FieldColor:
		r.Color, _ = m.Value.(MaterialColor)
	case FieldCustomChannel:
		r.CustomNotifications, _ = m.Value.(bool)
	case FieldChannelID:
		if cs, ok := m.Value.(ChannelCommit); ok {
			r.NotificationChannel = cs.ChannelID
			r.ChannelState = cs.State
			if cs.State.IsStable() {
				r.CustomNotifications = cs.ChannelID != ""
			}
		}
	}
	return r
}

// ChannelCommit is the value of a FieldChannelID mutation: the channel id the
// adapter confirmed and the resulting sub-state.
type ChannelCommit struct {
	ChannelID string
	State     ChannelState
}

// PropagationKind tags a job for linked devices.
type PropagationKind string

const PropagationColorChange PropagationKind = "color-change"
