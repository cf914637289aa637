package models

import (
	"strings"
	"time"
)

// Address is the opaque identity key of a recipient.
type Address string

func (a Address) String() string {
	return string(a)
}

// IsNil reports whether the address is empty.
func (a Address) IsNil() bool {
	return strings.TrimSpace(string(a)) == ""
}

// RegisteredState mirrors the recipient's registration on the network.
type RegisteredState int

const (
	Unregistered RegisteredState = iota
	Registering
	Registered
)

func (s RegisteredState) String() string {
	switch s {
	case Registering:
		return "registering"
	case Registered:
		return "registered"
	default:
		return "unregistered"
	}
}

// Recipient is an immutable snapshot of one recipient's notification
// preferences. Entities hand out copies; nothing mutates a snapshot in place.
type Recipient struct {
	Address    Address
	IsLocal    bool
	IsGroup    bool
	Registered RegisteredState

	// MuteUntil is epoch milliseconds; 0 means not muted.
	MuteUntil       int64
	MessageRingtone Ringtone
	MessageVibrate  VibrateState
	Color           MaterialColor

	// NotificationChannel is the adapter's channel id; empty when no custom
	// channel exists. It is only written after the adapter call it mirrors.
	NotificationChannel string
	// CustomNotifications is the caller's intent and flips immediately.
	CustomNotifications bool
	ChannelState        ChannelState
}

// NewRecipient returns the defaults for a recipient seen for the first time.
func NewRecipient(addr Address) Recipient {
	return Recipient{
		Address:        addr,
		MessageVibrate: VibrateDefault,
		Color:          DefaultColor,
		ChannelState:   NoChannel,
	}
}

// IsMuted reports whether the mute deadline lies after now.
func (r Recipient) IsMuted(now time.Time) bool {
	return r.MuteUntil > now.UnixMilli()
}

// HasChannel reports whether a custom notification channel exists.
func (r Recipient) HasChannel() bool {
	return r.NotificationChannel != ""
}

// PropagatesSettings reports whether settings changes of this recipient are
// fanned out to linked devices.
func (r Recipient) PropagatesSettings() bool {
	return r.Registered == Registered && !r.IsGroup && !r.IsLocal
}
