package models

import (
	"fmt"

	"prefsync/pkg/platform/sentinel"
)

// ChannelState tracks the custom notification channel of one recipient.
//
//	NoChannel -> Creating -> Active -> Deleting -> NoChannel
//
// Creating and Deleting are the only states in which a serial-lane write runs.
type ChannelState int

const (
	NoChannel ChannelState = iota
	Creating
	Active
	Deleting
)

func (s ChannelState) String() string {
	switch s {
	case Creating:
		return "creating"
	case Active:
		return "active"
	case Deleting:
		return "deleting"
	default:
		return "no_channel"
	}
}

// IsStable reports whether no channel write is in progress.
func (s ChannelState) IsStable() bool {
	return s == NoChannel || s == Active
}

var channelTransitions = map[ChannelState]ChannelState{
	NoChannel: Creating,
	Creating:  Active,
	Active:    Deleting,
	Deleting:  NoChannel,
}

// ErrInvalidTransition is returned when a channel write would start from a
// state other than the adjacent stable one.
var ErrInvalidTransition = fmt.Errorf("channel transition: %w", sentinel.ErrInvalidState)

// Transition validates from -> to. Failed writes may fall back from an
// in-progress state to the stable state they started from.
func (s ChannelState) Transition(to ChannelState) (ChannelState, error) {
	if channelTransitions[s] == to {
		return to, nil
	}
	if (s == Creating && to == NoChannel) || (s == Deleting && to == Active) {
		return to, nil
	}
	return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
}

// Channel is the adapter's view of one recipient's custom channel.
type Channel struct {
	ID        string
	Recipient Address
	Ringtone  Ringtone
	Vibrate   bool
}
