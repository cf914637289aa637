package models

import "fmt"

// VibrateState is the per-recipient vibration policy. The numeric ids are
// persisted and must not change.
type VibrateState int

const (
	VibrateDefault  VibrateState = 0
	VibrateEnabled  VibrateState = 1
	VibrateDisabled VibrateState = 2
)

// VibrateFromID maps a persisted id back to a state.
func VibrateFromID(id int) (VibrateState, error) {
	switch VibrateState(id) {
	case VibrateDefault, VibrateEnabled, VibrateDisabled:
		return VibrateState(id), nil
	default:
		return VibrateDefault, fmt.Errorf("unknown vibrate state id %d", id)
	}
}

// ID returns the persisted id.
func (v VibrateState) ID() int {
	return int(v)
}

// Resolve collapses DEFAULT onto the process-wide default.
func (v VibrateState) Resolve(defaultEnabled bool) bool {
	switch v {
	case VibrateEnabled:
		return true
	case VibrateDisabled:
		return false
	default:
		return defaultEnabled
	}
}

func (v VibrateState) String() string {
	switch v {
	case VibrateEnabled:
		return "enabled"
	case VibrateDisabled:
		return "disabled"
	default:
		return "default"
	}
}
