package models

import (
	"fmt"
	"net/url"
)

// Ringtone distinguishes three states: unset (inherit the process default),
// explicit silence (set with an empty URI) and a custom tone.
type Ringtone struct {
	URI string
	Set bool
}

var (
	RingtoneUnset  = Ringtone{}
	RingtoneSilent = Ringtone{Set: true}
)

// CustomRingtone builds a ringtone pointing at uri.
func CustomRingtone(uri string) Ringtone {
	return Ringtone{URI: uri, Set: true}
}

// IsSilent reports the explicit-silence sentinel.
func (r Ringtone) IsSilent() bool {
	return r.Set && r.URI == ""
}

// IsUnset reports the inherit-default state.
func (r Ringtone) IsUnset() bool {
	return !r.Set
}

func (r Ringtone) String() string {
	switch {
	case !r.Set:
		return "default"
	case r.URI == "":
		return "silent"
	default:
		return r.URI
	}
}

// ParseRingtoneURI validates a ringtone URI. Only absolute URIs are accepted.
func ParseRingtoneURI(raw string) (Ringtone, error) {
	if raw == "" {
		return RingtoneSilent, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Ringtone{}, fmt.Errorf("malformed ringtone uri: %w", err)
	}
	if u.Scheme == "" {
		return Ringtone{}, fmt.Errorf("ringtone uri %q has no scheme", raw)
	}
	return CustomRingtone(raw), nil
}
