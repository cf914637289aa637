package models

import "time"

// VerifiedStatus is the trust state of a remote identity key.
type VerifiedStatus int

const (
	VerifiedDefault VerifiedStatus = iota
	Verified
	Unverified
)

func (v VerifiedStatus) String() string {
	switch v {
	case Verified:
		return "verified"
	case Unverified:
		return "unverified"
	default:
		return "default"
	}
}

// IdentityRecord is read-only data sourced outside this service.
type IdentityRecord struct {
	Address        Address
	IdentityKey    []byte
	VerifiedStatus VerifiedStatus
	FirstUse       bool
	Timestamp      time.Time
}
