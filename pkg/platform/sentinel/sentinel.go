package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and adapters return these
// (optionally wrapped) so the coordinator can translate them into domain errors.
//
//   - ErrNotFound: record or channel does not exist
//   - ErrInvalidState: entity in wrong state for the requested transition
//   - ErrUnavailable: backend temporarily unavailable
//
// For validation failures use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
	ErrClosed       = errors.New("closed")
)
