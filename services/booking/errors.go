package booking

import "errors"

var (
	// ErrSlotUnavailable means the requested (business, date, time) was
	// already taken or never existed. Recoverable; the caller shows
	// "please pick another time".
	ErrSlotUnavailable = errors.New("slot unavailable")

	// ErrInvalidTransition means the requested status change is not a valid
	// edge from the booking's current state. Indicates a stale client or a
	// duplicate submission.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStoreUnavailable wraps persistence failures. Recoverable via caller
	// retry; never retried internally, a hidden retry loop could
	// double-reserve.
	ErrStoreUnavailable = errors.New("store unavailable")
)
