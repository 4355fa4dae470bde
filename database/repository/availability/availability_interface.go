package availabilityRepo

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by RemoveSlot when the requested time is not
// open (already reserved or never published).
var ErrSlotNotFound = errors.New("slot not found")

// AvailabilityRepository owns the per-business, per-date set of open slots.
//
// RemoveSlot must be atomic with respect to concurrent callers for the same
// (businessID, date, timeOfDay) key: exactly one concurrent caller succeeds,
// the rest observe ErrSlotNotFound. The booking path mutates a day's slots
// only through RemoveSlot and AddSlot; SetSlots is reserved for the owner
// publishing a day's schedule.
type AvailabilityRepository interface {
	// ListSlots returns the open times for a business on a date, sorted
	// ascending. Unknown business or date yields an empty slice, not an error.
	ListSlots(ctx context.Context, businessID, date string) ([]string, error)
	// RemoveSlot removes the time if present, ErrSlotNotFound otherwise.
	RemoveSlot(ctx context.Context, businessID, date, timeOfDay string) error
	// AddSlot inserts the time if absent, keeping the day sorted. Re-adding
	// an existing time is a no-op success.
	AddSlot(ctx context.Context, businessID, date, timeOfDay string) error
	// SetSlots replaces the published schedule for one day.
	SetSlots(ctx context.Context, businessID, date string, times []string) error
}
