package availabilityRepo

import (
	"context"
	"sort"
	"sync"
)

// MemoryAvailabilityRepo is an in-memory AvailabilityRepository used in unit
// tests. A single mutex gives RemoveSlot the same one-winner semantics the
// Mongo conditional update provides.
type MemoryAvailabilityRepo struct {
	mu   sync.Mutex
	days map[string]map[string][]string // businessID -> date -> times
}

// NewMemoryAvailabilityRepo constructs an empty in-memory repository.
func NewMemoryAvailabilityRepo() *MemoryAvailabilityRepo {
	return &MemoryAvailabilityRepo{days: make(map[string]map[string][]string)}
}

func (r *MemoryAvailabilityRepo) ListSlots(ctx context.Context, businessID, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	times := r.days[businessID][date]
	out := make([]string, len(times))
	copy(out, times)
	return out, nil
}

func (r *MemoryAvailabilityRepo) RemoveSlot(ctx context.Context, businessID, date, timeOfDay string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	times := r.days[businessID][date]
	for i, t := range times {
		if t == timeOfDay {
			r.days[businessID][date] = append(times[:i:i], times[i+1:]...)
			return nil
		}
	}
	return ErrSlotNotFound
}

func (r *MemoryAvailabilityRepo) AddSlot(ctx context.Context, businessID, date, timeOfDay string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, t := range r.days[businessID][date] {
		if t == timeOfDay {
			return nil
		}
	}
	if r.days[businessID] == nil {
		r.days[businessID] = make(map[string][]string)
	}
	times := append(r.days[businessID][date], timeOfDay)
	sort.Strings(times)
	r.days[businessID][date] = times
	return nil
}

func (r *MemoryAvailabilityRepo) SetSlots(ctx context.Context, businessID, date string, times []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.days[businessID] == nil {
		r.days[businessID] = make(map[string][]string)
	}
	r.days[businessID][date] = normalizeTimes(times)
	return nil
}
