package availabilityRepo

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSlotsUnknownKeysReturnEmpty(t *testing.T) {
	repo := NewMemoryAvailabilityRepo()
	ctx := context.Background()

	times, err := repo.ListSlots(ctx, "nobody", "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestRemoveSlotMissReturnsNotFound(t *testing.T) {
	repo := NewMemoryAvailabilityRepo()
	ctx := context.Background()

	err := repo.RemoveSlot(ctx, "biz", "2025-06-01", "10:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)

	require.NoError(t, repo.SetSlots(ctx, "biz", "2025-06-01", []string{"09:00"}))
	err = repo.RemoveSlot(ctx, "biz", "2025-06-01", "10:00")
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestAddSlotIsIdempotentAndKeepsOrder(t *testing.T) {
	repo := NewMemoryAvailabilityRepo()
	ctx := context.Background()

	require.NoError(t, repo.AddSlot(ctx, "biz", "2025-06-01", "10:00"))
	require.NoError(t, repo.AddSlot(ctx, "biz", "2025-06-01", "09:00"))
	require.NoError(t, repo.AddSlot(ctx, "biz", "2025-06-01", "10:00"))

	times, err := repo.ListSlots(ctx, "biz", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times)
}

func TestSetSlotsDedupesAndSorts(t *testing.T) {
	repo := NewMemoryAvailabilityRepo()
	ctx := context.Background()

	require.NoError(t, repo.SetSlots(ctx, "biz", "2025-06-01", []string{"10:00", "09:00", "10:00", "09:30"}))

	times, err := repo.ListSlots(ctx, "biz", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times)
}

func TestConcurrentRemoveSlotHasOneWinner(t *testing.T) {
	repo := NewMemoryAvailabilityRepo()
	ctx := context.Background()
	require.NoError(t, repo.SetSlots(ctx, "biz", "2025-06-01", []string{"10:00"}))

	const callers = 32
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- repo.RemoveSlot(ctx, "biz", "2025-06-01", "10:00")
		}()
	}
	wg.Wait()
	close(results)

	wins, misses := 0, 0
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrSlotNotFound)
			misses++
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent caller may take the slot")
	assert.Equal(t, callers-1, misses)
}
