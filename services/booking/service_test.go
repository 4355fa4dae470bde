package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	availabilityRepo "salonhub/database/repository/availability"
	bookingRepo "salonhub/database/repository/booking"
	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBusinessRepo struct {
	businessRepo.BusinessRepository
	businesses map[string]*models.Business
}

func (f *fakeBusinessRepo) GetByID(ctx context.Context, id string) (*models.Business, error) {
	b, ok := f.businesses[id]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	return b, nil
}

type fakeCustomerRepo struct {
	customerRepo.CustomerRepository
	customers map[string]*models.Customer
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

type push struct {
	recipient string
	title     string
}

type recordingNotifier struct {
	mu             sync.Mutex
	customerPushes []push
	businessPushes []push
	fail           bool
}

func (n *recordingNotifier) SendCustomerPush(ctx context.Context, customerID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("push provider down")
	}
	n.customerPushes = append(n.customerPushes, push{customerID, title})
	return nil
}

func (n *recordingNotifier) SendBusinessPush(ctx context.Context, businessID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("push provider down")
	}
	n.businessPushes = append(n.businessPushes, push{businessID, title})
	return nil
}

type recordingScheduler struct {
	mu        sync.Mutex
	bookings  []string
	failAfter error
}

func (r *recordingScheduler) ScheduleReviewPrompt(ctx context.Context, b *models.Booking, fireAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAfter != nil {
		return r.failAfter
	}
	r.bookings = append(r.bookings, b.ID)
	return nil
}

// failingCreateRepo makes the booking insert fail after the slot was taken.
type failingCreateRepo struct {
	*bookingRepo.MemoryBookingRepo
}

func (f *failingCreateRepo) Create(ctx context.Context, b *models.Booking) error {
	return errors.New("write concern timeout")
}

type fixture struct {
	svc      *DefaultBookingService
	avail    *availabilityRepo.MemoryAvailabilityRepo
	bookings *bookingRepo.MemoryBookingRepo
	notifier *recordingNotifier
	sched    *recordingScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	avail := availabilityRepo.NewMemoryAvailabilityRepo()
	bookings := bookingRepo.NewMemoryBookingRepo()
	notifier := &recordingNotifier{}
	sched := &recordingScheduler{}

	businesses := &fakeBusinessRepo{businesses: map[string]*models.Business{
		"B": {
			ID:   "B",
			Name: "Shear Genius",
			Services: []models.SalonService{
				{ID: "svc-1", Name: "Haircut", Price: 35, DurationMinutes: 45, Active: true},
				{ID: "svc-2", Name: "Retired Perm", Price: 80, DurationMinutes: 90, Active: false},
			},
		},
	}}
	customers := &fakeCustomerRepo{customers: map[string]*models.Customer{
		"cust1": {ID: "cust1", Name: "Ada", Email: "ada@example.com", Phone: "555-0100"},
	}}

	return &fixture{
		svc: &DefaultBookingService{
			Availability:        avail,
			Bookings:            bookings,
			Businesses:          businesses,
			Customers:           customers,
			Notifier:            notifier,
			Reminders:           sched,
			Logger:              zap.NewNop(),
			ReviewReminderDelay: time.Hour,
		},
		avail:    avail,
		bookings: bookings,
		notifier: notifier,
		sched:    sched,
	}
}

func (f *fixture) seedDay(t *testing.T, times ...string) {
	t.Helper()
	require.NoError(t, f.avail.SetSlots(context.Background(), "B", "2025-06-01", times))
}

func reserveInput(timeOfDay string) ReserveInput {
	return ReserveInput{
		BusinessID: "B",
		CustomerID: "cust1",
		ServiceID:  "svc-1",
		Date:       "2025-06-01",
		Time:       timeOfDay,
	}
}

func TestReserveTakesSlotAndCreatesPendingBooking(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00", "09:30", "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, models.StatusPending, b.Status)
	assert.Equal(t, "Haircut", b.Service.ServiceName)
	assert.Equal(t, 35.0, b.Service.Price)
	assert.Equal(t, "Ada", b.Contact.Name)
	assert.Equal(t, "ada@example.com", b.Contact.Email)

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, times, "the reserved time must be gone")

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestReserveNotifiesBothPartiesAndSchedulesReminder(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")

	b, err := f.svc.Reserve(context.Background(), reserveInput("10:00"))
	require.NoError(t, err)

	require.Len(t, f.notifier.customerPushes, 1)
	assert.Equal(t, "cust1", f.notifier.customerPushes[0].recipient)
	require.Len(t, f.notifier.businessPushes, 1)
	assert.Equal(t, "B", f.notifier.businessPushes[0].recipient)
	assert.Equal(t, []string{b.ID}, f.sched.bookings)
}

func TestReserveTakenSlotReturnsSlotUnavailable(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00")
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	// No booking was created and no notification went out.
	list, err := f.bookings.ListByCustomer(ctx, "cust1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, f.notifier.customerPushes)
}

func TestConcurrentReserveExactlyOneWins(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	const callers = 16
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Reserve(ctx, reserveInput("10:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	wins, misses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			misses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, callers-1, misses)

	list, err := f.bookings.ListByBusiness(ctx, "B")
	require.NoError(t, err)
	assert.Len(t, list, 1, "only the winner holds a booking")
}

func TestReserveValidationRejectedBeforeStore(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	cases := []ReserveInput{
		{BusinessID: "", CustomerID: "cust1", ServiceID: "svc-1", Date: "2025-06-01", Time: "10:00"},
		{BusinessID: "B", CustomerID: "", ServiceID: "svc-1", Date: "2025-06-01", Time: "10:00"},
		{BusinessID: "B", CustomerID: "cust1", ServiceID: "svc-1", Date: "June 1st", Time: "10:00"},
		{BusinessID: "B", CustomerID: "cust1", ServiceID: "svc-1", Date: "2025-06-01", Time: "10am"},
		{BusinessID: "B", CustomerID: "cust1", ServiceID: "svc-2", Date: "2025-06-01", Time: "10:00"}, // inactive service
		{BusinessID: "B", CustomerID: "ghost", ServiceID: "svc-1", Date: "2025-06-01", Time: "10:00"},
	}
	for _, in := range cases {
		_, err := f.svc.Reserve(ctx, in)
		var vErr models.ValidationError
		assert.ErrorAsf(t, err, &vErr, "input %+v", in)
	}

	// The slot was never touched.
	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times)
}

func TestReserveRestoresSlotWhenBookingInsertFails(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	f.svc.Bookings = &failingCreateRepo{bookingRepo.NewMemoryBookingRepo()}
	ctx := context.Background()

	_, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	times, listErr := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, listErr)
	assert.Equal(t, []string{"10:00"}, times, "slot must be given back after the aborted reservation")
}

func TestTransitionConfirmThenComplete(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	b, err = f.svc.Transition(ctx, b.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	b, err = f.svc.Transition(ctx, b.ID, models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, b.Status)

	// Completion never resurrects the slot.
	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestCancelRestoresSlot(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00", "09:30", "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("09:30"))
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, b.ID, models.StatusConfirmed)
	require.NoError(t, err)

	b, err = f.svc.Transition(ctx, b.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times, "ascending order restored")
}

func TestDoubleCancelIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, b.ID, models.StatusCancelled)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, b.ID, models.StatusCancelled)
	require.NoError(t, err, "a duplicate cancellation event still reports success")

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times, "the slot appears exactly once")
}

func TestNoTransitionOutOfTerminalStates(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00", "10:00")
	ctx := context.Background()

	completed, err := f.svc.Reserve(ctx, reserveInput("09:00"))
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, completed.ID, models.StatusConfirmed)
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, completed.ID, models.StatusCompleted)
	require.NoError(t, err)

	cancelled, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, cancelled.ID, models.StatusCancelled)
	require.NoError(t, err)

	slotsBefore, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, completed.ID, models.StatusConfirmed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.Transition(ctx, cancelled.ID, models.StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Both records and the availability are untouched.
	got, err := f.svc.GetBooking(ctx, completed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	got, err = f.svc.GetBooking(ctx, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, got.Status)

	slotsAfter, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, slotsBefore, slotsAfter)
}

func TestSameStateTransitionIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	pushesBefore := len(f.notifier.customerPushes)
	got, err := f.svc.Transition(ctx, b.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Len(t, f.notifier.customerPushes, pushesBefore, "a no-op change emits nothing")
}

func TestNotificationFailureNeverRollsBackTransition(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	f.notifier.fail = true
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err, "reserve succeeds even when every push fails")

	b, err = f.svc.Transition(ctx, b.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, times, "restoration ran despite the failed notification")
}

func TestTransitionUnknownBookingReturnsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Transition(context.Background(), "nope", models.StatusConfirmed)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestDeleteDoesNotRestoreSlot(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, b.ID))

	_, err = f.svc.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Empty(t, times, "administrative deletion is a purge, not a cancellation")
}

func TestAllBookingsSpansBusinesses(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00", "10:00")
	ctx := context.Background()

	first, err := f.svc.Reserve(ctx, reserveInput("09:00"))
	require.NoError(t, err)
	second, err := f.svc.Reserve(ctx, reserveInput("10:00"))
	require.NoError(t, err)

	all, err := f.svc.AllBookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	ids := []string{all[0].ID, all[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}

func TestEndToEndScenario(t *testing.T) {
	f := newFixture(t)
	f.seedDay(t, "09:00", "09:30", "10:00")
	ctx := context.Background()

	b, err := f.svc.Reserve(ctx, reserveInput("09:30"))
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, b.Status)

	times, err := f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times)

	b, err = f.svc.Transition(ctx, b.ID, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, b.Status)

	times, err = f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:00"}, times, "confirmation leaves slots unchanged")

	b, err = f.svc.Transition(ctx, b.ID, models.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, b.Status)

	times, err = f.svc.ListSlots(ctx, "B", "2025-06-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, times)
}
