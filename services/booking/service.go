package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	availabilityRepo "salonhub/database/repository/availability"
	bookingRepo "salonhub/database/repository/booking"
	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/models"
	"salonhub/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService orchestrates slot consumption and restoration
// against booking status transitions. All collaborators are injected; the
// service never reaches for globals, so tests run against in-memory fakes.
type DefaultBookingService struct {
	Availability availabilityRepo.AvailabilityRepository
	Bookings     bookingRepo.BookingRepository
	Businesses   businessRepo.BusinessRepository
	Customers    customerRepo.CustomerRepository
	Notifier     notification.NotificationService
	Reminders    ReminderScheduler
	Logger       *zap.Logger

	// ReviewReminderDelay is how long after a reservation the review prompt
	// fires. Zero disables reminders.
	ReviewReminderDelay time.Duration
}

// Reserve claims the requested slot and creates a pending booking.
//
// The slot is removed first; only a caller whose conditional removal
// succeeded ever gets a booking, so a booking can never reference a slot
// that was not actually held. Notifications run after the state is
// committed and are best-effort.
func (s *DefaultBookingService) Reserve(ctx context.Context, in ReserveInput) (*models.Booking, error) {
	if in.BusinessID == "" {
		return nil, models.ValidationError{Field: "business_id", Reason: "must not be empty"}
	}
	if in.CustomerID == "" {
		return nil, models.ValidationError{Field: "customer_id", Reason: "must not be empty"}
	}
	if !models.ValidDate(in.Date) {
		return nil, models.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", in.Date)}
	}
	if !models.ValidTimeOfDay(in.Time) {
		return nil, models.ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not a 24-hour HH:MM time", in.Time)}
	}

	business, err := s.Businesses.GetByID(ctx, in.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, models.ValidationError{Field: "business_id", Reason: "unknown business"}
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	svc := business.ServiceByID(in.ServiceID)
	if svc == nil || !svc.Active {
		return nil, models.ValidationError{Field: "service_id", Reason: "unknown or inactive service"}
	}

	customer, err := s.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return nil, models.ValidationError{Field: "customer_id", Reason: "unknown customer"}
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	// The conditional removal is what prevents a double booking: exactly one
	// concurrent caller for the same key gets past this line.
	if err := s.Availability.RemoveSlot(ctx, in.BusinessID, in.Date, in.Time); err != nil {
		if errors.Is(err, availabilityRepo.ErrSlotNotFound) {
			return nil, ErrSlotUnavailable
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	b := &models.Booking{
		ID:         uuid.New().String(),
		BusinessID: in.BusinessID,
		CustomerID: in.CustomerID,
		Service: models.ServiceSnapshot{
			ServiceID:       svc.ID,
			ServiceName:     svc.Name,
			Price:           svc.Price,
			DurationMinutes: svc.DurationMinutes,
		},
		Date:      in.Date,
		Time:      in.Time,
		Status:    models.StatusPending,
		Contact:   customer.ContactSnapshot(),
		CreatedAt: time.Now().UTC(),
	}
	if err := b.Validate(); err != nil {
		// The slot is already held; give it back before reporting.
		s.restoreSlot(ctx, b)
		return nil, err
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		s.restoreSlot(ctx, b)
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	s.notifyCustomer(ctx, b, "Booking requested",
		fmt.Sprintf("Your %s booking at %s on %s %s is awaiting confirmation.", b.Service.ServiceName, business.Name, b.Date, b.Time))
	s.notifyBusiness(ctx, b, "New booking request",
		fmt.Sprintf("%s requested %s on %s at %s.", b.Contact.Name, b.Service.ServiceName, b.Date, b.Time))
	s.scheduleReviewPrompt(ctx, b)

	return b, nil
}

// Transition applies a status change to an existing booking.
//
// A same-state transition is a no-op success, except into cancelled: the
// restoration side effect re-runs so a duplicate cancellation event still
// leaves the slot open exactly once. Moving into cancelled restores the slot
// before the new status is persisted, and the restoration is never skipped
// because a notification failed.
func (s *DefaultBookingService) Transition(ctx context.Context, bookingID string, newStatus models.BookingStatus) (*models.Booking, error) {
	if _, err := models.ParseBookingStatus(string(newStatus)); err != nil {
		return nil, err
	}

	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	if b.Status == newStatus {
		if newStatus == models.StatusCancelled {
			if err := s.Availability.AddSlot(ctx, b.BusinessID, b.Date, b.Time); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
			}
		}
		return b, nil
	}

	if !b.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidTransition
	}

	if newStatus == models.StatusCancelled {
		// Restore first: the freed slot must reappear even if persisting the
		// status or notifying fails afterwards. AddSlot is idempotent, so a
		// retry cannot duplicate the entry.
		if err := s.Availability.AddSlot(ctx, b.BusinessID, b.Date, b.Time); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
		}
	}

	if err := s.Bookings.UpdateStatus(ctx, b.ID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	b.Status = newStatus

	switch newStatus {
	case models.StatusConfirmed:
		s.notifyCustomer(ctx, b, "Booking confirmed",
			fmt.Sprintf("Your %s booking on %s at %s is confirmed.", b.Service.ServiceName, b.Date, b.Time))
	case models.StatusCompleted:
		s.notifyCustomer(ctx, b, "Thanks for visiting",
			fmt.Sprintf("Your %s appointment on %s is complete.", b.Service.ServiceName, b.Date))
	case models.StatusCancelled:
		s.notifyCustomer(ctx, b, "Booking cancelled",
			fmt.Sprintf("Your %s booking on %s at %s was cancelled.", b.Service.ServiceName, b.Date, b.Time))
	}

	return b, nil
}

// ListSlots returns the open times for a business on a date.
func (s *DefaultBookingService) ListSlots(ctx context.Context, businessID, date string) ([]string, error) {
	times, err := s.Availability.ListSlots(ctx, businessID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return times, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *DefaultBookingService) CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Bookings.ListByCustomer(ctx, customerID)
}

func (s *DefaultBookingService) BusinessBookings(ctx context.Context, businessID string) ([]models.Booking, error) {
	return s.Bookings.ListByBusiness(ctx, businessID)
}

func (s *DefaultBookingService) AllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.Bookings.ListAll(ctx)
}

// Delete removes a booking record outright. No slot is restored; explicit
// deletion is an administrative operation, not a cancellation.
func (s *DefaultBookingService) Delete(ctx context.Context, id string) error {
	return s.Bookings.Delete(ctx, id)
}

// restoreSlot gives a held slot back after a failed reservation. Best-effort:
// the caller is already reporting the original failure.
func (s *DefaultBookingService) restoreSlot(ctx context.Context, b *models.Booking) {
	if err := s.Availability.AddSlot(ctx, b.BusinessID, b.Date, b.Time); err != nil {
		s.Logger.Error("failed to restore slot after aborted reservation",
			zap.String("businessId", b.BusinessID),
			zap.String("date", b.Date),
			zap.String("time", b.Time),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCustomer(ctx context.Context, b *models.Booking, title, body string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"type": "booking_update", "bookingId": b.ID, "status": string(b.Status)}
	if err := s.Notifier.SendCustomerPush(ctx, b.CustomerID, title, body, data); err != nil {
		s.Logger.Warn("customer notification failed",
			zap.String("bookingId", b.ID),
			zap.String("customerId", b.CustomerID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyBusiness(ctx context.Context, b *models.Booking, title, body string) {
	if s.Notifier == nil {
		return
	}
	data := map[string]string{"type": "booking_update", "bookingId": b.ID, "status": string(b.Status)}
	if err := s.Notifier.SendBusinessPush(ctx, b.BusinessID, title, body, data); err != nil {
		s.Logger.Warn("business notification failed",
			zap.String("bookingId", b.ID),
			zap.String("businessId", b.BusinessID),
			zap.Error(err))
	}
}

func (s *DefaultBookingService) scheduleReviewPrompt(ctx context.Context, b *models.Booking) {
	if s.Reminders == nil || s.ReviewReminderDelay <= 0 {
		return
	}
	fireAt := time.Now().Add(s.ReviewReminderDelay)
	if err := s.Reminders.ScheduleReviewPrompt(ctx, b, fireAt); err != nil {
		s.Logger.Warn("failed to schedule review reminder",
			zap.String("bookingId", b.ID),
			zap.Error(err))
	}
}
