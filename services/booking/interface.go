package booking

import (
	"context"
	"time"

	"salonhub/models"
)

// ReserveInput carries a customer's reservation request.
type ReserveInput struct {
	BusinessID string `json:"business_id"`
	CustomerID string `json:"customer_id"`
	ServiceID  string `json:"service_id"`
	Date       string `json:"date"`
	Time       string `json:"time"`
}

// BookingService is the only component allowed to mutate a booking and the
// availability store together.
type BookingService interface {
	// Reserve atomically claims the slot and creates a pending booking.
	// Returns ErrSlotUnavailable when the slot was already taken.
	Reserve(ctx context.Context, in ReserveInput) (*models.Booking, error)
	// Transition applies a status change, restoring the slot when the
	// booking moves into cancelled. Returns ErrInvalidTransition for edges
	// the state machine does not define.
	Transition(ctx context.Context, bookingID string, newStatus models.BookingStatus) (*models.Booking, error)
	// ListSlots returns the open times for a business on a date.
	ListSlots(ctx context.Context, businessID, date string) ([]string, error)

	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error)
	BusinessBookings(ctx context.Context, businessID string) ([]models.Booking, error)
	// AllBookings is the administrative view across every business.
	AllBookings(ctx context.Context) ([]models.Booking, error)
	// Delete is an administrative purge; it never restores slots.
	Delete(ctx context.Context, id string) error
}

// ReminderScheduler enqueues a durable delayed notification keyed by booking
// id, so a process restart never loses a scheduled reminder.
type ReminderScheduler interface {
	ScheduleReviewPrompt(ctx context.Context, booking *models.Booking, fireAt time.Time) error
}
