package bookingRepo

import (
	"context"
	"errors"

	"salonhub/models"
)

// ErrBookingNotFound is returned when no booking matches the given id.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository persists booking records. Status mutations go through
// UpdateStatus so a booking document is never overwritten wholesale.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	ListByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	ListByBusiness(ctx context.Context, businessID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	// Delete is an administrative removal; it does not touch availability.
	Delete(ctx context.Context, id string) error
}
