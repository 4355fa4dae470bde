package models

import (
	"fmt"
	"regexp"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus validates a raw status string.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return BookingStatus(s), nil
	}
	return "", ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", s)}
}

// IsTerminal reports whether no transitions are defined out of the status.
func (s BookingStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether the status edge exists.
// Self-transitions are handled by the booking service, not here.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCompleted || target == StatusCancelled
	}
	return false
}

// ContactSnapshot captures the customer's contact details at reservation
// time. It is never re-synced with the customer profile.
type ContactSnapshot struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// ServiceSnapshot captures the booked service at reservation time. Later
// edits to the salon's catalogue must not alter historical bookings.
type ServiceSnapshot struct {
	ServiceID       string  `bson:"service_id" json:"service_id"`
	ServiceName     string  `bson:"service_name" json:"service_name"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"duration_minutes" json:"duration_minutes"`
}

// Booking represents one customer's reservation of a single salon slot.
type Booking struct {
	ID         string          `bson:"id" json:"id"`
	BusinessID string          `bson:"business_id" json:"business_id"`
	CustomerID string          `bson:"customer_id" json:"customer_id"`
	Service    ServiceSnapshot `bson:"service" json:"service"`
	Date       string          `bson:"date" json:"date"` // "YYYY-MM-DD"
	Time       string          `bson:"time" json:"time"` // "HH:MM", 24-hour
	Status     BookingStatus   `bson:"status" json:"status"`
	Contact    ContactSnapshot `bson:"contact" json:"contact"`
	CreatedAt  time.Time       `bson:"created_at" json:"created_at"`
}

// ValidationError reports a malformed booking field. It is returned before
// any store interaction happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

var timeOfDayRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidDate reports whether d is a well-formed "YYYY-MM-DD" calendar date.
func ValidDate(d string) bool {
	_, err := time.Parse("2006-01-02", d)
	return err == nil && len(d) == 10
}

// ValidTimeOfDay reports whether t matches "HH:MM" in 24-hour format.
func ValidTimeOfDay(t string) bool {
	return timeOfDayRe.MatchString(t)
}

// Validate checks the booking's own field combinations.
func (b *Booking) Validate() error {
	if b.BusinessID == "" {
		return ValidationError{Field: "business_id", Reason: "must not be empty"}
	}
	if b.CustomerID == "" {
		return ValidationError{Field: "customer_id", Reason: "must not be empty"}
	}
	if !ValidDate(b.Date) {
		return ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not a YYYY-MM-DD date", b.Date)}
	}
	if !ValidTimeOfDay(b.Time) {
		return ValidationError{Field: "time", Reason: fmt.Sprintf("%q is not a 24-hour HH:MM time", b.Time)}
	}
	if _, err := ParseBookingStatus(string(b.Status)); err != nil {
		return err
	}
	return nil
}
