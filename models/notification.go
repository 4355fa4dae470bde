package models

// ReminderPayload is the asynq task payload for a delayed notification,
// keyed by the booking it belongs to so restarts never lose it.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	Target    string `json:"target"` // "customer" or "business"
	ID        string `json:"id"`     // recipient id
	Title     string `json:"title"`
	Body      string `json:"body"`
	FireDate  string `json:"fireDate"`
}
