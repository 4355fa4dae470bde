package notification

import "context"

// NotificationService is the fire-and-forget delivery boundary. Callers log
// and swallow failures; delivery never affects booking correctness.
type NotificationService interface {
	SendCustomerPush(ctx context.Context, customerID, title, body string, data map[string]string) error
	SendBusinessPush(ctx context.Context, businessID, title, body string, data map[string]string) error
}
