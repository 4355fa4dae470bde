package notification

import (
	"context"
	"fmt"

	businessRepo "salonhub/database/repository/business"
	customerRepo "salonhub/database/repository/customer"
	"salonhub/utils"

	"firebase.google.com/go/v4/messaging"
)

// FCMNotificationService delivers pushes over Firebase Cloud Messaging.
type FCMNotificationService struct {
	Customers  customerRepo.CustomerRepository
	Businesses businessRepo.BusinessRepository
}

func NewFCMNotificationService(
	customers customerRepo.CustomerRepository,
	businesses businessRepo.BusinessRepository,
) (*FCMNotificationService, error) {
	if customers == nil || businesses == nil {
		return nil, fmt.Errorf("notification service initialization error: customer or business repository is nil")
	}
	return &FCMNotificationService{Customers: customers, Businesses: businesses}, nil
}

// SendCustomerPush looks up a customer's FCM token and sends a push.
func (s *FCMNotificationService) SendCustomerPush(
	ctx context.Context,
	customerID, title, body string,
	data map[string]string,
) error {
	c, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("SendCustomerPush: could not find customer %s: %w", customerID, err)
	}
	if c.FCMToken == "" {
		return fmt.Errorf("SendCustomerPush: customer %s has no FCM token", customerID)
	}

	if _, ok := data["role"]; !ok {
		data["role"] = "customer"
	}

	msg := &messaging.Message{
		Token: c.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendCustomerPush: failed to send FCM message: %w", err)
	}
	return nil
}

// SendBusinessPush looks up a business's FCM token and sends a high-priority push.
func (s *FCMNotificationService) SendBusinessPush(
	ctx context.Context,
	businessID, title, body string,
	data map[string]string,
) error {
	b, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return fmt.Errorf("SendBusinessPush: could not find business %s: %w", businessID, err)
	}
	if b.FCMToken == "" {
		return fmt.Errorf("SendBusinessPush: business %s has no FCM token", businessID)
	}

	if _, ok := data["role"]; !ok {
		data["role"] = "business"
	}

	msg := &messaging.Message{
		Token: b.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendBusinessPush: failed to send FCM message: %w", err)
	}
	return nil
}
