package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"salonhub/config"
	"salonhub/models"

	"github.com/hibiken/asynq"
)

const TypeSendReminder = "reminder:send"

// NewReminderTask builds an asynq task carrying a reminder payload,
// scheduled for fireAt. Tasks are keyed by booking id so a duplicate enqueue
// for the same booking collapses into one.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSendReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
	}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues review reminders into the Redis-backed
// asynq queue. The queue entry survives process restarts.
type AsynqReminderScheduler struct {
	client *asynq.Client
}

func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

// ScheduleReviewPrompt enqueues a delayed push asking the customer to review
// their visit.
func (s *AsynqReminderScheduler) ScheduleReviewPrompt(ctx context.Context, booking *models.Booking, fireAt time.Time) error {
	payload := models.ReminderPayload{
		BookingID: booking.ID,
		Target:    "customer",
		ID:        booking.CustomerID,
		Title:     "How was your visit?",
		Body:      fmt.Sprintf("Leave a review for your %s appointment.", booking.Service.ServiceName),
		FireDate:  fireAt.Format(time.RFC3339),
	}

	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if err == asynq.ErrDuplicateTask {
			return nil
		}
		return fmt.Errorf("failed to enqueue reminder task: %w", err)
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.client.Close()
}
