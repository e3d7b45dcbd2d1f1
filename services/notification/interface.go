package notification

import (
	"context"

	"github.com/hibiken/asynq"
)

// NotificationService delivers text messages.
type NotificationService interface {
	// SendSMS delivers immediately.
	SendSMS(ctx context.Context, to, body string) error
	// QueueSMS hands delivery to the background worker.
	QueueSMS(ctx context.Context, to, body string) error
}

// Sender is an SMS gateway.
type Sender interface {
	Send(ctx context.Context, to, body string) (sid string, err error)
}

// TaskEnqueuer is satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
