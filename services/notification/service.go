package notification

import (
	"context"
	"fmt"

	"slate/services/tasks"

	"go.uber.org/zap"
)

type DefaultNotificationService struct {
	Sender Sender
	Queue  TaskEnqueuer // nil sends inline
	Logger *zap.Logger
}

func NewDefaultNotificationService(sender Sender, queue TaskEnqueuer, logger *zap.Logger) (*DefaultNotificationService, error) {
	if sender == nil {
		return nil, fmt.Errorf("notification service initialization error: sender is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{Sender: sender, Queue: queue, Logger: logger}, nil
}

func (s *DefaultNotificationService) SendSMS(ctx context.Context, to, body string) error {
	sid, err := s.Sender.Send(ctx, to, body)
	if err != nil {
		return fmt.Errorf("SendSMS: %w", err)
	}
	s.Logger.Info("sms sent", zap.String("to", maskPhone(to)), zap.String("sid", sid))
	return nil
}

func (s *DefaultNotificationService) QueueSMS(ctx context.Context, to, body string) error {
	if s.Queue == nil {
		return s.SendSMS(ctx, to, body)
	}
	task, opts, err := tasks.NewSMSTask(to, body)
	if err != nil {
		return fmt.Errorf("QueueSMS: %w", err)
	}
	info, err := s.Queue.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("QueueSMS: enqueue failed: %w", err)
	}
	s.Logger.Debug("sms queued", zap.String("to", maskPhone(to)), zap.String("task", info.ID))
	return nil
}

// maskPhone keeps the last four digits for logs.
func maskPhone(p string) string {
	if len(p) <= 4 {
		return p
	}
	return "***" + p[len(p)-4:]
}
