package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"slate/config"
	"slate/services/autonomy"
	"slate/services/notification"
	"slate/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// AutonomyCheckSpec runs the autonomy check at the top of every hour.
const AutonomyCheckSpec = "0 * * * *"

// RedisOpt is the asynq connection for the task queue database.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// Worker owns the asynq server and the periodic scheduler.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// NewWorker wires the task handlers. autonomySvc may be nil, in which case
// autonomy tasks are neither scheduled nor handled.
func NewWorker(notifSvc notification.NotificationService, autonomySvc autonomy.AutonomyService, logger *zap.Logger) *Worker {
	redisOpts := RedisOpt()
	srv := asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
		Logger:      logger.Sugar(),
	})

	mux := NewServeMux(notifSvc, autonomySvc, logger)

	var scheduler *asynq.Scheduler
	if autonomySvc != nil {
		scheduler = asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Logger: logger.Sugar()})
	}
	return &Worker{server: srv, scheduler: scheduler, mux: mux, logger: logger}
}

// NewServeMux maps task types to handlers.
func NewServeMux(notifSvc notification.NotificationService, autonomySvc autonomy.AutonomyService, logger *zap.Logger) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSMSSend, HandleSMSTask(notifSvc, logger))
	if autonomySvc != nil {
		mux.HandleFunc(tasks.TypeAutonomyCheck, HandleAutonomyCheckTask(autonomySvc, logger))
		mux.HandleFunc(tasks.TypeAutonomyRunFor, HandleAutonomyRunTask(autonomySvc, logger))
	}
	return mux
}

// Start runs the server in the background, retrying a failed start with a
// growing delay.
func (w *Worker) Start() error {
	if w.scheduler != nil {
		if _, err := w.scheduler.Register(AutonomyCheckSpec, tasks.NewAutonomyCheckTask()); err != nil {
			return fmt.Errorf("failed to register autonomy schedule: %w", err)
		}
		if err := w.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}

	go func() {
		w.logger.Info("Starting async worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.server.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Worker failed to start",
				zap.Int("attempt", attempts), zap.Int("max", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Max retry attempts reached; background tasks disabled")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
	return nil
}

func (w *Worker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	w.server.Shutdown()
}

func HandleSMSTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SMSPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid sms payload", zap.Error(err))
			return fmt.Errorf("sms payload: %v: %w", err, asynq.SkipRetry)
		}
		if p.To == "" {
			return fmt.Errorf("sms payload has no recipient: %w", asynq.SkipRetry)
		}
		if err := notifSvc.SendSMS(ctx, p.To, p.Body); err != nil {
			logger.Warn("SMS delivery failed; will retry", zap.Error(err))
			return err
		}
		return nil
	}
}

func HandleAutonomyCheckTask(svc autonomy.AutonomyService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := svc.CheckAll(ctx)
		if err != nil {
			logger.Error("Autonomy check failed", zap.Error(err))
			return err
		}
		logger.Debug("Autonomy check done", zap.Int("plansCreated", n))
		return nil
	}
}

func HandleAutonomyRunTask(svc autonomy.AutonomyService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.AutonomyRunPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil || p.UserID == "" {
			return fmt.Errorf("autonomy payload invalid: %w", asynq.SkipRetry)
		}
		plan, err := svc.RunFor(ctx, p.UserID)
		if errors.Is(err, autonomy.ErrConfigNotFound) {
			return fmt.Errorf("user %s: %v: %w", p.UserID, err, asynq.SkipRetry)
		}
		if err != nil {
			return err
		}
		logger.Info("Autonomous plan created",
			zap.String("userId", p.UserID), zap.String("targetDate", plan.TargetDate), zap.String("status", string(plan.Status)))
		return nil
	}
}
