// Package tasks defines the background jobs run by the asynq worker.
package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeSMSSend        = "sms:send"
	TypeAutonomyCheck  = "autonomy:check"
	TypeAutonomyRunFor = "autonomy:run"
)

type SMSPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// AutonomyRunPayload asks the worker to plan one user's evening.
type AutonomyRunPayload struct {
	UserID string `json:"userId"`
}

func NewSMSTask(to, body string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SMSPayload{To: to, Body: body})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSMSSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// NewAutonomyCheckTask is registered with the scheduler; it carries no payload.
func NewAutonomyCheckTask() *asynq.Task {
	return asynq.NewTask(TypeAutonomyCheck, nil)
}

func NewAutonomyRunTask(userID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(AutonomyRunPayload{UserID: userID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAutonomyRunFor, b)
	opts := []asynq.Option{asynq.MaxRetry(2), asynq.Timeout(5 * time.Minute)}

	return task, opts, nil
}
