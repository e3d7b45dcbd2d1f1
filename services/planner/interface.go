// Package planner builds an evening plan from a free-text request.
package planner

import (
	"context"

	"slate/models"
	"slate/services/events"
)

type PlannerService interface {
	CreatePlan(ctx context.Context, prompt string, profile *models.UserProfile, sink events.Sink) *models.EveningPlan
}

// PlanArchive keeps finished plans for later lookup.
type PlanArchive interface {
	Save(ctx context.Context, plan *models.EveningPlan) error
	Get(ctx context.Context, id string) (*models.EveningPlan, error)
}
