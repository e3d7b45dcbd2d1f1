package planRepo

import (
	"context"
	"sort"
	"sync"

	"slate/models"
)

// MemoryPlanRepo is a process-local PlanRepository for tests, the CLI and
// deployments without Mongo. Nothing expires.
type MemoryPlanRepo struct {
	mu    sync.RWMutex
	plans map[string]models.EveningPlan
}

func NewMemoryPlanRepo() *MemoryPlanRepo {
	return &MemoryPlanRepo{plans: map[string]models.EveningPlan{}}
}

func (r *MemoryPlanRepo) Save(_ context.Context, plan *models.EveningPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *MemoryPlanRepo) Get(_ context.Context, id string) (*models.EveningPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, ErrPlanNotFound
	}
	return &p, nil
}

func (r *MemoryPlanRepo) ListByUser(_ context.Context, userID string, limit int64) ([]models.EveningPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.EveningPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
