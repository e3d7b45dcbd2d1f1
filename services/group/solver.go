// Package group reconciles several diners' constraints into one restaurant
// and manages the shared sessions they join.
package group

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"slate/models"
	"slate/services/availability"
	"slate/services/events"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	candidatePool  = 50
	baseScore      = 100
	dietaryPenalty = 30
	excludePenalty = 50
	budgetPenalty  = 20
	wantBonus      = 15
	fallbackCount  = 5
	dollarsPerSign = 25
)

var tracer = otel.Tracer("slate/group")

// Solver scores a candidate pool against every participant. It keeps no state between calls.
type Solver struct {
	Searcher availability.Searcher
	Logger   *zap.Logger
}

func NewSolver(searcher availability.Searcher, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{Searcher: searcher, Logger: logger}
}

type scored struct {
	restaurant models.Restaurant
	score      int
	index      int
}

func (s *Solver) Solve(ctx context.Context, session models.GroupSession, sink events.Sink) models.SolverResult {
	ctx, span := tracer.Start(ctx, "group.Solve")
	defer span.End()
	em := events.NewEmitter(sink)

	participants := uniqueParticipants(session.Participants)
	result := models.SolverResult{Candidates: []models.Restaurant{}, EliminationLog: []models.EliminationStep{}}

	em.Emit(models.EventSolvingStarted,
		fmt.Sprintf("Finding a place that works for all %d people...", len(participants)), nil)

	pool, err := s.Searcher.Search(ctx, availability.SearchParams{
		Term:     "restaurant",
		Location: session.Location,
		Limit:    candidatePool,
	})
	if err != nil {
		s.Logger.Error("group candidate search failed", zap.String("session", session.ID), zap.Error(err))
		em.Emit(models.EventSolutionFound, "Could not search restaurants right now.", map[string]any{"solution": nil})
		return result
	}
	if len(pool) == 0 {
		em.Emit(models.EventSolutionFound,
			fmt.Sprintf("No restaurants found in %s. Try a different location.", session.Location),
			map[string]any{"solution": nil})
		return result
	}
	span.SetAttributes(attribute.Int("candidates", len(pool)), attribute.Int("participants", len(participants)))

	em.Emit(models.EventEliminationStep,
		fmt.Sprintf("Starting with %d restaurants in %s", len(pool), session.Location),
		map[string]any{"remaining": len(pool)})

	items := make([]scored, len(pool))
	for i, r := range pool {
		items[i] = scored{restaurant: r, score: baseScore, index: i}
	}

	for _, p := range participants {
		penalized := 0
		for i := range items {
			if pen := penalty(items[i].restaurant, p.Constraints); pen > 0 {
				items[i].score -= pen
				penalized++
			}
		}
		step := models.EliminationStep{
			Constraint:      SummarizeConstraints(p.Constraints),
			ParticipantName: p.Name,
			EliminatedCount: penalized,
			RemainingCount:  countPositive(items),
		}
		result.EliminationLog = append(result.EliminationLog, step)
		em.Emit(models.EventEliminationStep,
			fmt.Sprintf("%s's preferences: %d restaurants scored lower", p.Name, penalized), step)
	}

	sort.SliceStable(items, func(i, j int) bool { return better(items[i], items[j]) })

	viable := items[:countPositive(items)]
	if len(viable) == 0 {
		viable = items[:min(fallbackCount, len(items))]
	}
	for _, v := range viable[:min(fallbackCount, len(viable))] {
		result.Candidates = append(result.Candidates, v.restaurant)
	}

	best := viable[0]
	solution := best.restaurant
	result.Solution = &solution
	result.SatisfactionScore = max(0, min(100, best.score))

	em.Emit(models.EventSolutionFound,
		fmt.Sprintf("Found it: %s works for everyone!", solution.Name),
		map[string]any{"solution": solution, "satisfactionScore": result.SatisfactionScore})
	return result
}

// penalty is one participant's net adjustment for r. Bonuses only offset
// that participant's own penalties, so the result is never negative.
func penalty(r models.Restaurant, c models.GroupConstraints) int {
	yes, no := splitCuisines(c.CuisineYes, c.CuisineNo)

	pen := 0
	for _, d := range c.Dietary {
		if !MatchesDietary(r, d) {
			pen += dietaryPenalty
		}
	}
	for _, n := range no {
		if r.HasCategory(n) {
			pen += excludePenalty
		}
	}
	if c.MaxPrice > 0 {
		ceiling := (c.MaxPrice + dollarsPerSign - 1) / dollarsPerSign
		if r.PriceOrdinal() > ceiling {
			pen += budgetPenalty
		}
	}
	for _, y := range yes {
		if r.HasCategory(y) {
			pen -= wantBonus
		}
	}
	return max(0, pen)
}

// splitCuisines drops any cuisine that appears on both lists.
func splitCuisines(yes, no []string) ([]string, []string) {
	inYes := make(map[string]bool, len(yes))
	for _, y := range yes {
		inYes[strings.ToLower(strings.TrimSpace(y))] = true
	}
	inNo := make(map[string]bool, len(no))
	for _, n := range no {
		inNo[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var outYes, outNo []string
	for k := range inYes {
		if k != "" && !inNo[k] {
			outYes = append(outYes, k)
		}
	}
	for k := range inNo {
		if k != "" && !inYes[k] {
			outNo = append(outNo, k)
		}
	}
	return outYes, outNo
}

func better(a, b scored) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.restaurant.Rating != b.restaurant.Rating {
		return a.restaurant.Rating > b.restaurant.Rating
	}
	if a.restaurant.ReviewCount != b.restaurant.ReviewCount {
		return a.restaurant.ReviewCount > b.restaurant.ReviewCount
	}
	return a.index < b.index
}

func countPositive(items []scored) int {
	n := 0
	for _, it := range items {
		if it.score > 0 {
			n++
		}
	}
	return n
}

// uniqueParticipants keeps the first entry per ID, in join order.
func uniqueParticipants(ps []models.GroupParticipant) []models.GroupParticipant {
	seen := make(map[string]bool, len(ps))
	out := make([]models.GroupParticipant, 0, len(ps))
	for _, p := range ps {
		if p.ID != "" {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
		}
		out = append(out, p)
	}
	return out
}
