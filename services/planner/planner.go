package planner

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"slate/models"
	"slate/services/availability"
	"slate/services/booking"
	"slate/services/events"
	"slate/services/intent"
	"slate/services/vibe"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	candidateLimit = 5
	nearbyLimit    = 10

	// Score given to every venue when nothing is known about the user's taste.
	defaultVibeScore  = 70
	defaultVibeReason = "Great option"
)

var tracer = otel.Tracer("slate/planner")

// follow-up stops after dinner
type nearbySearch struct {
	stop       models.StopType
	event      models.EventType
	message    string
	term       string
	categories []string // a venue must carry one of these
	maxMiles   float64
	offset     int // minutes after the requested dinner time
}

var (
	dessertSearch = nearbySearch{
		stop:       models.StopDessert,
		event:      models.EventDessertSearch,
		message:    "Finding dessert nearby...",
		term:       "dessert bakery ice cream",
		categories: []string{"dessert", "bakeries", "ice cream", "gelato", "patisserie"},
		maxMiles:   0.4,
		offset:     90,
	}
	drinksSearch = nearbySearch{
		stop:       models.StopDrinks,
		event:      models.EventDrinksSearch,
		message:    "Finding drinks nearby...",
		term:       "cocktail bar lounge",
		categories: []string{"cocktail", "lounge", "wine bar", "pubs", "beer", "speakeasies"},
		maxMiles:   0.5,
		offset:     120,
	}
)

// DefaultPlannerService runs one planning request end to end.
type DefaultPlannerService struct {
	Parser   intent.Parser
	Searcher availability.Searcher
	Scorer   *vibe.Scorer
	Builder  booking.MatrixBuilder
	Selector booking.Selector
	Archive  PlanArchive // optional
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewPlannerService wires the planner against a single provider.
func NewPlannerService(parser intent.Parser, provider availability.Provider, scorer *vibe.Scorer, archive PlanArchive, logger *zap.Logger) *DefaultPlannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultPlannerService{
		Parser:   parser,
		Searcher: provider,
		Scorer:   scorer,
		Builder:  booking.NewMatrixBuilder(provider, logger),
		Selector: booking.NewSelector(provider, logger),
		Archive:  archive,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *DefaultPlannerService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// CreatePlan always returns a plan. Failures are reported as events and a failed status.
func (s *DefaultPlannerService) CreatePlan(ctx context.Context, prompt string, profile *models.UserProfile, sink events.Sink) (plan *models.EveningPlan) {
	ctx, span := tracer.Start(ctx, "planner.CreatePlan")
	defer span.End()

	em := events.NewEmitter(sink)
	em.Now = s.now

	userID := "anonymous"
	if profile != nil && profile.ID != "" {
		userID = profile.ID
	}
	plan = &models.EveningPlan{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    models.PlanPlanning,
		Prompt:    prompt,
		Stops:     []models.PlanStop{},
		CreatedAt: s.now(),
	}

	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("planner panic", zap.Any("panic", r), zap.String("planID", plan.ID))
			span.SetStatus(codes.Error, fmt.Sprint(r))
			em.Emit(models.EventError, "Something went wrong", fmt.Sprint(r))
			plan.Status = models.PlanFailed
		}
		span.SetAttributes(
			attribute.String("plan.status", string(plan.Status)),
			attribute.Int("plan.stops", len(plan.Stops)),
		)
		s.archive(ctx, plan)
	}()

	em.Emit(models.EventIntentParsed, "Understanding your request...", nil)
	in := s.Parser.Parse(ctx, prompt)
	if in.PartySize < 1 {
		in.PartySize = intent.DefaultPartySize
	}
	if in.Time == "" {
		in.Time = models.DefaultDinnerTime
	}
	plan.ParsedIntent = in

	if strings.TrimSpace(in.Location) == "" {
		em.Emit(models.EventError, ErrMissingLocation.Message, nil)
		plan.Status = models.PlanFailed
		return plan
	}

	what := strings.Join(in.Cuisines, "/")
	if what == "" {
		what = "dinner"
	}
	em.Emit(models.EventIntentParsed,
		fmt.Sprintf("Got it: %s for %d in %s", what, in.PartySize, in.Location), in)

	em.Emit(models.EventSearchingRestaurants, "Finding the perfect spots...", nil)
	candidates := s.findDinner(ctx, in, profile)
	em.Emit(models.EventRestaurantsFound, fmt.Sprintf("Found %d restaurants", len(candidates)), candidates)

	plan.Status = models.PlanBooking
	slots := booking.GenerateTimeSlots(in.Time)
	plan.Matrix = s.Builder.BuildMatrix(ctx, candidates, slots, in, em)

	dinner := s.Selector.SelectAndBook(ctx, plan.Matrix, in, models.StopDinner, em)
	if dinner != nil {
		plan.Stops = append(plan.Stops, *dinner)

		prev := *dinner
		anchor := followUpAnchor(in.Time, dinner.Time)
		for _, follow := range s.followUps(in) {
			em.Emit(follow.event, follow.message, nil)
			stop := s.findNearby(ctx, in, plan.Stops, prev, anchor, follow, em)
			if stop == nil {
				continue
			}
			plan.Stops = append(plan.Stops, *stop)
			prev = *stop
		}
	}

	plan.TotalEstimatedCost = EstimateCost(plan.Stops, in.PartySize)
	plan.Status = models.DeriveStatus(plan.Stops)

	msg := "Plan ready - complete bookings to confirm"
	switch plan.Status {
	case models.PlanConfirmed:
		msg = "Your evening is set!"
	case models.PlanFailed:
		msg = "Couldn't book anything for this request"
	}
	em.Emit(models.EventPlanComplete, msg, plan)
	return plan
}

func (s *DefaultPlannerService) followUps(in models.ParsedIntent) []nearbySearch {
	var out []nearbySearch
	if in.IncludeDessert {
		out = append(out, dessertSearch)
	}
	if in.IncludeDrinks {
		out = append(out, drinksSearch)
	}
	return out
}

// findDinner searches, scores and orders dinner candidates by vibe match.
// A search error counts as no results.
func (s *DefaultPlannerService) findDinner(ctx context.Context, in models.ParsedIntent, profile *models.UserProfile) []models.Restaurant {
	ctx, span := tracer.Start(ctx, "planner.findDinner")
	defer span.End()

	term := strings.Join(in.Cuisines, " ")
	if term == "" {
		term = "restaurant"
	}
	params := availability.SearchParams{
		Term:     term,
		Location: in.Location,
		Price:    intent.MapToPrice(in),
		Limit:    candidateLimit,
		SortBy:   "rating",
	}
	found, err := s.Searcher.Search(ctx, params)
	if err != nil {
		s.Logger.Warn("dinner search failed", zap.String("location", in.Location), zap.Error(err))
	}
	if len(found) == 0 && params.Price != "" {
		params.Price = ""
		found, err = s.Searcher.Search(ctx, params)
		if err != nil {
			s.Logger.Warn("dinner search without price failed", zap.String("location", in.Location), zap.Error(err))
		}
	}
	span.SetAttributes(attribute.Int("candidates", len(found)))

	user, personalised := userVector(in, profile)
	out := make([]models.Restaurant, len(found))
	for i, r := range found {
		v := s.scoreRestaurant(ctx, r)
		r.VibeVector = &v
		if personalised {
			score, reasons := vibe.Match(user, v)
			r.VibeMatchScore = score
			r.VibeMatchReason = vibe.Explain(r.Name, reasons)
		} else {
			r.VibeMatchScore = defaultVibeScore
			r.VibeMatchReason = defaultVibeReason
		}
		out[i] = r
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].VibeMatchScore > out[j].VibeMatchScore })
	return out
}

func (s *DefaultPlannerService) scoreRestaurant(ctx context.Context, r models.Restaurant) models.VibeVector {
	if s.Scorer == nil {
		return vibe.Heuristic(r)
	}
	return s.Scorer.ScoreRestaurant(ctx, r)
}

// userVector prefers the stored profile, then vibe words from the request.
func userVector(in models.ParsedIntent, profile *models.UserProfile) (models.VibeVector, bool) {
	if profile != nil {
		return profile.VibeVector, true
	}
	if len(in.VibeKeywords) > 0 {
		return vibe.FromKeywords(in.VibeKeywords), true
	}
	return models.NeutralVibe(), false
}

// followUpAnchor is the clock that dessert and drinks are offset from: the
// requested time, or the booked dinner slot when the request had no readable time.
func followUpAnchor(requested, booked string) string {
	if _, _, ok := booking.ParseClock(requested); ok {
		return requested
	}
	return booked
}

// findNearby picks the closest venue within walking range of prev that is not already in the plan.
// These stops are walk-ins and are recorded as confirmed, offset from anchor.
func (s *DefaultPlannerService) findNearby(
	ctx context.Context,
	in models.ParsedIntent,
	planned []models.PlanStop,
	prev models.PlanStop,
	anchor string,
	kind nearbySearch,
	em *events.Emitter,
) *models.PlanStop {
	ctx, span := tracer.Start(ctx, "planner.findNearby",
		trace.WithAttributes(attribute.String("stop.type", string(kind.stop))))
	defer span.End()

	found, err := s.Searcher.Search(ctx, availability.SearchParams{
		Term:     kind.term,
		Location: in.Location,
		Limit:    nearbyLimit,
		SortBy:   "distance",
	})
	if err != nil {
		s.Logger.Warn("nearby search failed", zap.String("stop", string(kind.stop)), zap.Error(err))
		return nil
	}

	used := make(map[string]bool, len(planned))
	for _, p := range planned {
		used[p.Restaurant.ID] = true
	}
	var (
		best      *models.Restaurant
		bestMiles = math.Inf(1)
	)
	for i := range found {
		r := &found[i]
		if used[r.ID] || !hasAnyCategory(*r, kind.categories) {
			continue
		}
		d := haversineMiles(prev.Restaurant.Location.Coordinates, r.Location.Coordinates)
		if d < kind.maxMiles && d < bestMiles {
			best, bestMiles = r, d
		}
	}
	if best == nil {
		s.Logger.Info("no venue within walking distance",
			zap.String("stop", string(kind.stop)), zap.Float64("maxMiles", kind.maxMiles))
		return nil
	}

	walk := walkingInfo(bestMiles)
	em.Emit(models.EventWalkingRouteCalculated,
		fmt.Sprintf("%d min walk to %s", walk.Minutes, best.Name),
		map[string]any{"from": prev.Restaurant.Name, "to": best.Name, "miles": bestMiles, "walking": walk})

	at := booking.AddMinutes(anchor, kind.offset)
	return &models.PlanStop{
		Type:       kind.stop,
		Restaurant: *best,
		Time:       at,
		Booking: models.BookingAttempt{
			RestaurantID:   best.ID,
			RestaurantName: best.Name,
			RequestedTime:  at,
			RequestedDate:  in.Date,
			PartySize:      in.PartySize,
			Status:         models.BookingConfirmed,
			AttemptedAt:    s.now(),
		},
		WalkingFromPrevious: walk,
	}
}

func hasAnyCategory(r models.Restaurant, cats []string) bool {
	for _, c := range cats {
		if r.HasCategory(c) {
			return true
		}
	}
	return false
}

func (s *DefaultPlannerService) archive(ctx context.Context, plan *models.EveningPlan) {
	if s.Archive == nil {
		return
	}
	if err := s.Archive.Save(context.WithoutCancel(ctx), plan); err != nil {
		s.Logger.Warn("failed to archive plan", zap.String("planID", plan.ID), zap.Error(err))
	}
}
