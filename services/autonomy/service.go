// Package autonomy plans evenings on a user's behalf on a weekly schedule.
package autonomy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"slate/database/kv"
	"slate/models"
	"slate/services/events"
	"slate/services/notification"
	"slate/services/planner"
	"slate/services/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlanTTL is how long an autonomous plan record is kept.
const PlanTTL = 7 * 24 * time.Hour

type AutonomyService interface {
	SaveConfig(ctx context.Context, req ConfigRequest) (*models.AutonomyConfig, error)
	GetConfig(ctx context.Context, userID string) (*models.AutonomyConfig, error)
	CheckAll(ctx context.Context) (int, error)
	RunFor(ctx context.Context, userID string) (*models.AutonomyPlan, error)
	GetPlan(ctx context.Context, userID, date string) (*models.AutonomyPlan, error)
}

type DefaultAutonomyService struct {
	Store    kv.Store
	Planner  planner.PlannerService
	Profiles user.ProfileService
	Notify   notification.NotificationService
	// Conversations, when set, records the YES/CANCEL question so replies
	// can be answered.
	Conversations *notification.Conversations
	Logger        *zap.Logger
	Now           func() time.Time

	indexMu sync.Mutex
}

func NewAutonomyService(store kv.Store, p planner.PlannerService, profiles user.ProfileService,
	notify notification.NotificationService, logger *zap.Logger) *DefaultAutonomyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAutonomyService{
		Store:    store,
		Planner:  p,
		Profiles: profiles,
		Notify:   notify,
		Logger:   logger,
		Now:      time.Now,
	}
}

func (s *DefaultAutonomyService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// CheckAll plans for every enabled config that is due this hour and has no
// plan yet for its target evening. It returns how many plans were created.
// A failure for one user is logged and does not stop the others.
func (s *DefaultAutonomyService) CheckAll(ctx context.Context) (int, error) {
	ids, err := s.enabledUsers(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	created := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return created, ctx.Err()
		}
		cfg, err := s.GetConfig(ctx, id)
		if err != nil || cfg == nil {
			s.Logger.Warn("autonomy config unreadable", zap.String("userId", id), zap.Error(err))
			continue
		}
		target, due := DueTarget(*cfg, now)
		if !due {
			continue
		}
		existing, err := s.GetPlan(ctx, id, target.Format(dateKeyLayout))
		if err != nil {
			s.Logger.Warn("autonomy plan lookup failed", zap.String("userId", id), zap.Error(err))
			continue
		}
		if existing != nil {
			continue
		}
		if _, err := s.createPlan(ctx, *cfg, target); err != nil {
			s.Logger.Error("autonomous plan failed", zap.String("userId", id), zap.Error(err))
			continue
		}
		created++
	}
	s.Logger.Info("autonomy check complete", zap.Int("configs", len(ids)), zap.Int("created", created))
	return created, nil
}

// RunFor plans the user's next scheduled evening immediately, replacing any
// plan already stored for that date.
func (s *DefaultAutonomyService) RunFor(ctx context.Context, userID string) (*models.AutonomyPlan, error) {
	cfg, err := s.GetConfig(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrConfigNotFound
	}
	return s.createPlan(ctx, *cfg, NextTarget(*cfg, s.now()))
}

func (s *DefaultAutonomyService) GetPlan(ctx context.Context, userID, date string) (*models.AutonomyPlan, error) {
	var p models.AutonomyPlan
	found, err := s.Store.Get(ctx, planKey(userID, date), &p)
	if err != nil {
		return nil, fmt.Errorf("GetPlan: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &p, nil
}

func (s *DefaultAutonomyService) createPlan(ctx context.Context, cfg models.AutonomyConfig, target time.Time) (*models.AutonomyPlan, error) {
	profile := s.profile(ctx, cfg.UserID)
	prompt := BuildPrompt(cfg.Constraints, target)
	s.Logger.Info("planning autonomously", zap.String("userId", cfg.UserID), zap.String("prompt", prompt))

	plan := s.Planner.CreatePlan(ctx, prompt, profile, events.Discard)
	plan.UserID = cfg.UserID

	ap := &models.AutonomyPlan{
		ID:         uuid.New().String(),
		ConfigID:   cfg.ID,
		UserID:     cfg.UserID,
		TargetDate: target.Format(dateKeyLayout),
		Status:     models.AutonomyPlanPlanning,
		Plan:       *plan,
		CreatedAt:  s.now(),
	}
	if len(plan.Stops) > 0 {
		ap.Status = models.AutonomyPlanBooked
	}
	if err := s.savePlan(ctx, ap); err != nil {
		return nil, err
	}

	if profile == nil || profile.Phone == "" {
		return ap, nil
	}
	if err := s.notify(ctx, cfg, ap, profile.Phone, target); err != nil {
		s.Logger.Warn("autonomy notification failed", zap.String("userId", cfg.UserID), zap.Error(err))
		return ap, nil
	}
	if len(plan.Stops) > 0 {
		at := s.now()
		ap.Status = models.AutonomyPlanNotified
		ap.NotifiedAt = &at
		if err := s.savePlan(ctx, ap); err != nil {
			return nil, err
		}
	}
	return ap, nil
}

func (s *DefaultAutonomyService) savePlan(ctx context.Context, ap *models.AutonomyPlan) error {
	if err := s.Store.Set(ctx, planKey(ap.UserID, ap.TargetDate), ap, PlanTTL); err != nil {
		return fmt.Errorf("failed to save autonomy plan: %w", err)
	}
	return nil
}

func (s *DefaultAutonomyService) profile(ctx context.Context, userID string) *models.UserProfile {
	if s.Profiles == nil {
		return nil
	}
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrProfileNotFound) {
			s.Logger.Warn("profile lookup failed", zap.String("userId", userID), zap.Error(err))
		}
		return nil
	}
	return p
}

func (s *DefaultAutonomyService) notify(ctx context.Context, cfg models.AutonomyConfig, ap *models.AutonomyPlan, phone string, target time.Time) error {
	day := target.Format("Monday, January 2")
	plan := &ap.Plan
	if len(plan.Stops) == 0 {
		return s.Notify.QueueSMS(ctx, phone, fmt.Sprintf("Couldn't find anything great for %s. I'll keep looking.", day))
	}

	body := FormatMessage(cfg.AutonomyLevel, day, plan)
	dinner := plan.Stop(models.StopDinner)
	if s.Conversations == nil || dinner == nil {
		return s.Notify.QueueSMS(ctx, phone, body)
	}
	switch cfg.AutonomyLevel {
	case models.AutonomySuggest:
		return s.Conversations.Ask(ctx, phone, body, notification.PendingAction{
			Type: notification.ActionAcceptOpportunity,
			Data: map[string]string{"restaurantName": dinner.Restaurant.Name, "time": dinner.Time, "planId": plan.ID},
		})
	case models.AutonomyBookWithConfirm:
		return s.Conversations.Ask(ctx, phone, body, notification.PendingAction{
			Type: notification.ActionConfirmBooking,
			Data: map[string]string{"planId": plan.ID},
		})
	}
	return s.Notify.QueueSMS(ctx, phone, body)
}

// FormatMessage renders the SMS for a plan with at least one stop.
func FormatMessage(level models.AutonomyLevel, day string, plan *models.EveningPlan) string {
	dinner := plan.Stop(models.StopDinner)
	if dinner == nil {
		dinner = &plan.Stops[0]
	}
	drinks := plan.Stop(models.StopDrinks)
	r := dinner.Restaurant

	var b strings.Builder
	switch level {
	case models.AutonomyFullAuto:
		fmt.Fprintf(&b, "Your %s:\n\n", day)
		fmt.Fprintf(&b, "%s - %s\n%s\n", dinner.Time, r.Name, r.Location.Address)
		if dinner.Booking.ConfirmationNumber != "" {
			fmt.Fprintf(&b, "Conf: %s\n", dinner.Booking.ConfirmationNumber)
		}
		if drinks != nil {
			walk := 5
			if drinks.WalkingFromPrevious != nil {
				walk = drinks.WalkingFromPrevious.Minutes
			}
			fmt.Fprintf(&b, "\n%s - %s\n%d min walk after dinner\n", drinks.Time, drinks.Restaurant.Name, walk)
		}
		b.WriteString("\nEnjoy.")
	case models.AutonomyBookWithConfirm:
		fmt.Fprintf(&b, "Booked your %s:\n\n", day)
		fmt.Fprintf(&b, "%s %s\n%s\n", dinner.Time, r.Name, r.Location.Address)
		if drinks != nil {
			fmt.Fprintf(&b, "Then %s %s\n", drinks.Time, drinks.Restaurant.Name)
		}
		b.WriteString("\nLook good? Reply CANCEL if plans changed.")
	default:
		fmt.Fprintf(&b, "Found something for %s:\n\n", day)
		fmt.Fprintf(&b, "%s %s\n", dinner.Time, r.Name)
		score := r.VibeMatchScore
		if score == 0 {
			score = 85
		}
		fmt.Fprintf(&b, "%d%% your vibe\n", score)
		if drinks != nil {
			fmt.Fprintf(&b, "+ %s after\n", drinks.Restaurant.Name)
		}
		b.WriteString("\nWant it? Reply YES to book.")
	}
	return b.String()
}
