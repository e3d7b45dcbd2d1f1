package group

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"slate/database/kv"
	"slate/models"
	"slate/services/availability"
	"slate/services/events"
	"slate/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionTTL is how long a group session lives after creation.
const SessionTTL = 24 * time.Hour

type GroupSessionService interface {
	Create(ctx context.Context, req CreateSessionRequest) (*models.GroupSession, error)
	Get(ctx context.Context, id string) (*models.GroupSession, error)
	Join(ctx context.Context, id string, req JoinRequest) (*models.GroupParticipant, *models.GroupSession, error)
	UpdateConstraints(ctx context.Context, id, participantID string, c models.GroupConstraints) (*models.GroupSession, error)
	Solve(ctx context.Context, id string, sink events.Sink) (*models.SolverResult, *models.GroupSession, error)
	BookSolution(ctx context.Context, id string, sink events.Sink) (*models.GroupSession, error)
	Invite(ctx context.Context, id string, phones []string) error
}

type CreateSessionRequest struct {
	CreatorName  string `json:"creatorName"`
	CreatorPhone string `json:"creatorPhone,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location"`
}

type JoinRequest struct {
	Name        string                   `json:"name"`
	Phone       string                   `json:"phone,omitempty"`
	Constraints *models.GroupConstraints `json:"constraints,omitempty"`
}

// DefaultGroupSessionService keeps each session as one record in the KV store.
// Updates to the same session are serialised within this process only.
type DefaultGroupSessionService struct {
	Store         kv.Store
	Solver        *Solver
	Booker        availability.Booker
	Notify        notification.NotificationService // optional
	Conversations *notification.Conversations      // optional; lets invitees reply by SMS
	BaseURL       string
	Logger        *zap.Logger
	Now           func() time.Time

	locks keyedMutex
}

func sessionKey(id string) string { return "group:" + id }

func (s *DefaultGroupSessionService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultGroupSessionService) Create(ctx context.Context, req CreateSessionRequest) (*models.GroupSession, error) {
	var missing []string
	for _, f := range []struct{ name, val string }{
		{"creatorName", req.CreatorName}, {"date", req.Date}, {"time", req.Time}, {"location", req.Location},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, NewSessionError(CodeInvalid, "Missing required fields: "+strings.Join(missing, ", "))
	}

	now := s.now()
	creatorID := uuid.New().String()
	session := &models.GroupSession{
		ID:        uuid.New().String()[:8],
		CreatorID: creatorID,
		Status:    models.GroupCollecting,
		Date:      req.Date,
		Time:      req.Time,
		Location:  strings.TrimSpace(req.Location),
		Participants: []models.GroupParticipant{{
			ID:          creatorID,
			Name:        strings.TrimSpace(req.CreatorName),
			Phone:       req.CreatorPhone,
			Constraints: models.DefaultConstraints(),
			JoinedAt:    now,
		}},
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err := s.Store.Set(ctx, sessionKey(session.ID), session, SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store group session: %w", err)
	}
	s.Logger.Info("group session created", zap.String("session", session.ID), zap.String("location", session.Location))
	return session, nil
}

func (s *DefaultGroupSessionService) Get(ctx context.Context, id string) (*models.GroupSession, error) {
	var session models.GroupSession
	found, err := s.Store.Get(ctx, sessionKey(id), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to load group session: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// save re-stores the session for whatever remains of its original lifetime.
func (s *DefaultGroupSessionService) save(ctx context.Context, session *models.GroupSession) error {
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionNotFound
	}
	if err := s.Store.Set(ctx, sessionKey(session.ID), session, ttl); err != nil {
		return fmt.Errorf("failed to store group session: %w", err)
	}
	return nil
}

// update runs fn on the current session under the session's lock and saves the result.
func (s *DefaultGroupSessionService) update(ctx context.Context, id string, fn func(*models.GroupSession) error) (*models.GroupSession, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *DefaultGroupSessionService) Join(ctx context.Context, id string, req JoinRequest) (*models.GroupParticipant, *models.GroupSession, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, nil, NewSessionError(CodeInvalid, "Name is required")
	}
	c := models.DefaultConstraints()
	if req.Constraints != nil {
		c = normalizeConstraints(*req.Constraints)
	}
	participant := models.GroupParticipant{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       req.Phone,
		Constraints: c,
		JoinedAt:    s.now(),
	}

	session, err := s.update(ctx, id, func(session *models.GroupSession) error {
		if session.Status != models.GroupCollecting {
			return ErrNotCollecting
		}
		session.Participants = append(session.Participants, participant)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.Logger.Info("participant joined", zap.String("session", id), zap.Int("participants", len(session.Participants)))
	return &participant, session, nil
}

func (s *DefaultGroupSessionService) UpdateConstraints(ctx context.Context, id, participantID string, c models.GroupConstraints) (*models.GroupSession, error) {
	return s.update(ctx, id, func(session *models.GroupSession) error {
		if session.Status == models.GroupBooked {
			return ErrAlreadyBooked
		}
		p := session.Participant(participantID)
		if p == nil {
			return ErrParticipantNotFound
		}
		p.Constraints = normalizeConstraints(c)
		return nil
	})
}

// Solve runs the solver over the session. The session is locked for the duration,
// and ends solved when a restaurant was found or back to collecting otherwise.
func (s *DefaultGroupSessionService) Solve(ctx context.Context, id string, sink events.Sink) (*models.SolverResult, *models.GroupSession, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if session.Status == models.GroupBooked {
		return nil, nil, ErrAlreadyBooked
	}
	prev := session.Status
	session.Status = models.GroupSolving
	if err := s.save(ctx, session); err != nil {
		return nil, nil, err
	}

	result, err := s.runSolver(ctx, session, sink)
	if err != nil {
		session.Status = prev
		if serr := s.save(context.WithoutCancel(ctx), session); serr != nil {
			s.Logger.Error("Failed to restore session after solver failure", zap.String("sessionId", id), zap.Error(serr))
		}
		return nil, nil, err
	}

	session.Solution = result.Solution
	session.SatisfactionScore = result.SatisfactionScore
	session.EliminationLog = result.EliminationLog
	session.Status = models.GroupCollecting
	if result.Solution != nil {
		session.Status = models.GroupSolved
	}
	if err := s.save(context.WithoutCancel(ctx), session); err != nil {
		return &result, nil, err
	}
	s.notifyAll(ctx, session, notification.GroupResult(session))
	return &result, session, nil
}

// runSolver turns a solver panic into an error so the session is never left solving.
func (s *DefaultGroupSessionService) runSolver(ctx context.Context, session *models.GroupSession, sink events.Sink) (result models.SolverResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Error("Group solver panicked", zap.String("sessionId", session.ID), zap.Any("panic", r))
			events.NewEmitter(sink).Emit(models.EventError, "Something went wrong while finding a restaurant", nil)
			err = errSolverFailed
		}
	}()
	return s.Solver.Solve(ctx, *session, sink), nil
}

func (s *DefaultGroupSessionService) BookSolution(ctx context.Context, id string, sink events.Sink) (*models.GroupSession, error) {
	em := events.NewEmitter(sink)
	em.Now = s.now

	unlock := s.locks.Lock(id)
	defer unlock()

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status == models.GroupBooked {
		return nil, ErrAlreadyBooked
	}
	if session.Status != models.GroupSolved || session.Solution == nil {
		return nil, ErrNoSolution
	}

	rest := *session.Solution
	party := len(uniqueParticipants(session.Participants))
	em.Emit(models.EventBookingStarted, fmt.Sprintf("Booking %s for %d at %s", rest.Name, party, session.Time), nil)

	attempt := models.BookingAttempt{
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		RequestedTime:  session.Time,
		RequestedDate:  session.Date,
		PartySize:      party,
		AttemptedAt:    s.now(),
	}
	res, err := s.Booker.AttemptBooking(ctx, availability.SlotRequest{
		Restaurant: rest,
		Location:   session.Location,
		Date:       session.Date,
		Time:       session.Time,
		PartySize:  party,
	})
	switch {
	case err != nil:
		s.Logger.Warn("group booking failed", zap.String("session", id), zap.Error(err))
		attempt.Status = models.BookingFailed
		attempt.FailureReason = err.Error()
	case res.Success:
		attempt.Status = models.BookingConfirmed
		attempt.ConfirmationNumber = res.ConfirmationNumber
	case res.RequiresHandoff:
		attempt.Status = models.BookingHandoff
		attempt.HandoffURL = res.HandoffURL
	default:
		attempt.Status = models.BookingFailed
		attempt.FailureReason = res.Message
	}

	session.Booking = &attempt
	if attempt.Status != models.BookingFailed {
		session.Status = models.GroupBooked
	}
	if err := s.save(context.WithoutCancel(ctx), session); err != nil {
		return nil, err
	}
	em.Emit(models.EventBookingComplete, notification.GroupBooked(session), attempt)
	s.notifyAll(ctx, session, notification.GroupBooked(session))
	return session, nil
}

// Invite texts a join link to each phone number.
func (s *DefaultGroupSessionService) Invite(ctx context.Context, id string, phones []string) error {
	if s.Notify == nil {
		return errors.New("sms is not available")
	}
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	body := notification.GroupInvite(session, fmt.Sprintf("%s/group/%s", s.BaseURL, session.ID))
	for _, p := range phones {
		if s.Conversations != nil {
			action := notification.PendingAction{
				Type: notification.ActionGroupInvite,
				Data: map[string]string{"sessionId": session.ID},
			}
			if err := s.Conversations.Ask(ctx, p, body, action); err != nil {
				return err
			}
			continue
		}
		if err := s.Notify.QueueSMS(ctx, p, body); err != nil {
			return err
		}
	}
	return nil
}

func (s *DefaultGroupSessionService) notifyAll(ctx context.Context, session *models.GroupSession, body string) {
	if s.Notify == nil {
		return
	}
	for _, p := range uniqueParticipants(session.Participants) {
		if p.Phone == "" {
			continue
		}
		if err := s.Notify.QueueSMS(ctx, p.Phone, body); err != nil {
			s.Logger.Warn("failed to queue group sms", zap.String("session", session.ID), zap.Error(err))
		}
	}
}

func normalizeConstraints(c models.GroupConstraints) models.GroupConstraints {
	clean := func(in []string) []string {
		out := []string{}
		for _, v := range in {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
		return out
	}
	c.Dietary = clean(c.Dietary)
	c.CuisineYes = clean(c.CuisineYes)
	c.CuisineNo = clean(c.CuisineNo)
	c.VibeKeywords = clean(c.VibeKeywords)
	if c.MaxPrice < 0 {
		c.MaxPrice = 0
	}
	return c
}
