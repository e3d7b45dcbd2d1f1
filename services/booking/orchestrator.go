package booking

import (
	"context"
	"fmt"
	"time"

	"slate/models"
	"slate/services/availability"
	"slate/services/events"
	"slate/services/vibe"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DefaultSelector books the best available cell and falls back to the next best on failure.
type DefaultSelector struct {
	Booker   availability.Booker
	Logger   *zap.Logger
	Now      func() time.Time
	attempts metric.Int64Counter
}

func NewSelector(booker availability.Booker, logger *zap.Logger) *DefaultSelector {
	if logger == nil {
		logger = zap.NewNop()
	}
	counter, err := otel.Meter("slate/booking").Int64Counter("slate.booking.attempts",
		metric.WithDescription("Reservation attempts by outcome"))
	if err != nil {
		logger.Warn("booking attempt counter unavailable", zap.Error(err))
	}
	return &DefaultSelector{Booker: booker, Logger: logger, Now: time.Now, attempts: counter}
}

// BestAvailableCell returns the available cell with the highest vibe score.
// Ties go to the earliest cell in row-major order.
func BestAvailableCell(m *models.AvailabilityMatrix) (models.CellRef, bool) {
	best := models.CellRef{Row: -1, Col: -1}
	bestScore := -1
	for r, row := range m.Cells {
		for c, cell := range row {
			if cell.Status == models.CellAvailable && cell.VibeMatchScore > bestScore {
				best = models.CellRef{Row: r, Col: c}
				bestScore = cell.VibeMatchScore
			}
		}
	}
	return best, bestScore >= 0
}

// SelectAndBook returns nil when no available cell could be booked or when
// the caller cancels ctx. Callers that must finish pass a non-cancelable ctx.
func (s *DefaultSelector) SelectAndBook(
	ctx context.Context,
	m *models.AvailabilityMatrix,
	intent models.ParsedIntent,
	stopType models.StopType,
	em *events.Emitter,
) *models.PlanStop {
	for {
		ref, ok := BestAvailableCell(m)
		if !ok {
			em.Emit(models.EventError, fmt.Sprintf("No %s availability found", stopType), nil)
			return nil
		}
		if ctx.Err() != nil {
			em.Emit(models.EventError, "Booking cancelled", nil)
			return nil
		}

		rest := m.Restaurants[ref.Row]
		slot := m.TimeSlots[ref.Col]
		em.Emit(models.EventBookingAttempt, fmt.Sprintf("Booking %s at %s", rest.Name, slot),
			map[string]any{"restaurant": rest.Name, "time": slot, "row": ref.Row, "col": ref.Col})
		setCell(m, ref.Row, ref.Col, models.CellBooking, em)

		attempt := models.BookingAttempt{
			RestaurantID:   rest.ID,
			RestaurantName: rest.Name,
			RequestedTime:  slot,
			RequestedDate:  intent.Date,
			PartySize:      intent.PartySize,
			AttemptedAt:    s.now(),
		}
		res, err := s.Booker.AttemptBooking(ctx, availability.SlotRequest{
			Restaurant: rest,
			Location:   intent.Location,
			Date:       intent.Date,
			Time:       slot,
			PartySize:  intent.PartySize,
		})
		if err != nil {
			s.Logger.Warn("booking attempt failed", zap.String("restaurant", rest.Name), zap.Error(err))
			res = availability.BookingResult{Message: err.Error()}
		}

		switch {
		case res.Success:
			attempt.Status = models.BookingConfirmed
			attempt.ConfirmationNumber = res.ConfirmationNumber
			s.record(ctx, "confirmed")
			setCell(m, ref.Row, ref.Col, models.CellBooked, em)
			m.SelectedCell = &models.CellRef{Row: ref.Row, Col: ref.Col}
			em.Emit(models.EventBookingSuccess,
				fmt.Sprintf("Booked %s at %s", rest.Name, slot), attempt)
			if rest.VibeMatchReason == "" {
				rest.VibeMatchReason = vibe.Explain(rest.Name, nil)
			}
			em.Emit(models.EventVibeMatchCalculated, rest.VibeMatchReason,
				map[string]any{"restaurant": rest.Name, "score": rest.VibeMatchScore})
			return &models.PlanStop{Type: stopType, Restaurant: rest, Time: slot, Booking: attempt}

		case res.RequiresHandoff:
			attempt.Status = models.BookingHandoff
			attempt.HandoffURL = res.HandoffURL
			s.record(ctx, "handoff")
			setCell(m, ref.Row, ref.Col, models.CellBooked, em)
			m.SelectedCell = &models.CellRef{Row: ref.Row, Col: ref.Col}
			em.Emit(models.EventBookingSuccess,
				fmt.Sprintf("Finish booking %s at %s on the provider's site", rest.Name, slot),
				map[string]any{"restaurant": rest.Name, "time": slot, "handoffUrl": res.HandoffURL})
			return &models.PlanStop{Type: stopType, Restaurant: rest, Time: slot, Booking: attempt}
		}

		s.record(ctx, "failed")
		setCell(m, ref.Row, ref.Col, models.CellFailed, em)
		reason := res.Message
		if reason == "" {
			reason = "Booking was not accepted"
		}
		em.Emit(models.EventBookingFailed, fmt.Sprintf("%s at %s: %s", rest.Name, slot, reason),
			map[string]any{"restaurant": rest.Name, "time": slot, "reason": reason})
		em.Emit(models.EventRecoveryStart, "Trying the next best option", nil)
		setCell(m, ref.Row, ref.Col, models.CellUnavailable, em)
	}
}

func (s *DefaultSelector) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *DefaultSelector) record(ctx context.Context, outcome string) {
	if s.attempts == nil {
		return
	}
	s.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
