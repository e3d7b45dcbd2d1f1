package booking

import (
	"context"
	"fmt"
	"strings"

	"slate/services/availability"

	"go.uber.org/zap"
)

// DefaultDirectBookingService handles one-off reservation requests outside of a plan.
type DefaultDirectBookingService struct {
	Provider interface {
		availability.Checker
		availability.Booker
	}
	Logger *zap.Logger
}

func (s *DefaultDirectBookingService) Book(ctx context.Context, req availability.SlotRequest) (*DirectBookingResult, error) {
	if err := validateSlotRequest(req); err != nil {
		return nil, err
	}

	avail, err := s.Provider.CheckAvailability(ctx, req)
	if err != nil {
		s.Logger.Error("direct booking: availability check failed",
			zap.String("restaurant", req.Restaurant.Name), zap.Error(err))
		return nil, NewBookingError(CodeUpstream, fmt.Sprintf("could not check availability: %v", err))
	}
	if !avail.Available {
		msg := avail.Message
		if msg == "" {
			msg = fmt.Sprintf("%s has no table at %s", req.Restaurant.Name, req.Time)
		}
		return &DirectBookingResult{Available: false, AlternativeTimes: avail.AlternativeTimes, Message: msg}, nil
	}

	res, err := s.Provider.AttemptBooking(ctx, req)
	if err != nil {
		s.Logger.Error("direct booking: attempt failed",
			zap.String("restaurant", req.Restaurant.Name), zap.Error(err))
		return nil, NewBookingError(CodeUpstream, fmt.Sprintf("booking failed: %v", err))
	}
	s.Logger.Info("direct booking",
		zap.String("restaurant", req.Restaurant.Name),
		zap.Bool("success", res.Success),
		zap.Bool("handoff", res.RequiresHandoff))

	return &DirectBookingResult{
		Available:          true,
		Success:            res.Success,
		ConfirmationNumber: res.ConfirmationNumber,
		RequiresHandoff:    res.RequiresHandoff,
		HandoffURL:         res.HandoffURL,
		Message:            res.Message,
	}, nil
}

func validateSlotRequest(req availability.SlotRequest) error {
	var missing []string
	if req.Restaurant.ID == "" && req.Restaurant.Name == "" {
		missing = append(missing, "restaurant")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return NewBookingError(CodeInvalidRequest, "missing "+strings.Join(missing, ", "))
	}
	if req.PartySize < 1 {
		return NewBookingError(CodeInvalidRequest, "party size must be at least 1")
	}
	return nil
}
