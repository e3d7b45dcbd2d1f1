package models

import "time"

type EventType string

// Planning events.
const (
	EventIntentParsed           EventType = "intent_parsed"
	EventSearchingRestaurants   EventType = "searching_restaurants"
	EventRestaurantsFound       EventType = "restaurants_found"
	EventMatrixUpdate           EventType = "matrix_update"
	EventCellStatusChange       EventType = "cell_status_change"
	EventBookingAttempt         EventType = "booking_attempt"
	EventBookingSuccess         EventType = "booking_success"
	EventBookingFailed          EventType = "booking_failed"
	EventRecoveryStart          EventType = "recovery_start"
	EventVibeMatchCalculated    EventType = "vibe_match_calculated"
	EventDessertSearch          EventType = "dessert_search"
	EventDrinksSearch           EventType = "drinks_search"
	EventWalkingRouteCalculated EventType = "walking_route_calculated"
	EventPlanComplete           EventType = "plan_complete"
	EventError                  EventType = "error"
)

// Group events.
const (
	EventParticipantJoined EventType = "participant_joined"
	EventConstraintAdded   EventType = "constraint_added"
	EventSolvingStarted    EventType = "solving_started"
	EventEliminationStep   EventType = "elimination_step"
	EventSolutionFound     EventType = "solution_found"
	EventBookingStarted    EventType = "booking_started"
	EventBookingComplete   EventType = "booking_complete"
)

// Event is one progress notification streamed to the caller.
type Event struct {
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
