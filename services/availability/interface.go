// Package availability defines the restaurant search, availability and
// booking contract, with a simulated implementation for demo mode.
package availability

import (
	"context"

	"slate/models"
)

// SearchParams narrows a restaurant search.
type SearchParams struct {
	Term       string
	Location   string
	Categories string
	Price      string // provider price filter, e.g. "1,2"
	Limit      int
	SortBy     string // best_match, rating, review_count, distance
}

// SlotRequest identifies one (restaurant, date, time, party) combination.
type SlotRequest struct {
	Restaurant models.Restaurant
	Location   string
	Date       string
	Time       string
	PartySize  int
}

type AvailabilityResult struct {
	Available        bool     `json:"available"`
	AlternativeTimes []string `json:"alternativeTimes,omitempty"`
	Message          string   `json:"message,omitempty"`
}

type BookingResult struct {
	Success            bool   `json:"success"`
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	RequiresHandoff    bool   `json:"requiresHandoff"`
	HandoffURL         string `json:"handoffUrl,omitempty"`
	Message            string `json:"message,omitempty"`
}

type Searcher interface {
	Search(ctx context.Context, params SearchParams) ([]models.Restaurant, error)
}

type Checker interface {
	CheckAvailability(ctx context.Context, req SlotRequest) (AvailabilityResult, error)
}

type Booker interface {
	AttemptBooking(ctx context.Context, req SlotRequest) (BookingResult, error)
}

// Provider is everything the planner and the group service need from upstream.
type Provider interface {
	Searcher
	Checker
	Booker
}

// Composite assembles a Provider from independent parts, typically live
// search with simulated availability and booking.
type Composite struct {
	Searcher
	Checker
	Booker
}

// WithSimulatedBooking pairs a real searcher with the simulator.
func WithSimulatedBooking(s Searcher, sim *Simulator) Provider {
	return Composite{Searcher: s, Checker: sim, Booker: sim}
}
