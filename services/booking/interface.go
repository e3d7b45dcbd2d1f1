package booking

import (
	"context"

	"slate/models"
	"slate/services/availability"
	"slate/services/events"
)

// MatrixBuilder fills an availability matrix cell by cell.
type MatrixBuilder interface {
	BuildMatrix(ctx context.Context, restaurants []models.Restaurant, slots []string, intent models.ParsedIntent, em *events.Emitter) *models.AvailabilityMatrix
}

// Selector books the best available cell, retrying on failure.
type Selector interface {
	SelectAndBook(ctx context.Context, m *models.AvailabilityMatrix, intent models.ParsedIntent, stop models.StopType, em *events.Emitter) *models.PlanStop
}

// DirectBookingService checks a single slot and books it if open.
type DirectBookingService interface {
	Book(ctx context.Context, req availability.SlotRequest) (*DirectBookingResult, error)
}

// DirectBookingResult merges the availability check and the booking attempt.
type DirectBookingResult struct {
	Available          bool     `json:"available"`
	Success            bool     `json:"success"`
	ConfirmationNumber string   `json:"confirmationNumber,omitempty"`
	RequiresHandoff    bool     `json:"requiresHandoff"`
	HandoffURL         string   `json:"handoffUrl,omitempty"`
	AlternativeTimes   []string `json:"alternativeTimes,omitempty"`
	Message            string   `json:"message"`
}
