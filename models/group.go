package models

import "time"

type GroupStatus string

const (
	GroupCollecting GroupStatus = "collecting"
	GroupSolving    GroupStatus = "solving"
	GroupSolved     GroupStatus = "solved"
	GroupBooked     GroupStatus = "booked"
)

// GroupConstraints are one participant's requirements and preferences.
type GroupConstraints struct {
	Dietary       []string `json:"dietary"`
	CuisineYes    []string `json:"cuisineYes"`
	CuisineNo     []string `json:"cuisineNo"`
	VibeKeywords  []string `json:"vibeKeywords"`
	MaxPrice      int      `json:"maxPrice"` // dollars per person, 0 = no limit
	Accessibility bool     `json:"accessibility"`
	Other         string   `json:"other"`
}

// DefaultCreatorMaxPrice is the budget given to a session creator.
const DefaultCreatorMaxPrice = 100

// DefaultConstraints returns the constraints a session creator starts with.
func DefaultConstraints() GroupConstraints {
	return GroupConstraints{
		Dietary:      []string{},
		CuisineYes:   []string{},
		CuisineNo:    []string{},
		VibeKeywords: []string{},
		MaxPrice:     DefaultCreatorMaxPrice,
	}
}

type GroupParticipant struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Phone       string           `json:"phone,omitempty"`
	Constraints GroupConstraints `json:"constraints"`
	JoinedAt    time.Time        `json:"joinedAt"`
}

// GroupSession is stored as a single record keyed by ID.
type GroupSession struct {
	ID                string             `json:"id"`
	CreatorID         string             `json:"creatorId"`
	Status            GroupStatus        `json:"status"`
	Date              string             `json:"date"`
	Time              string             `json:"time"`
	Location          string             `json:"location"`
	Participants      []GroupParticipant `json:"participants"`
	Solution          *Restaurant        `json:"solution,omitempty"`
	SatisfactionScore int                `json:"satisfactionScore,omitempty"`
	EliminationLog    []EliminationStep  `json:"eliminationLog,omitempty"`
	Booking           *BookingAttempt    `json:"booking,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	ExpiresAt         time.Time          `json:"expiresAt"`
}

// Participant returns the participant with id, or nil.
func (s *GroupSession) Participant(id string) *GroupParticipant {
	for i := range s.Participants {
		if s.Participants[i].ID == id {
			return &s.Participants[i]
		}
	}
	return nil
}

type EliminationStep struct {
	Constraint      string `json:"constraint"`
	ParticipantName string `json:"participantName"`
	EliminatedCount int    `json:"eliminatedCount"`
	RemainingCount  int    `json:"remainingCount"`
}

// SolverResult is the outcome of one solve. Solution is nil when nothing fits.
type SolverResult struct {
	Candidates        []Restaurant      `json:"candidates"`
	EliminationLog    []EliminationStep `json:"eliminationLog"`
	Solution          *Restaurant       `json:"solution"`
	SatisfactionScore int               `json:"satisfactionScore"`
}
