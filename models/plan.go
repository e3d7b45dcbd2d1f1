package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingFailed    BookingStatus = "failed"
	BookingHandoff   BookingStatus = "handoff"
)

// BookingAttempt records one reservation attempt. Once Status is terminal the record is not changed.
type BookingAttempt struct {
	RestaurantID       string        `bson:"restaurantId" json:"restaurantId"`
	RestaurantName     string        `bson:"restaurantName" json:"restaurantName"`
	RequestedTime      string        `bson:"requestedTime" json:"requestedTime"`
	RequestedDate      string        `bson:"requestedDate" json:"requestedDate"`
	PartySize          int           `bson:"partySize" json:"partySize"`
	Status             BookingStatus `bson:"status" json:"status"`
	ConfirmationNumber string        `bson:"confirmationNumber,omitempty" json:"confirmationNumber,omitempty"`
	HandoffURL         string        `bson:"handoffUrl,omitempty" json:"handoffUrl,omitempty"`
	FailureReason      string        `bson:"failureReason,omitempty" json:"failureReason,omitempty"`
	AttemptedAt        time.Time     `bson:"attemptedAt" json:"attemptedAt"`
}

type StopType string

const (
	StopDinner  StopType = "dinner"
	StopDrinks  StopType = "drinks"
	StopDessert StopType = "dessert"
)

type WalkingInfo struct {
	Minutes        int `bson:"minutes" json:"minutes"`
	DistanceMeters int `bson:"distanceMeters" json:"distanceMeters"`
}

// PlanStop is one leg of the evening.
type PlanStop struct {
	Type                StopType       `bson:"type" json:"type"`
	Restaurant          Restaurant     `bson:"restaurant" json:"restaurant"`
	Time                string         `bson:"time" json:"time"`
	Booking             BookingAttempt `bson:"booking" json:"booking"`
	WalkingFromPrevious *WalkingInfo   `bson:"walkingFromPrevious,omitempty" json:"walkingFromPrevious,omitempty"`
}

type PlanStatus string

const (
	PlanPlanning  PlanStatus = "planning"
	PlanBooking   PlanStatus = "booking"
	PlanConfirmed PlanStatus = "confirmed"
	PlanPartial   PlanStatus = "partial"
	PlanFailed    PlanStatus = "failed"
)

// EveningPlan is the result of one planning request.
type EveningPlan struct {
	ID                 string              `bson:"id" json:"id"`
	UserID             string              `bson:"userId" json:"userId"`
	Status             PlanStatus          `bson:"status" json:"status"`
	Prompt             string              `bson:"prompt" json:"prompt"`
	ParsedIntent       ParsedIntent        `bson:"parsedIntent" json:"parsedIntent"`
	Stops              []PlanStop          `bson:"stops" json:"stops"`
	Matrix             *AvailabilityMatrix `bson:"matrix,omitempty" json:"matrix,omitempty"`
	TotalEstimatedCost int                 `bson:"totalEstimatedCost" json:"totalEstimatedCost"`
	CreatedAt          time.Time           `bson:"createdAt" json:"createdAt"`
}

// DeriveStatus computes a terminal plan status from its stops: confirmed when
// every stop is confirmed, partial when some are not, failed when there are none.
func DeriveStatus(stops []PlanStop) PlanStatus {
	if len(stops) == 0 {
		return PlanFailed
	}
	for _, s := range stops {
		if s.Booking.Status != BookingConfirmed {
			return PlanPartial
		}
	}
	return PlanConfirmed
}

// Stop returns the first stop of type t, or nil.
func (p *EveningPlan) Stop(t StopType) *PlanStop {
	for i := range p.Stops {
		if p.Stops[i].Type == t {
			return &p.Stops[i]
		}
	}
	return nil
}
