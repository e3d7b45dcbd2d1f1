package models

import "time"

type AutonomyLevel string

const (
	AutonomySuggest         AutonomyLevel = "suggest"
	AutonomyBookWithConfirm AutonomyLevel = "book_with_confirm"
	AutonomyFullAuto        AutonomyLevel = "full_auto"
)

type AutonomySchedule struct {
	DaysOfWeek       []int  `json:"daysOfWeek"`       // 0 = Sunday
	NotifyDaysBefore int    `json:"notifyDaysBefore"` // how far ahead of the target day to plan
	NotifyTime       string `json:"notifyTime"`       // "HH:MM", local
}

type BudgetRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type TimeWindow struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

type AutonomyConstraints struct {
	PartySize          int         `json:"partySize"`
	Neighborhoods      []string    `json:"neighborhoods"`
	CuisinePreferences []string    `json:"cuisinePreferences"`
	CuisineExclusions  []string    `json:"cuisineExclusions"`
	BudgetPerPerson    BudgetRange `json:"budgetPerPerson"`
	TimePreference     TimeWindow  `json:"timePreference"`
	IncludeDrinks      bool        `json:"includeDrinks"`
}

// AutonomyConfig tells the scheduler when and how to plan on a user's behalf.
type AutonomyConfig struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Enabled       bool                `json:"enabled"`
	AutonomyLevel AutonomyLevel       `json:"autonomyLevel"`
	Schedule      AutonomySchedule    `json:"schedule"`
	Constraints   AutonomyConstraints `json:"constraints"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

type AutonomyPlanStatus string

const (
	AutonomyPlanPlanning AutonomyPlanStatus = "planning"
	AutonomyPlanBooked   AutonomyPlanStatus = "booked"
	AutonomyPlanNotified AutonomyPlanStatus = "notified"
)

type AutonomyPlan struct {
	ID         string             `json:"id"`
	ConfigID   string             `json:"configId"`
	UserID     string             `json:"userId"`
	TargetDate string             `json:"targetDate"` // YYYY-MM-DD
	Status     AutonomyPlanStatus `json:"status"`
	Plan       EveningPlan        `json:"plan"`
	CreatedAt  time.Time          `json:"createdAt"`
	NotifiedAt *time.Time         `json:"notifiedAt,omitempty"`
}
