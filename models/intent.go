package models

// ParsedIntent is the structured form of a planning request. It is not
// modified after parsing.
type ParsedIntent struct {
	Date                string   `bson:"date" json:"date"` // "Friday, October 16, 2026"
	Time                string   `bson:"time" json:"time"` // "7:00 PM"
	PartySize           int      `bson:"partySize" json:"partySize"`
	Location            string   `bson:"location" json:"location"`
	Cuisines            []string `bson:"cuisines" json:"cuisines"`
	VibeKeywords        []string `bson:"vibeKeywords" json:"vibeKeywords"`
	Budget              *int     `bson:"budget,omitempty" json:"budget,omitempty"` // dollars per person
	Occasion            string   `bson:"occasion,omitempty" json:"occasion,omitempty"`
	IncludeDrinks       bool     `bson:"includeDrinks" json:"includeDrinks"`
	IncludeDessert      bool     `bson:"includeDessert" json:"includeDessert"`
	DietaryRestrictions []string `bson:"dietaryRestrictions" json:"dietaryRestrictions"`
}

// DefaultDinnerTime is used when the request names no time.
const DefaultDinnerTime = "7:00 PM"
