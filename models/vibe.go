package models

import "time"

// VibeVector places a venue or a user's taste on six independent 0..100 axes.
type VibeVector struct {
	Lighting        int `bson:"lighting" json:"lighting"`               // 0 dim .. 100 bright
	NoiseLevel      int `bson:"noiseLevel" json:"noiseLevel"`           // 0 quiet .. 100 loud
	CrowdVibe       int `bson:"crowdVibe" json:"crowdVibe"`             // 0 neighborhood .. 100 scene
	Formality       int `bson:"formality" json:"formality"`             // 0 casual .. 100 formal
	Adventurousness int `bson:"adventurousness" json:"adventurousness"` // 0 classic .. 100 experimental
	PriceLevel      int `bson:"priceLevel" json:"priceLevel"`           // 0 cheap .. 100 splurge
}

// VibeDimension indexes a VibeVector axis.
type VibeDimension int

const (
	DimLighting VibeDimension = iota
	DimNoiseLevel
	DimCrowdVibe
	DimFormality
	DimAdventurousness
	DimPriceLevel
)

// VibeDimensions lists every axis in canonical order.
var VibeDimensions = []VibeDimension{
	DimLighting, DimNoiseLevel, DimCrowdVibe, DimFormality, DimAdventurousness, DimPriceLevel,
}

func (d VibeDimension) String() string {
	switch d {
	case DimLighting:
		return "lighting"
	case DimNoiseLevel:
		return "noiseLevel"
	case DimCrowdVibe:
		return "crowdVibe"
	case DimFormality:
		return "formality"
	case DimAdventurousness:
		return "adventurousness"
	case DimPriceLevel:
		return "priceLevel"
	}
	return "unknown"
}

// NeutralVibe is the vector used when nothing is known.
func NeutralVibe() VibeVector {
	return VibeVector{50, 50, 50, 50, 50, 50}
}

// Get returns the value of dimension d.
func (v VibeVector) Get(d VibeDimension) int {
	switch d {
	case DimLighting:
		return v.Lighting
	case DimNoiseLevel:
		return v.NoiseLevel
	case DimCrowdVibe:
		return v.CrowdVibe
	case DimFormality:
		return v.Formality
	case DimAdventurousness:
		return v.Adventurousness
	case DimPriceLevel:
		return v.PriceLevel
	}
	return 0
}

// Set assigns dimension d, clamped to 0..100.
func (v *VibeVector) Set(d VibeDimension, value int) {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	switch d {
	case DimLighting:
		v.Lighting = value
	case DimNoiseLevel:
		v.NoiseLevel = value
	case DimCrowdVibe:
		v.CrowdVibe = value
	case DimFormality:
		v.Formality = value
	case DimAdventurousness:
		v.Adventurousness = value
	case DimPriceLevel:
		v.PriceLevel = value
	}
}

// VibePhoto is a reference image a user can pick during onboarding.
type VibePhoto struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Vector      VibeVector `json:"vibeVector"`
}

// UserProfile is a user's stored taste profile.
type UserProfile struct {
	ID             string     `json:"id"`
	Phone          string     `json:"phone,omitempty"`
	VibeVector     VibeVector `json:"vibeVector"`
	VibeSummary    string     `json:"vibeSummary,omitempty"`
	FavoritePhotos []string   `json:"favoritePhotos"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
