// File: models/restaurant.go
package models

import "strings"

type Coordinates struct {
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
}

// RestaurantLocation is the street-level position of a venue.
type RestaurantLocation struct {
	Address      string      `bson:"address" json:"address"`
	City         string      `bson:"city" json:"city"`
	Neighborhood string      `bson:"neighborhood,omitempty" json:"neighborhood,omitempty"`
	Coordinates  Coordinates `bson:"coordinates" json:"coordinates"`
}

// Restaurant is a venue as returned by the search provider, optionally enriched with vibe data.
type Restaurant struct {
	ID              string             `bson:"id" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Rating          float64            `bson:"rating" json:"rating"`           // 0..5
	ReviewCount     int                `bson:"reviewCount" json:"reviewCount"` // >= 0
	PriceLevel      string             `bson:"priceLevel" json:"priceLevel"`   // "$".."$$$$"
	Categories      []string           `bson:"categories" json:"categories"`
	Location        RestaurantLocation `bson:"location" json:"location"`
	Phone           string             `bson:"phone,omitempty" json:"phone,omitempty"`
	URL             string             `bson:"url,omitempty" json:"url,omitempty"`
	ImageURL        string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	VibeVector      *VibeVector        `bson:"vibeVector,omitempty" json:"vibeVector,omitempty"`
	VibeMatchScore  int                `bson:"vibeMatchScore" json:"vibeMatchScore"` // 0..100
	VibeMatchReason string             `bson:"vibeMatchReason,omitempty" json:"vibeMatchReason,omitempty"`
}

// DefaultPriceOrdinal is assumed when a venue carries no price level.
const DefaultPriceOrdinal = 2

// PriceOrdinal returns the number of "$" in the price level, or DefaultPriceOrdinal when absent.
func (r Restaurant) PriceOrdinal() int {
	n := strings.Count(r.PriceLevel, "$")
	if n == 0 {
		return DefaultPriceOrdinal
	}
	return n
}

// HasCategory reports whether any category contains term, case-insensitively.
func (r Restaurant) HasCategory(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	for _, c := range r.Categories {
		if strings.Contains(strings.ToLower(c), term) {
			return true
		}
	}
	return false
}
