package vibe

import "slate/models"

// KeywordSet lists words that pull a dimension towards 0 (Low) or 100 (High).
type KeywordSet struct {
	Low  []string
	High []string
}

// Keywords drives both restaurant scoring and keyword-derived user vectors.
// Price is not keyword driven; it comes from the venue's price level.
var Keywords = map[models.VibeDimension]KeywordSet{
	models.DimLighting: {
		Low:  []string{"dim", "dark", "moody", "candlelit", "romantic", "intimate", "cozy", "low-light", "ambient", "speakeasy", "lounge", "wine bar", "cocktail"},
		High: []string{"bright", "airy", "sunny", "natural light", "open", "windows", "daylight", "well-lit", "cafe", "brunch", "breakfast", "juice", "bakery", "diner", "outdoor"},
	},
	models.DimNoiseLevel: {
		Low:  []string{"quiet", "peaceful", "serene", "calm", "hushed", "conversation", "soft music", "not too loud", "tea", "omakase", "intimate"},
		High: []string{"loud", "buzzy", "energetic", "lively", "bustling", "noisy", "vibrant", "packed", "crowded", "sports bar", "pub", "beer", "karaoke", "tacos", "bbq"},
	},
	models.DimCrowdVibe: {
		Low:  []string{"neighborhood", "locals", "regulars", "family", "unpretentious", "low-key", "chill", "hidden gem", "hole in the wall", "deli"},
		High: []string{"scene", "trendy", "hip", "instagram", "popular", "hot spot", "celebrities", "see and be seen", "rooftop", "swanky", "chic", "buzzy"},
	},
	models.DimFormality: {
		Low:  []string{"casual", "relaxed", "laid-back", "no dress code", "come as you are", "dive", "hole in wall", "fast food", "food truck", "burgers", "sandwiches", "pizza", "chill"},
		High: []string{"upscale", "fine dining", "elegant", "formal", "dress code", "white tablecloth", "sophisticated", "steakhouse", "french", "tasting menu", "classy", "fancy", "high-end"},
	},
	models.DimAdventurousness: {
		Low:  []string{"traditional", "classic", "authentic", "old-school", "comfort food", "familiar", "no-frills", "diner"},
		High: []string{"innovative", "creative", "experimental", "fusion", "molecular", "unique", "adventurous", "bold", "ethiopian", "peruvian", "new american", "tapas", "omakase", "modern"},
	},
}

// DimensionLabels phrase a matching dimension for the user, indexed [low, high].
var DimensionLabels = map[models.VibeDimension][2]string{
	models.DimLighting:        {"dim and moody", "bright and airy"},
	models.DimNoiseLevel:      {"quiet and intimate", "lively and energetic"},
	models.DimCrowdVibe:       {"neighborhood feel", "trendy scene"},
	models.DimFormality:       {"casual vibe", "upscale elegance"},
	models.DimAdventurousness: {"classic and familiar", "creative and bold"},
	models.DimPriceLevel:      {"budget-friendly", "splurge-worthy"},
}

// Photos are the onboarding reference images.
var Photos = []models.VibePhoto{
	{ID: "dim-romantic", URL: "/images/vibe-photos/dim-romantic.jpg", Description: "Dim candlelit dinner", Vector: models.VibeVector{Lighting: 15, NoiseLevel: 20, CrowdVibe: 20, Formality: 60, Adventurousness: 40, PriceLevel: 70}},
	{ID: "bright-casual", URL: "/images/vibe-photos/bright-casual.jpg", Description: "Bright casual spot", Vector: models.VibeVector{Lighting: 85, NoiseLevel: 60, CrowdVibe: 40, Formality: 20, Adventurousness: 30, PriceLevel: 30}},
	{ID: "trendy-scene", URL: "/images/vibe-photos/trendy-scene.jpg", Description: "Trendy see-and-be-seen", Vector: models.VibeVector{Lighting: 40, NoiseLevel: 75, CrowdVibe: 90, Formality: 50, Adventurousness: 70, PriceLevel: 60}},
	{ID: "cozy-neighborhood", URL: "/images/vibe-photos/cozy-neighborhood.jpg", Description: "Cozy neighborhood gem", Vector: models.VibeVector{Lighting: 35, NoiseLevel: 40, CrowdVibe: 15, Formality: 30, Adventurousness: 35, PriceLevel: 45}},
	{ID: "upscale-elegant", URL: "/images/vibe-photos/upscale-elegant.jpg", Description: "Upscale fine dining", Vector: models.VibeVector{Lighting: 50, NoiseLevel: 25, CrowdVibe: 55, Formality: 95, Adventurousness: 50, PriceLevel: 95}},
	{ID: "lively-bustling", URL: "/images/vibe-photos/lively-bustling.jpg", Description: "Lively bustling energy", Vector: models.VibeVector{Lighting: 70, NoiseLevel: 85, CrowdVibe: 60, Formality: 25, Adventurousness: 55, PriceLevel: 40}},
	{ID: "intimate-quiet", URL: "/images/vibe-photos/intimate-quiet.jpg", Description: "Intimate and quiet", Vector: models.VibeVector{Lighting: 25, NoiseLevel: 15, CrowdVibe: 10, Formality: 55, Adventurousness: 45, PriceLevel: 65}},
	{ID: "hip-creative", URL: "/images/vibe-photos/hip-creative.jpg", Description: "Hip creative space", Vector: models.VibeVector{Lighting: 55, NoiseLevel: 55, CrowdVibe: 75, Formality: 20, Adventurousness: 85, PriceLevel: 50}},
	{ID: "classic-timeless", URL: "/images/vibe-photos/classic-timeless.jpg", Description: "Classic timeless elegance", Vector: models.VibeVector{Lighting: 45, NoiseLevel: 35, CrowdVibe: 30, Formality: 70, Adventurousness: 15, PriceLevel: 75}},
	{ID: "outdoor-fresh", URL: "/images/vibe-photos/outdoor-fresh.jpg", Description: "Fresh outdoor dining", Vector: models.VibeVector{Lighting: 95, NoiseLevel: 50, CrowdVibe: 45, Formality: 35, Adventurousness: 40, PriceLevel: 55}},
	{ID: "hidden-speakeasy", URL: "/images/vibe-photos/hidden-speakeasy.jpg", Description: "Hidden speakeasy vibe", Vector: models.VibeVector{Lighting: 20, NoiseLevel: 45, CrowdVibe: 65, Formality: 55, Adventurousness: 75, PriceLevel: 65}},
	{ID: "family-warm", URL: "/images/vibe-photos/family-warm.jpg", Description: "Warm family atmosphere", Vector: models.VibeVector{Lighting: 65, NoiseLevel: 60, CrowdVibe: 25, Formality: 15, Adventurousness: 25, PriceLevel: 35}},
}
