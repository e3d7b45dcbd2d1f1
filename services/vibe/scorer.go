// Package vibe turns venues and user tastes into VibeVectors and compares them.
package vibe

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"slate/models"

	"go.uber.org/zap"
)

// Describer returns free text about a venue's atmosphere.
type Describer interface {
	DescribeAtmosphere(ctx context.Context, r models.Restaurant) (string, error)
}

// Scorer derives restaurant vectors. Without a Describer it is purely
// heuristic and deterministic.
type Scorer struct {
	Describer Describer
	Logger    *zap.Logger
}

func NewScorer(d Describer, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{Describer: d, Logger: logger}
}

// ScoreRestaurant returns r's vector. A failing Describer yields the neutral vector.
func (s *Scorer) ScoreRestaurant(ctx context.Context, r models.Restaurant) models.VibeVector {
	text := restaurantText(r)
	if s != nil && s.Describer != nil {
		desc, err := s.Describer.DescribeAtmosphere(ctx, r)
		if err != nil {
			s.Logger.Debug("atmosphere lookup failed", zap.String("restaurant", r.Name), zap.Error(err))
			return models.NeutralVibe()
		}
		text += " " + normalize(desc)
	}
	return vectorFor(r, text)
}

// Heuristic scores r from its own fields only.
func Heuristic(r models.Restaurant) models.VibeVector {
	return vectorFor(r, restaurantText(r))
}

func vectorFor(r models.Restaurant, text string) models.VibeVector {
	v := fromText(text)
	if r.ReviewCount > 1000 {
		v.Set(models.DimCrowdVibe, v.CrowdVibe+10)
	}
	v.PriceLevel = r.PriceOrdinal() * 25
	return v
}

// FromKeywords builds a user vector from vibe words in a request.
// Dimensions no keyword touches stay neutral.
func FromKeywords(keywords []string) models.VibeVector {
	if len(keywords) == 0 {
		return models.NeutralVibe()
	}
	return fromText(normalize(strings.Join(keywords, " ")))
}

func fromText(text string) models.VibeVector {
	v := models.NeutralVibe()
	for dim, set := range Keywords {
		low := countMatches(text, set.Low)
		high := countMatches(text, set.High)
		if low+high > 0 {
			v.Set(dim, int(math.Round(float64(high)/float64(low+high)*100)))
		}
	}
	return v
}

// Match compares a user vector with a restaurant vector. Score is
// round(100 - 100*sum|diff|/600); reasons name up to three dimensions that
// differ by less than 20, in canonical order.
func Match(user, rest models.VibeVector) (int, []string) {
	total := 0
	var reasons []string
	for _, d := range models.VibeDimensions {
		diff := absInt(user.Get(d) - rest.Get(d))
		total += diff
		if diff < 20 && len(reasons) < 3 {
			labels := DimensionLabels[d]
			if rest.Get(d) > 50 {
				reasons = append(reasons, labels[1])
			} else {
				reasons = append(reasons, labels[0])
			}
		}
	}
	maxDiff := float64(len(models.VibeDimensions) * 100)
	score := int(math.Round(100 - float64(total)/maxDiff*100))
	return score, reasons
}

// Explain turns match reasons into a sentence about the venue.
func Explain(name string, reasons []string) string {
	switch len(reasons) {
	case 0:
		return fmt.Sprintf("%s offers a unique experience", name)
	case 1:
		return fmt.Sprintf("%s, just like your favorites", reasons[0])
	}
	return strings.Join(reasons[:len(reasons)-1], ", ") + " and " + reasons[len(reasons)-1]
}

// FromSelections averages the vectors of the chosen onboarding photos.
// Unknown IDs are ignored; no known IDs gives the neutral vector.
func FromSelections(photoIDs []string) models.VibeVector {
	chosen := make(map[string]bool, len(photoIDs))
	for _, id := range photoIDs {
		chosen[id] = true
	}
	var sums [6]int
	n := 0
	for _, p := range Photos {
		if !chosen[p.ID] {
			continue
		}
		n++
		for i, d := range models.VibeDimensions {
			sums[i] += p.Vector.Get(d)
		}
	}
	if n == 0 {
		return models.NeutralVibe()
	}
	var v models.VibeVector
	for i, d := range models.VibeDimensions {
		v.Set(d, int(math.Round(float64(sums[i])/float64(n))))
	}
	return v
}

// Summary describes a user vector in a short phrase.
func Summary(v models.VibeVector) string {
	var parts []string
	switch {
	case v.Lighting < 40:
		parts = append(parts, "dim lighting")
	case v.Lighting > 60:
		parts = append(parts, "bright spaces")
	}
	switch {
	case v.NoiseLevel < 40:
		parts = append(parts, "quiet atmosphere")
	case v.NoiseLevel > 60:
		parts = append(parts, "lively energy")
	}
	switch {
	case v.CrowdVibe < 40:
		parts = append(parts, "neighborhood feel")
	case v.CrowdVibe > 60:
		parts = append(parts, "trendy scenes")
	}
	switch {
	case v.Formality > 60:
		parts = append(parts, "upscale elegance")
	case v.Formality < 40:
		parts = append(parts, "casual vibe")
	}
	switch {
	case v.Adventurousness > 60:
		parts = append(parts, "bold flavors")
	case v.Adventurousness < 40:
		parts = append(parts, "familiar classics")
	}
	if len(parts) == 0 {
		return "balanced preferences"
	}
	return strings.Join(parts, ", ")
}

func restaurantText(r models.Restaurant) string {
	return normalize(r.Name + " " + strings.Join(r.Categories, " "))
}

// normalize lowercases s and reduces it to space separated words, padded
// with a leading and trailing space so phrases can be matched on word boundaries.
func normalize(s string) string {
	var b strings.Builder
	b.WriteByte(' ')
	space := true
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			b.WriteRune(r)
			space = false
			continue
		}
		if !space {
			b.WriteByte(' ')
			space = true
		}
	}
	if !space {
		b.WriteByte(' ')
	}
	return b.String()
}

// countMatches counts keywords present in text as whole words, allowing a plural "s".
func countMatches(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, " "+k+" ") || strings.Contains(text, " "+k+"s ") {
			n++
		}
	}
	return n
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
