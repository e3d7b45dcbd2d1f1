package vibe

import (
	"context"
	"errors"
	"testing"

	"slate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDescriber struct {
	text string
	err  error
}

func (s stubDescriber) DescribeAtmosphere(context.Context, models.Restaurant) (string, error) {
	return s.text, s.err
}

func TestMatch(t *testing.T) {
	a := models.VibeVector{Lighting: 15, NoiseLevel: 20, CrowdVibe: 20, Formality: 60, Adventurousness: 40, PriceLevel: 70}
	b := models.VibeVector{Lighting: 85, NoiseLevel: 60, CrowdVibe: 40, Formality: 20, Adventurousness: 30, PriceLevel: 30}

	t.Run("identical vectors score 100", func(t *testing.T) {
		score, reasons := Match(a, a)
		assert.Equal(t, 100, score)
		assert.Len(t, reasons, 3)
	})

	t.Run("symmetric", func(t *testing.T) {
		ab, _ := Match(a, b)
		ba, _ := Match(b, a)
		assert.Equal(t, ab, ba)
		// total diff 70+40+20+40+10+40 = 220 -> 100 - 36.67
		assert.Equal(t, 63, ab)
	})

	t.Run("opposite corners score 0", func(t *testing.T) {
		zero := models.VibeVector{}
		full := models.VibeVector{Lighting: 100, NoiseLevel: 100, CrowdVibe: 100, Formality: 100, Adventurousness: 100, PriceLevel: 100}
		score, reasons := Match(zero, full)
		assert.Equal(t, 0, score)
		assert.Empty(t, reasons)
	})

	t.Run("reasons use the restaurant side label", func(t *testing.T) {
		user := models.VibeVector{Lighting: 20, NoiseLevel: 90, CrowdVibe: 0, Formality: 0, Adventurousness: 0, PriceLevel: 80}
		rest := models.VibeVector{Lighting: 30, NoiseLevel: 80, CrowdVibe: 100, Formality: 100, Adventurousness: 100, PriceLevel: 70}
		_, reasons := Match(user, rest)
		assert.Equal(t, []string{"dim and moody", "lively and energetic", "splurge-worthy"}, reasons)
	})
}

func TestExplain(t *testing.T) {
	assert.Equal(t, "Luca offers a unique experience", Explain("Luca", nil))
	assert.Equal(t, "quiet and intimate, just like your favorites", Explain("Luca", []string{"quiet and intimate"}))
	assert.Equal(t, "dim and moody, quiet and intimate and neighborhood feel",
		Explain("Luca", []string{"dim and moody", "quiet and intimate", "neighborhood feel"}))
}

func TestScoreRestaurant(t *testing.T) {
	wineBar := models.Restaurant{
		ID: "r1", Name: "Velvet Room", PriceLevel: "$$$",
		Categories: []string{"Wine Bars", "Tapas"}, ReviewCount: 1500,
	}

	t.Run("deterministic without describer", func(t *testing.T) {
		s := NewScorer(nil, nil)
		v1 := s.ScoreRestaurant(context.Background(), wineBar)
		v2 := s.ScoreRestaurant(context.Background(), wineBar)
		assert.Equal(t, v1, v2)
		assert.Equal(t, 0, v1.Lighting)
		assert.Equal(t, 100, v1.Adventurousness)
		assert.Equal(t, 60, v1.CrowdVibe)
		assert.Equal(t, 75, v1.PriceLevel)
	})

	t.Run("describer failure gives neutral vector", func(t *testing.T) {
		s := NewScorer(stubDescriber{err: errors.New("upstream down")}, nil)
		assert.Equal(t, models.NeutralVibe(), s.ScoreRestaurant(context.Background(), wineBar))
	})

	t.Run("describer text is folded in", func(t *testing.T) {
		s := NewScorer(stubDescriber{text: "A quiet, elegant room. Very formal."}, nil)
		v := s.ScoreRestaurant(context.Background(), models.Restaurant{Name: "Plain", PriceLevel: "$$"})
		assert.Equal(t, 0, v.NoiseLevel)
		assert.Equal(t, 100, v.Formality)
		assert.Equal(t, 50, v.Lighting)
		assert.Equal(t, 50, v.PriceLevel)
	})

	t.Run("keywords match whole words only", func(t *testing.T) {
		v := Heuristic(models.Restaurant{Name: "Prime Cut", Categories: []string{"Steakhouses"}, PriceLevel: "$$$$"})
		// "tea" must not match inside "steakhouses"
		assert.Equal(t, 50, v.NoiseLevel)
		assert.Equal(t, 100, v.Formality)
		assert.Equal(t, 100, v.PriceLevel)
	})
}

func TestFromSelections(t *testing.T) {
	assert.Equal(t, models.NeutralVibe(), FromSelections(nil))
	assert.Equal(t, models.NeutralVibe(), FromSelections([]string{"not-a-photo"}))

	v := FromSelections([]string{"dim-romantic", "intimate-quiet"})
	require.Equal(t, 20, v.Lighting)
	assert.Equal(t, models.VibeVector{Lighting: 20, NoiseLevel: 18, CrowdVibe: 15, Formality: 58, Adventurousness: 43, PriceLevel: 68}, v)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "balanced preferences", Summary(models.NeutralVibe()))
	assert.Equal(t, "dim lighting, quiet atmosphere, neighborhood feel, familiar classics",
		Summary(models.VibeVector{Lighting: 20, NoiseLevel: 18, CrowdVibe: 15, Formality: 58, Adventurousness: 30, PriceLevel: 68}))
}

func TestFromKeywords(t *testing.T) {
	assert.Equal(t, models.NeutralVibe(), FromKeywords(nil))

	v := FromKeywords([]string{"romantic", "quiet"})
	assert.Equal(t, 0, v.Lighting)
	assert.Equal(t, 0, v.NoiseLevel)
	assert.Equal(t, 50, v.Formality)
}
