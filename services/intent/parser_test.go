package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"slate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Friday, October 16, 2026.
var fixedNow = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

func parse(text string) models.ParsedIntent {
	p := &KeywordParser{Now: func() time.Time { return fixedNow }}
	return p.Parse(context.Background(), text)
}

func TestKeywordParser_Full(t *testing.T) {
	in := parse("Romantic italian dinner for 4 in West Village at 8pm tomorrow, then drinks")

	assert.Equal(t, "Saturday, October 17, 2026", in.Date)
	assert.Equal(t, "8:00 PM", in.Time)
	assert.Equal(t, 4, in.PartySize)
	assert.Equal(t, "West Village", in.Location)
	assert.Equal(t, []string{"italian", "dinner"}, in.Cuisines)
	assert.Equal(t, []string{"romantic"}, in.VibeKeywords)
	assert.True(t, in.IncludeDrinks)
	assert.False(t, in.IncludeDessert)
}

func TestKeywordParser_Date(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"dinner tonight", "Friday, October 16, 2026"},
		{"sushi on monday", "Monday, October 19, 2026"},
		{"friday dinner", "Friday, October 23, 2026"},
		{"something this weekend", "Saturday, October 17, 2026"},
		{"december 20th for 2", "Sunday, December 20, 2026"},
		{"march 3 please", "Wednesday, March 3, 2027"},
		{"whenever", "Friday, October 16, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.text).Date)
		})
	}
}

func TestKeywordParser_Time(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"dinner at 7", "7:00 PM"},
		{"around 8:30", "8:30 PM"},
		{"table at 7:45pm", "7:45 PM"},
		{"19:30 works", "7:30 PM"},
		{"brunch 11am", "11:00 AM"},
		{"no time given", models.DefaultDinnerTime},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.text).Time)
		})
	}
}

func TestKeywordParser_PartySize(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"table for 6", 6},
		{"we are 3 people", 3},
		{"party of 8", 8},
		{"dinner for five", 5},
		{"reservation for 7pm for 4", 4},
		{"just dinner", DefaultPartySize},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.text).PartySize)
		})
	}
}

func TestKeywordParser_Location(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"dinner in brooklyn tonight", "Brooklyn"},
		{"tacos near union square for 2", "Union Square"},
		{"Austin, TX bbq", "Austin, TX"},
		{"pizza in nyc", "NYC"},
		{"somewhere fun in chicago", "Chicago"},
		{"relaxed dinner for two", ""},
		{"in the mood for ramen", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, parse(tt.text).Location)
		})
	}
}

func TestKeywordParser_BudgetDietaryOccasion(t *testing.T) {
	in := parse("Anniversary dinner, vegan options, $80 per person, dessert after")
	require.NotNil(t, in.Budget)
	assert.Equal(t, 80, *in.Budget)
	assert.Equal(t, []string{"vegan"}, in.DietaryRestrictions)
	assert.Equal(t, "anniversary", in.Occasion)
	assert.True(t, in.IncludeDessert)

	in = parse("barbecue with friends")
	assert.False(t, in.IncludeDrinks)
	assert.Nil(t, in.Budget)
}

func TestMapToPrice(t *testing.T) {
	budget := func(n int) *int { return &n }
	tests := []struct {
		name string
		in   models.ParsedIntent
		want string
	}{
		{"cheap budget", models.ParsedIntent{Budget: budget(15)}, "1"},
		{"mid budget", models.ParsedIntent{Budget: budget(40)}, "1,2"},
		{"nice budget", models.ParsedIntent{Budget: budget(55)}, "2,3"},
		{"high budget", models.ParsedIntent{Budget: budget(100)}, "3,4"},
		{"splurge budget", models.ParsedIntent{Budget: budget(250)}, "4"},
		{"vibe", models.ParsedIntent{VibeKeywords: []string{"romantic", "Upscale"}}, "3,4"},
		{"budget wins", models.ParsedIntent{Budget: budget(15), VibeKeywords: []string{"fancy"}}, "1"},
		{"none", models.ParsedIntent{VibeKeywords: []string{"quiet"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapToPrice(tt.in))
		})
	}
}

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) GenerateContent(context.Context, string) (string, error) {
	return s.out, s.err
}

func TestGeminiParser(t *testing.T) {
	kw := &KeywordParser{Now: func() time.Time { return fixedNow }}
	text := "thai for 3 in Queens"

	t.Run("uses model answer", func(t *testing.T) {
		p := NewGeminiParser(stubGenerator{out: "```json\n{\"location\":\"Astoria, Queens\",\"partySize\":3,\"cuisines\":[\"thai\"],\"includeDrinks\":true}\n```"}, kw, zap.NewNop())
		in := p.Parse(context.Background(), text)
		assert.Equal(t, "Astoria, Queens", in.Location)
		assert.True(t, in.IncludeDrinks)
		assert.Equal(t, "Friday, October 16, 2026", in.Date)
		assert.Equal(t, models.DefaultDinnerTime, in.Time)
	})

	t.Run("falls back on error", func(t *testing.T) {
		p := NewGeminiParser(stubGenerator{err: errors.New("quota")}, kw, zap.NewNop())
		assert.Equal(t, kw.Parse(context.Background(), text), p.Parse(context.Background(), text))
	})

	t.Run("falls back on bad json", func(t *testing.T) {
		p := NewGeminiParser(stubGenerator{out: "sure! here you go"}, kw, zap.NewNop())
		assert.Equal(t, "Queens", p.Parse(context.Background(), text).Location)
	})
}
