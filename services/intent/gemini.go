package intent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"slate/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Generator produces text for a prompt.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiClient returns a client whose model answers in JSON.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)
	return &GeminiClient{client: client, model: model}, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// GeminiParser asks the model for a structured intent and falls back to
// keyword parsing when the model fails or answers with something unusable.
type GeminiParser struct {
	Generator Generator
	Fallback  *KeywordParser
	Logger    *zap.Logger
}

func NewGeminiParser(gen Generator, fallback *KeywordParser, logger *zap.Logger) *GeminiParser {
	if fallback == nil {
		fallback = NewKeywordParser()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GeminiParser{Generator: gen, Fallback: fallback, Logger: logger}
}

const intentPrompt = `Extract the dinner plan from the request below. Today is %s.
Answer with a single JSON object with these fields:
date (string, formatted like "%s"), time (string like "7:00 PM"), partySize (integer),
location (string, empty if none is named), cuisines (array of strings),
vibeKeywords (array of strings), budget (integer dollars per person, omit if none),
occasion (string), includeDrinks (boolean), includeDessert (boolean),
dietaryRestrictions (array of strings).

Request: %q`

func (p *GeminiParser) Parse(ctx context.Context, text string) models.ParsedIntent {
	base := p.Fallback.Parse(ctx, text)
	if p.Generator == nil {
		return base
	}

	today := p.Fallback.now().Format(DateLayout)
	out, err := p.Generator.GenerateContent(ctx, fmt.Sprintf(intentPrompt, today, DateLayout, text))
	if err != nil {
		p.Logger.Warn("gemini intent parse failed, using keywords", zap.Error(err))
		return base
	}

	var parsed models.ParsedIntent
	if err := json.Unmarshal([]byte(stripFences(out)), &parsed); err != nil {
		p.Logger.Warn("gemini returned invalid intent JSON, using keywords", zap.Error(err))
		return base
	}
	return merge(parsed, base)
}

// merge fills gaps in the model's answer from the keyword parse.
func merge(m, base models.ParsedIntent) models.ParsedIntent {
	if m.Date == "" {
		m.Date = base.Date
	}
	if m.Time == "" {
		m.Time = base.Time
	}
	if m.PartySize < 1 {
		m.PartySize = base.PartySize
	}
	m.Location = strings.TrimSpace(m.Location)
	if m.Location == "" {
		m.Location = base.Location
	}
	if m.Cuisines == nil {
		m.Cuisines = base.Cuisines
	}
	if m.VibeKeywords == nil {
		m.VibeKeywords = base.VibeKeywords
	}
	if m.DietaryRestrictions == nil {
		m.DietaryRestrictions = base.DietaryRestrictions
	}
	if m.Budget == nil {
		m.Budget = base.Budget
	}
	if m.Occasion == "" {
		m.Occasion = base.Occasion
	}
	return m
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
