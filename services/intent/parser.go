// Package intent turns a free-text evening request into a ParsedIntent.
package intent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"slate/models"
)

// DateLayout is how intent dates are rendered, e.g. "Friday, October 16, 2026".
const DateLayout = "Monday, January 2, 2006"

// DefaultPartySize is used when the request does not say how many people.
const DefaultPartySize = 2

type Parser interface {
	Parse(ctx context.Context, text string) models.ParsedIntent
}

// KeywordParser extracts an intent with keyword tables and regular expressions.
// It never fails; fields it cannot find keep their defaults and Location stays empty.
type KeywordParser struct {
	Now func() time.Time
}

func NewKeywordParser() *KeywordParser {
	return &KeywordParser{Now: time.Now}
}

var (
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\b(?:at|around)\s+|@\s*)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?\b`),
		regexp.MustCompile(`(?i)\b(\d{1,2})(?::(\d{2}))?\s*(am|pm)\b`),
		regexp.MustCompile(`\b(\d{1,2}):(\d{2})\b`),
	}
	forNumberRe   = regexp.MustCompile(`(?i)\bfor\s+(\d+)(\s*(?::\d|am\b|pm\b))?`)
	partyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+)\s+(?:people|guests|persons|of us)\b`),
		regexp.MustCompile(`(?i)\bparty\s+of\s+(\d+)`),
		regexp.MustCompile(`(?i)\b(\d+)\s+(?:top|pax)\b`),
	}
	inLocationRe   = regexp.MustCompile(`(?i)\bin\s+([A-Za-z][A-Za-z\s'-]+?)(?:\s+(?:for|at|around|near|tonight|tomorrow|this|next|on)\b|\s+\d|,|\.|\s*$)`)
	nearLocationRe = regexp.MustCompile(`(?i)\b(?:near|around|by)\s+([A-Za-z][A-Za-z\s'-]+?)(?:\s+(?:for|at)\b|\s+\d|,|\.|\s*$)`)
	cityStateRe    = regexp.MustCompile(`([A-Za-z][A-Za-z\s'-]+),\s*([A-Z]{2}|[A-Za-z]+)`)
	monthDayRe     = regexp.MustCompile(`(?i)\b([a-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\b`)
	dollarRe       = regexp.MustCompile(`\$(\d+)`)
	perPersonRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:per person|pp|each)\b`)
	drinksRe       = regexp.MustCompile(`\b(?:drinks?|cocktails?|bars?|after|nightcap)\b`)
	dessertRe      = regexp.MustCompile(`\b(?:desserts?|sweets?|ice cream)\b`)
)

var weekdays = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func (p *KeywordParser) Parse(_ context.Context, text string) models.ParsedIntent {
	lower := strings.ToLower(text)
	t := extractTime(text)
	if t == "" {
		t = models.DefaultDinnerTime
	}
	return models.ParsedIntent{
		Date:                extractDate(lower, p.now()).Format(DateLayout),
		Time:                t,
		PartySize:           extractPartySize(text),
		Location:            extractLocation(text),
		Cuisines:            findTerms(lower, Cuisines),
		VibeKeywords:        append(findTerms(lower, Vibes), findTerms(lower, VibePhrases)...),
		Budget:              extractBudget(lower),
		Occasion:            firstTerm(lower, Occasions),
		IncludeDrinks:       drinksRe.MatchString(lower),
		IncludeDessert:      dessertRe.MatchString(lower),
		DietaryRestrictions: findTerms(lower, Dietary),
	}
}

func (p *KeywordParser) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

func extractDate(lower string, today time.Time) time.Time {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())

	if strings.Contains(lower, "tonight") || strings.Contains(lower, "today") {
		return today
	}
	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1)
	}
	for i, day := range weekdays {
		if containsWord(lower, day) {
			diff := (i - int(today.Weekday()) + 7) % 7
			if diff == 0 {
				diff = 7
			}
			return today.AddDate(0, 0, diff)
		}
	}
	if strings.Contains(lower, "this weekend") {
		diff := (6 - int(today.Weekday()) + 7) % 7
		if diff == 0 {
			diff = 7
		}
		return today.AddDate(0, 0, diff)
	}
	for _, m := range monthDayRe.FindAllStringSubmatch(lower, -1) {
		month, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		d := time.Date(today.Year(), month, day, 0, 0, 0, 0, today.Location())
		if d.Before(today) {
			d = d.AddDate(1, 0, 0)
		}
		return d
	}
	return today
}

func monthIndex(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

func extractTime(text string) string {
	for _, re := range timePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		hour, _ := strconv.Atoi(m[1])
		minutes := "00"
		if m[2] != "" {
			minutes = m[2]
		}
		period := ""
		if len(m) > 3 {
			period = strings.ToUpper(m[3])
		}
		if period == "" {
			// Bare hours are dinner times.
			if hour >= 1 && hour <= 12 {
				period = "PM"
			} else {
				period = "AM"
			}
		}
		if hour > 12 {
			hour -= 12
			period = "PM"
		}
		return fmt.Sprintf("%d:%s %s", hour, minutes, period)
	}
	return ""
}

func extractPartySize(text string) int {
	for _, m := range forNumberRe.FindAllStringSubmatch(text, -1) {
		if m[2] != "" {
			continue
		}
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}
	for _, re := range partyPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return n
			}
		}
	}
	lower := strings.ToLower(text)
	for _, w := range wordNumbers {
		if strings.Contains(lower, "for "+w.word) || strings.Contains(lower, w.word+" people") {
			return w.n
		}
	}
	return DefaultPartySize
}

func extractLocation(text string) string {
	if m := inLocationRe.FindStringSubmatch(text); m != nil {
		loc := trimArticle(strings.TrimSpace(m[1]))
		if !nonLocations[strings.ToLower(loc)] && len(loc) > 1 {
			return cleanLocation(loc)
		}
	}
	if m := nearLocationRe.FindStringSubmatch(text); m != nil {
		return cleanLocation(strings.TrimSpace(m[1]))
	}
	if m := cityStateRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1]) + ", " + strings.TrimSpace(m[2])
	}
	lower := strings.ToLower(text)
	for _, city := range KnownCities {
		if containsWord(lower, city) {
			return cleanLocation(city)
		}
	}
	return ""
}

func trimArticle(loc string) string {
	lower := strings.ToLower(loc)
	for _, a := range []string{"the ", "a ", "my ", "our "} {
		if strings.HasPrefix(lower, a) {
			return strings.TrimSpace(loc[len(a):])
		}
	}
	return loc
}

var acronyms = map[string]string{"nyc": "NYC", "sf": "SF", "la": "LA", "dc": "DC"}

func cleanLocation(loc string) string {
	words := strings.Fields(loc)
	for i, w := range words {
		lw := strings.ToLower(w)
		if a, ok := acronyms[lw]; ok {
			words[i] = a
			continue
		}
		words[i] = strings.ToUpper(lw[:1]) + lw[1:]
	}
	return strings.Join(words, " ")
}

func extractBudget(lower string) *int {
	for _, re := range []*regexp.Regexp{dollarRe, perPersonRe} {
		if m := re.FindStringSubmatch(lower); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return &n
			}
		}
	}
	return nil
}

func findTerms(lower string, terms []string) []string {
	found := []string{}
	for _, t := range terms {
		if containsWord(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

func firstTerm(lower string, terms []string) string {
	for _, t := range terms {
		if containsWord(lower, t) {
			return t
		}
	}
	return ""
}

// containsWord reports whether term appears in s bounded by non-letters.
func containsWord(s, term string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], term)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(term)
		if (start == 0 || !isLetter(s[start-1])) && (end == len(s) || !isLetter(s[end])) {
			return true
		}
		from = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
