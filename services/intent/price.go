package intent

import (
	"strings"

	"slate/models"
)

// MapToPrice converts a budget or vibe words into a provider price filter such
// as "1,2". It returns "" when nothing constrains price.
func MapToPrice(in models.ParsedIntent) string {
	if in.Budget != nil && *in.Budget > 0 {
		switch b := *in.Budget; {
		case b <= 20:
			return "1"
		case b <= 40:
			return "1,2"
		case b <= 60:
			return "2,3"
		case b <= 100:
			return "3,4"
		default:
			return "4"
		}
	}
	for _, v := range in.VibeKeywords {
		if p, ok := BudgetKeywords[strings.ToLower(v)]; ok {
			return p
		}
	}
	return ""
}
