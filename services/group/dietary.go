package group

import (
	"strconv"
	"strings"

	"slate/models"
)

// DietaryKeywords lists the category or name words that make a venue acceptable
// for a dietary need. Needs not listed match on their own name.
var DietaryKeywords = map[string][]string{
	"vegetarian":  {"vegetarian", "vegan", "indian", "thai", "salad", "mediterranean", "middle eastern", "asian", "japanese", "chinese", "mexican"},
	"vegan":       {"vegan", "vegetarian", "salad", "juice", "smoothie"},
	"gluten-free": {"gluten-free", "gluten free", "salad", "mexican", "steakhouse", "seafood"},
	"halal":       {"halal", "middle eastern", "moroccan", "turkish", "mediterranean", "indian", "pakistani"},
	"kosher":      {"kosher", "jewish", "deli"},
}

// MatchesDietary reports whether r plausibly serves a diner with the given need.
func MatchesDietary(r models.Restaurant, dietary string) bool {
	need := strings.ToLower(strings.TrimSpace(dietary))
	if need == "" {
		return true
	}
	keywords, ok := DietaryKeywords[need]
	if !ok {
		keywords = []string{need}
	}
	cats := strings.ToLower(strings.Join(r.Categories, " "))
	name := strings.ToLower(r.Name)
	for _, k := range keywords {
		if strings.Contains(cats, k) || strings.Contains(name, k) {
			return true
		}
	}
	return false
}

// SummarizeConstraints renders constraints for the elimination log.
func SummarizeConstraints(c models.GroupConstraints) string {
	var parts []string
	if len(c.Dietary) > 0 {
		parts = append(parts, strings.Join(c.Dietary, ", "))
	}
	if len(c.CuisineNo) > 0 {
		parts = append(parts, "no "+strings.Join(c.CuisineNo, "/"))
	}
	if len(c.CuisineYes) > 0 {
		parts = append(parts, "wants "+strings.Join(c.CuisineYes, "/"))
	}
	if c.MaxPrice > 0 {
		parts = append(parts, "max $"+strconv.Itoa(c.MaxPrice)+"pp")
	}
	if c.Accessibility {
		parts = append(parts, "accessible")
	}
	if len(parts) == 0 {
		return "flexible"
	}
	return strings.Join(parts, ", ")
}
