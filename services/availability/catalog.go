package availability

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"slate/models"
)

// genericTerms match every venue.
var genericTerms = map[string]bool{"restaurant": true, "restaurants": true, "dinner": true, "food": true}

// Catalog is a Searcher over a fixed list of venues. The CLI uses it when no
// upstream API key is configured, and tests use it as a fake.
type Catalog struct {
	Restaurants []models.Restaurant
}

func NewCatalog(rs []models.Restaurant) *Catalog {
	return &Catalog{Restaurants: rs}
}

func (c *Catalog) Search(_ context.Context, p SearchParams) ([]models.Restaurant, error) {
	prices := parsePriceFilter(p.Price)
	terms := strings.Fields(strings.ToLower(p.Term))
	loc := strings.ToLower(strings.TrimSpace(p.Location))

	var out []models.Restaurant
	for _, r := range c.Restaurants {
		if loc != "" && !matchesLocation(r, loc) {
			continue
		}
		if len(prices) > 0 && !prices[r.PriceOrdinal()] {
			continue
		}
		if !matchesTerms(r, terms) {
			continue
		}
		out = append(out, r)
	}
	if p.SortBy == "rating" {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func matchesLocation(r models.Restaurant, loc string) bool {
	for _, field := range []string{r.Location.City, r.Location.Neighborhood, r.Location.Address} {
		f := strings.ToLower(field)
		if f == "" {
			continue
		}
		if strings.Contains(f, loc) || strings.Contains(loc, f) {
			return true
		}
	}
	return false
}

func matchesTerms(r models.Restaurant, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	hay := strings.ToLower(r.Name + " " + strings.Join(r.Categories, " "))
	for _, t := range terms {
		if genericTerms[t] || strings.Contains(hay, t) {
			return true
		}
	}
	return false
}

// parsePriceFilter reads "1,2" style filters into a set of ordinals.
func parsePriceFilter(price string) map[int]bool {
	if price == "" {
		return nil
	}
	set := make(map[int]bool)
	for _, p := range strings.Split(price, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			set[n] = true
		}
	}
	return set
}
