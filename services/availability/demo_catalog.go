package availability

import "slate/models"

func venue(id, name, price string, rating float64, reviews int, lat, lng float64, hood string, cats ...string) models.Restaurant {
	return models.Restaurant{
		ID:          id,
		Name:        name,
		Rating:      rating,
		ReviewCount: reviews,
		PriceLevel:  price,
		Categories:  cats,
		Location: models.RestaurantLocation{
			Address:      hood + ", Manhattan, New York, NY",
			City:         "New York",
			Neighborhood: hood,
			Coordinates:  models.Coordinates{Latitude: lat, Longitude: lng},
		},
		URL: "https://www.yelp.com/biz/" + id,
	}
}

// DemoCatalog is a small, walkable set of Manhattan venues.
func DemoCatalog() *Catalog {
	return NewCatalog([]models.Restaurant{
		venue("via-carota", "Via Carota", "$$$", 4.5, 2100, 40.7333, -74.0037, "West Village", "Italian", "Wine Bars"),
		venue("lupa", "Lupa Osteria Romana", "$$", 4.3, 1800, 40.7295, -74.0006, "Greenwich Village", "Italian"),
		venue("nami-nori", "Nami Nori", "$$", 4.6, 900, 40.7300, -74.0030, "West Village", "Japanese", "Sushi Bars"),
		venue("kiin-thai", "Kiin Thai Eatery", "$$", 4.4, 700, 40.7340, -73.9920, "Greenwich Village", "Thai"),
		venue("dirt-candy", "Dirt Candy", "$$$", 4.4, 950, 40.7185, -73.9890, "Lower East Side", "Vegetarian", "New American"),
		venue("cote", "Cote Korean Steakhouse", "$$$$", 4.6, 2500, 40.7410, -73.9930, "Flatiron", "Korean", "Steakhouses"),
		venue("semma", "Semma", "$$$", 4.5, 600, 40.7337, -74.0011, "West Village", "Indian"),
		venue("dante", "Dante", "$$$", 4.4, 1900, 40.7298, -74.0023, "West Village", "Cocktail Bars", "Italian"),
		venue("little-branch", "Little Branch", "$$", 4.5, 800, 40.7304, -74.0047, "West Village", "Cocktail Bars", "Lounges"),
		venue("amorino", "Amorino Gelato", "$", 4.4, 400, 40.7319, -74.0028, "West Village", "Ice Cream & Frozen Yogurt", "Desserts"),
		venue("milk-bar", "Milk Bar", "$", 4.0, 600, 40.7330, -74.0010, "West Village", "Desserts", "Bakeries"),
	})
}
