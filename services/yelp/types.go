package yelp

import "slate/models"

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
}

type chatRequest struct {
	Message string `json:"message"`
	ChatID  string `json:"chat_id,omitempty"`
}

type chatResponse struct {
	Response struct {
		Text       string     `json:"text"`
		Businesses []business `json:"businesses"`
	} `json:"response"`
	ChatID string `json:"chat_id"`
}

type business struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	Price       string  `json:"price"`
	Categories  []struct {
		Alias string `json:"alias"`
		Title string `json:"title"`
	} `json:"categories"`
	Location struct {
		Address1     string `json:"address1"`
		City         string `json:"city"`
		Neighborhood string `json:"neighborhood"`
	} `json:"location"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Phone    string `json:"phone"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
}

func (b business) toRestaurant() models.Restaurant {
	price := b.Price
	if price == "" {
		price = "$$"
	}
	cats := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		cats = append(cats, c.Title)
	}
	return models.Restaurant{
		ID:          b.ID,
		Name:        b.Name,
		Rating:      b.Rating,
		ReviewCount: b.ReviewCount,
		PriceLevel:  price,
		Categories:  cats,
		Location: models.RestaurantLocation{
			Address:      b.Location.Address1,
			City:         b.Location.City,
			Neighborhood: b.Location.Neighborhood,
			Coordinates: models.Coordinates{
				Latitude:  b.Coordinates.Latitude,
				Longitude: b.Coordinates.Longitude,
			},
		},
		Phone:    b.Phone,
		URL:      b.URL,
		ImageURL: b.ImageURL,
	}
}
