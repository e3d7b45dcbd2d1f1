package yelp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"slate/models"
	"slate/services/availability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient("test-key", 100, nil)
	c.BaseURL = srv.URL
	return c
}

func TestClient_Search(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/businesses/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "sushi", r.URL.Query().Get("term"))
		assert.Equal(t, "2,3", r.URL.Query().Get("price"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"businesses":[
			{"id":"a","name":"Nami Nori","rating":4.6,"review_count":900,"price":"$$",
			 "categories":[{"alias":"sushi","title":"Sushi Bars"}],
			 "location":{"address1":"33 Carmine St","city":"New York"},
			 "coordinates":{"latitude":40.73,"longitude":-74.0},"url":"https://yelp.com/biz/a"},
			{"id":"b","name":"No Price","rating":4.0,"review_count":10}
		]}`))
	})

	got, err := c.Search(context.Background(), availability.SearchParams{Term: "sushi", Location: "New York", Price: "2,3", Limit: 5})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Nami Nori", got[0].Name)
	assert.Equal(t, []string{"Sushi Bars"}, got[0].Categories)
	assert.Equal(t, 40.73, got[0].Location.Coordinates.Latitude)
	assert.Equal(t, "$$", got[1].PriceLevel)
}

func TestClient_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := NewClient("", 1, nil)
		_, err := c.Search(context.Background(), availability.SearchParams{Location: "x"})
		assert.ErrorIs(t, err, ErrNoAPIKey)
	})

	t.Run("unauthorized", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		_, err := c.Search(context.Background(), availability.SearchParams{Location: "x"})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("server error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})
		_, err := c.Search(context.Background(), availability.SearchParams{Location: "x"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	})
}

func TestClient_AttemptBookingHandoff(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Message, "Book a table at Lupa")
		_, _ = w.Write([]byte(`{"chat_id":"c1","response":{"text":"I can't complete this booking, please book directly.","businesses":[{"id":"lupa","name":"Lupa","url":"https://yelp.com/biz/lupa"}]}}`))
	})

	res, err := c.AttemptBooking(context.Background(), availability.SlotRequest{
		Restaurant: models.Restaurant{Name: "Lupa"}, Location: "New York", Date: "Friday", Time: "7:00 PM", PartySize: 2,
	})
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.True(t, res.RequiresHandoff)
	assert.Equal(t, "https://yelp.com/biz/lupa", res.HandoffURL)
}

func TestInterpretAvailability(t *testing.T) {
	tests := []struct {
		text      string
		available bool
		alts      []string
	}{
		{"Good news, Lupa has availability at 7:00 pm.", true, []string{"7:00 PM"}},
		{"Sorry, they are fully booked. Try 9pm or 9:30 PM instead.", false, []string{"9PM", "9:30 PM"}},
		{"That time is unavailable.", false, nil},
		{"I could not find that restaurant.", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := InterpretAvailability(tt.text)
			assert.Equal(t, tt.available, got.Available)
			assert.Equal(t, tt.alts, got.AlternativeTimes)
		})
	}
}

func TestInterpretBooking(t *testing.T) {
	got := InterpretBooking("Your reservation is confirmed. Confirmation #LUP-4821.")
	assert.True(t, got.Success)
	assert.Equal(t, "LUP-4821", got.ConfirmationNumber)

	got = InterpretBooking("Please call them to book directly.")
	assert.False(t, got.Success)
	assert.True(t, got.RequiresHandoff)

	got = InterpretBooking("Something went wrong.")
	assert.False(t, got.Success)
	assert.False(t, got.RequiresHandoff)
}
