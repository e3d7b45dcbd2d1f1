// Package yelp talks to the Yelp Fusion and AI chat APIs.
package yelp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"slate/models"
	"slate/services/availability"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.yelp.com/v3"

var (
	ErrNoAPIKey     = errors.New("yelp: YELP_API_KEY is not configured")
	ErrUnauthorized = errors.New("yelp: authentication failed, check YELP_API_KEY")
)

// APIError is a non-2xx answer from Yelp.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("yelp: status %d: %s", e.Status, e.Body)
}

// Client is safe for concurrent use. Every request waits on a shared limiter.
type Client struct {
	APIKey  string
	BaseURL string
	HTTP    *http.Client
	Limiter *rate.Limiter
	Logger  *zap.Logger
}

// NewClient builds a client allowing rps requests per second.
func NewClient(apiKey string, rps float64, logger *zap.Logger) *Client {
	if rps <= 0 {
		rps = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Limiter: rate.NewLimiter(rate.Limit(rps), int(rps)+1),
		Logger:  logger,
	}
}

var _ availability.Provider = (*Client)(nil)

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return err
		}
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("yelp request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: string(msg)}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Search runs a business search.
func (c *Client) Search(ctx context.Context, p availability.SearchParams) ([]models.Restaurant, error) {
	q := url.Values{}
	q.Set("location", p.Location)
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}
	q.Set("limit", strconv.Itoa(limit))
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = "best_match"
	}
	q.Set("sort_by", sortBy)
	if p.Term != "" {
		q.Set("term", p.Term)
	}
	if p.Categories != "" {
		q.Set("categories", p.Categories)
	}
	if p.Price != "" {
		q.Set("price", p.Price)
	}

	var out searchResponse
	if err := c.do(ctx, http.MethodGet, "/businesses/search?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	restaurants := make([]models.Restaurant, 0, len(out.Businesses))
	for _, b := range out.Businesses {
		restaurants = append(restaurants, b.toRestaurant())
	}
	c.Logger.Debug("yelp search", zap.String("term", p.Term), zap.String("location", p.Location), zap.Int("results", len(restaurants)))
	return restaurants, nil
}

// Business fetches one business by id.
func (c *Client) Business(ctx context.Context, id string) (models.Restaurant, error) {
	var b business
	if err := c.do(ctx, http.MethodGet, "/businesses/"+url.PathEscape(id), nil, &b); err != nil {
		return models.Restaurant{}, err
	}
	return b.toRestaurant(), nil
}

// ChatReply is the useful part of an AI chat answer.
type ChatReply struct {
	Text       string
	Businesses []models.Restaurant
	ChatID     string
}

// Chat sends one message in a fresh conversation.
func (c *Client) Chat(ctx context.Context, message string) (ChatReply, error) {
	var out chatResponse
	if err := c.do(ctx, http.MethodPost, "/ai/chat", chatRequest{Message: message}, &out); err != nil {
		return ChatReply{}, err
	}
	reply := ChatReply{Text: out.Response.Text, ChatID: out.ChatID}
	for _, b := range out.Response.Businesses {
		reply.Businesses = append(reply.Businesses, b.toRestaurant())
	}
	return reply, nil
}

func (c *Client) CheckAvailability(ctx context.Context, req availability.SlotRequest) (availability.AvailabilityResult, error) {
	msg := fmt.Sprintf("Check availability at %s in %s for %d people on %s at %s",
		req.Restaurant.Name, req.Location, req.PartySize, req.Date, req.Time)
	reply, err := c.Chat(ctx, msg)
	if err != nil {
		return availability.AvailabilityResult{}, err
	}
	return InterpretAvailability(reply.Text), nil
}

func (c *Client) AttemptBooking(ctx context.Context, req availability.SlotRequest) (availability.BookingResult, error) {
	msg := fmt.Sprintf("Book a table at %s in %s for %d people on %s at %s",
		req.Restaurant.Name, req.Location, req.PartySize, req.Date, req.Time)
	reply, err := c.Chat(ctx, msg)
	if err != nil {
		return availability.BookingResult{}, err
	}
	res := InterpretBooking(reply.Text)
	if res.RequiresHandoff || !res.Success {
		res.HandoffURL = req.Restaurant.URL
		if len(reply.Businesses) > 0 && reply.Businesses[0].URL != "" {
			res.HandoffURL = reply.Businesses[0].URL
		}
	}
	return res, nil
}

// DescribeAtmosphere asks the chat API about a venue's feel.
func (c *Client) DescribeAtmosphere(ctx context.Context, r models.Restaurant) (string, error) {
	msg := fmt.Sprintf("Describe the atmosphere at %s. Is it dim or bright? Quiet or loud? Neighborhood feel or trendy scene? Casual or upscale? Traditional or experimental?", r.Name)
	reply, err := c.Chat(ctx, msg)
	if err != nil {
		return "", err
	}
	return reply.Text, nil
}
