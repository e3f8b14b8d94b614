package tastebuds

import (
	"context"
	"net/url"
	"strconv"
)

type chatRequest struct {
	Query       string   `json:"query"`
	ChatID      string   `json:"chat_id,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	UseTasteDNA bool     `json:"use_taste_dna"`
}

type compareRestaurantsRequest struct {
	RestaurantIDs []string `json:"restaurant_ids"`
	Criteria      string   `json:"criteria"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
}

type recommendRequest struct {
	Occasion  string   `json:"occasion"`
	PartySize *int     `json:"party_size,omitempty"`
	DateTime  string   `json:"date_time,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

type askRequest struct {
	RestaurantID string   `json:"restaurant_id"`
	Question     string   `json:"question"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// ChatOptions tunes an AI chat turn. Nil coordinates are omitted from the
// payload rather than sent as zeroes.
type ChatOptions struct {
	ChatID       string // continue a previous conversation
	Latitude     *float64
	Longitude    *float64
	SkipTasteDNA bool
}

// Chat runs one conversational turn against the AI assistant. Taste DNA
// personalization is on unless opted out.
func (c *Client) Chat(ctx context.Context, query string, opts *ChatOptions) (*AIChatResponse, error) {
	body := chatRequest{Query: query, UseTasteDNA: true}
	if opts != nil {
		body.ChatID = opts.ChatID
		body.Latitude = opts.Latitude
		body.Longitude = opts.Longitude
		body.UseTasteDNA = !opts.SkipTasteDNA
	}

	var out AIChatResponse
	if err := c.post(ctx, "ai_chat", "/ai-chat/chat", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SmartSearch runs a one-shot natural-language search.
func (c *Client) SmartSearch(ctx context.Context, query string, lat, lon *float64) (*AIChatResponse, error) {
	params := url.Values{"query": {query}}
	if lat != nil {
		params.Set("latitude", strconv.FormatFloat(*lat, 'f', -1, 64))
	}
	if lon != nil {
		params.Set("longitude", strconv.FormatFloat(*lon, 'f', -1, 64))
	}

	var out AIChatResponse
	if err := c.get(ctx, "ai_smart_search", "/ai-chat/smart-search", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompareRestaurants asks the assistant to weigh a set of restaurants
// against a criterion. An empty criterion defaults to overall experience.
func (c *Client) CompareRestaurants(ctx context.Context, restaurantIDs []string, criteria string, lat, lon *float64) (*AIChatResponse, error) {
	if criteria == "" {
		criteria = "overall experience"
	}
	body := compareRestaurantsRequest{
		RestaurantIDs: restaurantIDs,
		Criteria:      criteria,
		Latitude:      lat,
		Longitude:     lon,
	}

	var out AIChatResponse
	if err := c.post(ctx, "ai_compare", "/ai-chat/compare", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend asks for picks suited to an occasion. Party size zero and empty
// date-time are omitted.
func (c *Client) Recommend(ctx context.Context, occasion string, partySize int, dateTime string, lat, lon *float64) (*AIChatResponse, error) {
	body := recommendRequest{
		Occasion:  occasion,
		DateTime:  dateTime,
		Latitude:  lat,
		Longitude: lon,
	}
	if partySize > 0 {
		body.PartySize = &partySize
	}

	var out AIChatResponse
	if err := c.post(ctx, "ai_recommend", "/ai-chat/recommend", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AskAboutRestaurant asks a free-form question about one restaurant.
func (c *Client) AskAboutRestaurant(ctx context.Context, restaurantID, question string, lat, lon *float64) (*AIChatResponse, error) {
	body := askRequest{
		RestaurantID: restaurantID,
		Question:     question,
		Latitude:     lat,
		Longitude:    lon,
	}

	var out AIChatResponse
	if err := c.post(ctx, "ai_ask", "/ai-chat/ask", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
