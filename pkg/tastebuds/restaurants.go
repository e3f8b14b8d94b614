package tastebuds

import (
	"context"
	"net/url"
	"strconv"
)

// SearchParams narrows a restaurant search. Only Location is required;
// unset optional fields are omitted from the query entirely, never sent as
// empty strings.
type SearchParams struct {
	Location   string
	Term       string
	Limit      int
	Offset     int
	Price      string // comma-separated tiers, e.g. "1,2"
	Categories string // comma-separated Yelp aliases
	OpenNow    bool
}

func (p SearchParams) values() url.Values {
	query := url.Values{"location": {p.Location}}
	if p.Term != "" {
		query.Set("term", p.Term)
	}
	if p.Limit > 0 {
		query.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		query.Set("offset", strconv.Itoa(p.Offset))
	}
	if p.Price != "" {
		query.Set("price", p.Price)
	}
	if p.Categories != "" {
		query.Set("categories", p.Categories)
	}
	if p.OpenNow {
		query.Set("open_now", "true")
	}
	return query
}

type saveRequest struct {
	Notes string `json:"notes,omitempty"`
}

type logInteractionRequest struct {
	ActionType string `json:"action_type"`
	Context    string `json:"context,omitempty"`
}

// SearchRestaurants queries the catalog with personalized match scores.
func (c *Client) SearchRestaurants(ctx context.Context, params SearchParams) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.get(ctx, "search_restaurants", "/restaurants/search", params.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restaurant fetches the detail record for one business.
func (c *Client) Restaurant(ctx context.Context, restaurantID string) (*RestaurantDetail, error) {
	var out RestaurantDetail
	if err := c.get(ctx, "restaurant", "/restaurants/"+url.PathEscape(restaurantID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RestaurantReviews fetches read-only reviews for one business.
func (c *Client) RestaurantReviews(ctx context.Context, restaurantID string) (*ReviewsResponse, error) {
	var out ReviewsResponse
	if err := c.get(ctx, "restaurant_reviews", "/restaurants/"+url.PathEscape(restaurantID)+"/reviews", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveRestaurant bookmarks a restaurant for the current user.
func (c *Client) SaveRestaurant(ctx context.Context, restaurantID, notes string) (*SaveResponse, error) {
	var out SaveResponse
	if err := c.post(ctx, "save_restaurant", "/restaurants/"+url.PathEscape(restaurantID)+"/save", nil, saveRequest{Notes: notes}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SavedRestaurants lists the current user's bookmarks.
func (c *Client) SavedRestaurants(ctx context.Context) ([]SavedRestaurant, error) {
	var out []SavedRestaurant
	if err := c.get(ctx, "saved_restaurants", "/restaurants/saved/list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LogInteraction records a view/save/visit signal used by the backend for
// scoring and challenge progress.
func (c *Client) LogInteraction(ctx context.Context, restaurantID, actionType, interactionContext string) (*MessageResponse, error) {
	body := logInteractionRequest{ActionType: actionType, Context: interactionContext}
	var out MessageResponse
	if err := c.post(ctx, "log_interaction", "/restaurants/"+url.PathEscape(restaurantID)+"/log", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
