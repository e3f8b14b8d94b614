package tastebuds

import (
	"context"
	"net/url"
	"strconv"
)

// FeelingLucky returns a single recommended restaurant with an explanation
// and the twin signals behind it.
func (c *Client) FeelingLucky(ctx context.Context, location string) (*FeelingLuckyResponse, error) {
	query := url.Values{"location": {location}}
	var out FeelingLuckyResponse
	if err := c.get(ctx, "feeling_lucky", "/discovery/lucky", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Compare returns a small candidate set for side-by-side comparison. A limit
// of zero falls back to the backend default.
func (c *Client) Compare(ctx context.Context, location string, limit int) (*CompareResponse, error) {
	query := url.Values{"location": {location}}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out CompareResponse
	if err := c.get(ctx, "compare", "/discovery/compare", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Trending lists restaurants currently popular among the user's twins.
func (c *Client) Trending(ctx context.Context, location string) (*TrendingResponse, error) {
	query := url.Values{"location": {location}}
	var out TrendingResponse
	if err := c.get(ctx, "trending", "/discovery/trending", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
