package tastebuds

import (
	"context"
	"net/url"
)

// Compatibility returns the pairwise taste analysis between the current
// user and a partner. The "you"/"they" fields are directional from the
// caller's perspective.
func (c *Client) Compatibility(ctx context.Context, partnerID string) (*CompatibilityResponse, error) {
	query := url.Values{"partner_id": {partnerID}}
	var out CompatibilityResponse
	if err := c.get(ctx, "compatibility", "/date-night/compatibility", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DateNightSuggestions returns restaurant picks bucketed by who they suit.
func (c *Client) DateNightSuggestions(ctx context.Context, partnerID, location string) (*DateNightSuggestions, error) {
	query := url.Values{
		"partner_id": {partnerID},
		"location":   {location},
	}
	var out DateNightSuggestions
	if err := c.get(ctx, "date_night_suggestions", "/date-night/suggestions", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
