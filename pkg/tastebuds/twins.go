package tastebuds

import "context"

// Twins lists users whose Taste DNA is similar to the current user's.
func (c *Client) Twins(ctx context.Context) (*TwinsResponse, error) {
	var out TwinsResponse
	if err := c.get(ctx, "twins", "/twins", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TwinCount returns the number of matched twins.
func (c *Client) TwinCount(ctx context.Context) (int, error) {
	var out TwinCountResponse
	if err := c.get(ctx, "twin_count", "/twins/count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// RefreshTwins asks the backend to recompute the match set and returns the
// fresh list.
func (c *Client) RefreshTwins(ctx context.Context) (*TwinsResponse, error) {
	var out TwinsResponse
	if err := c.post(ctx, "refresh_twins", "/twins/refresh", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
