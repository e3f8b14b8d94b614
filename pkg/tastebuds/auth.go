package tastebuds

import "context"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. No Authorization header is
// sent; persisting the returned token is the caller's job.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "login", "/auth/login", nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account and returns a token for the new user.
func (c *Client) Register(ctx context.Context, email, name, password string) (*AuthResponse, error) {
	var out AuthResponse
	err := c.post(ctx, "register", "/auth/register", nil, registerRequest{Email: email, Name: name, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentUser returns the identity behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out User
	if err := c.get(ctx, "current_user", "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
