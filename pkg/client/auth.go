package client

import (
	"context"
	"net/http"
	"time"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResult struct {
	User      User       `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}

	var result authResult
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}

	c.Session.SetToken(result.Token)
	return &result.User, nil
}

// Logout revokes the session server-side and clears local state.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.Session.Clear()

	c.mu.Lock()
	c.statuses = make(map[string]string)
	c.mu.Unlock()
	c.cache.Flush()

	return err
}
