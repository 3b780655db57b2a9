package api

import (
	"context"
	"net/http"
)

// User is the account record returned by the API. Timestamps are ISO-8601
// strings, passed through as-is.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Pfp         string `json:"pfp"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// FetchCurrentUser retrieves the authenticated user's profile.
func (c *Client) FetchCurrentUser(ctx context.Context) (*User, error) {
	var payload User
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
