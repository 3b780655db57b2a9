package api

import (
	"context"
	"net/http"
)

// LoginRequest is the credentials payload for /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token. ExpiresIn is in seconds.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Pfp         string `json:"pfp"`
}

// RegisterResponse identifies the created account. A fresh registration is
// followed by a normal login to obtain a token.
type RegisterResponse struct {
	UserID string `json:"userId"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var payload LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var payload RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
