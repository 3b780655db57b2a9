package api

import (
	"context"
	"net/http"
)

// StatusCounts aggregates the current user's jobs by status for the
// dashboard.
type StatusCounts struct {
	Applied      int `json:"applied"`
	Interviewing int `json:"interviewing"`
	Offer        int `json:"offer"`
	Rejected     int `json:"rejected"`
	Total        int `json:"total"`
}

// FetchStatusCounts retrieves job counts grouped by status.
func (c *Client) FetchStatusCounts(ctx context.Context) (*StatusCounts, error) {
	var payload StatusCounts
	if err := c.do(ctx, http.MethodGet, "/api/analytics/status-counts", nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
