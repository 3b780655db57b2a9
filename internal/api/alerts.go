package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Alert is a scheduled reminder configured for the current user.
type Alert struct {
	ID             string `json:"id"`
	ScheduledAlert string `json:"scheduledAlert"`
	SMSOrEmail     string `json:"smsOrEmail"`
	Message        string `json:"message"`
}

// AlertPage mirrors the paginated payload of GET /api/alerts.
type AlertPage struct {
	Items []Alert  `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// FetchAlerts retrieves one page of alerts.
func (c *Client) FetchAlerts(ctx context.Context, page, pageSize int) (*AlertPage, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("pageSize", strconv.Itoa(pageSize))

	rel := &url.URL{Path: "/api/alerts", RawQuery: values.Encode()}
	var payload AlertPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
