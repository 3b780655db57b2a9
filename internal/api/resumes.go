package api

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
)

// ResumeDownload is a raw resume file fetched from the API. The resume
// endpoint is the one place the backend answers with bytes instead of the
// JSON envelope; error responses still carry the envelope.
type ResumeDownload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// FetchResume downloads the resume attached to a job.
func (c *Client) FetchResume(ctx context.Context, jobID string) (*ResumeDownload, error) {
	rel := &url.URL{Path: "/api/resumes/" + url.PathEscape(jobID)}
	reqURL := c.baseURL.ResolveReference(rel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		env, err := normalizeEnvelope(raw)
		if err != nil {
			return nil, &Error{
				Code:    CodeInvalidResponse,
				Message: "invalid server response",
				Status:  resp.StatusCode,
			}
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.handleUnauthorized()
		}
		if env.Error != nil {
			return nil, &Error{
				Code:    env.Error.Code,
				Message: env.Error.Message,
				Status:  resp.StatusCode,
			}
		}
		return nil, &Error{
			Code:    CodeUnknownError,
			Message: "unknown API error",
			Status:  resp.StatusCode,
		}
	}

	return &ResumeDownload{
		Filename:    attachmentFilename(resp.Header.Get("Content-Disposition")),
		ContentType: resp.Header.Get("Content-Type"),
		Content:     raw,
	}, nil
}

func attachmentFilename(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
