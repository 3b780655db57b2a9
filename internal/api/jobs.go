package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Job is a tracked application as returned by the API.
type Job struct {
	ID             string  `json:"id"`
	UserID         string  `json:"userId"`
	JobID          string  `json:"jobId"`
	URL            string  `json:"url"`
	JobTitle       string  `json:"jobTitle"`
	Company        string  `json:"company"`
	SalaryTarget   float64 `json:"salaryTarget"`
	SalaryRange    string  `json:"salaryRange"`
	Status         string  `json:"status"`
	Location       string  `json:"location"`
	EmploymentType string  `json:"employmentType"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// JobPage mirrors the paginated payload of GET /api/jobs.
type JobPage struct {
	Items []Job    `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// JobQuery configures GET /api/jobs requests. Zero values fall back to the
// server defaults (page 1, 25 per page, sorted by createdAt ascending).
type JobQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string

	// Filters is sent as a single JSON-stringified "filters" parameter.
	Filters map[string]any
}

// ResumeUpload attaches a resume file to a job draft.
type ResumeUpload struct {
	Filename string
	Content  io.Reader
}

// JobDraft carries the client-authored fields of a job for create and
// update calls. Empty fields are omitted from the request; the backend
// ignores absent fields on update and rejects empty payloads.
type JobDraft struct {
	JobID          string
	URL            string
	JobTitle       string
	Company        string
	SalaryTarget   float64
	SalaryRange    string
	Status         string
	Location       string
	EmploymentType string

	// Resume switches the request body to multipart form data.
	Resume *ResumeUpload
}

// JobCreated is the authoritative subset returned by POST /api/jobs. The
// caller merges it into the locally held draft rather than refetching.
type JobCreated struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// JobUpdated is the sole field returned by PUT /api/jobs/{id}.
type JobUpdated struct {
	UpdatedAt string `json:"updatedAt"`
}

// FetchJobs retrieves one page of the current user's jobs.
func (c *Client) FetchJobs(ctx context.Context, query JobQuery) (*JobPage, error) {
	values := url.Values{}
	page := query.Page
	if page <= 0 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	sortBy := strings.TrimSpace(query.SortBy)
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sortOrder := strings.TrimSpace(query.SortOrder)
	if sortOrder == "" {
		sortOrder = "asc"
	}
	values.Set("page", strconv.Itoa(page))
	values.Set("pageSize", strconv.Itoa(pageSize))
	values.Set("sortBy", sortBy)
	values.Set("sortOrder", sortOrder)
	if len(query.Filters) > 0 {
		encoded, err := json.Marshal(query.Filters)
		if err != nil {
			return nil, fmt.Errorf("encode filters: %w", err)
		}
		values.Set("filters", string(encoded))
	}

	rel := &url.URL{Path: "/api/jobs", RawQuery: values.Encode()}
	var payload JobPage
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// CreateJob creates a job. Drafts carrying a resume go out as multipart
// form data, everything else as JSON.
func (c *Client) CreateJob(ctx context.Context, draft JobDraft) (*JobCreated, error) {
	body, err := draft.body()
	if err != nil {
		return nil, err
	}
	var payload JobCreated
	if err := c.do(ctx, http.MethodPost, "/api/jobs", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateJob applies a partial update. Only the fields set on the draft are
// sent; the server returns the new updatedAt and nothing else.
func (c *Client) UpdateJob(ctx context.Context, id string, draft JobDraft) (*JobUpdated, error) {
	body, err := draft.body()
	if err != nil {
		return nil, err
	}
	var payload JobUpdated
	if err := c.do(ctx, http.MethodPut, "/api/jobs/"+url.PathEscape(id), body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteJob removes a job. The server returns no data payload.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/jobs/"+url.PathEscape(id), nil, nil)
}

// body encodes the draft as either a multipart form (when a resume file is
// attached) or a field map for JSON encoding.
func (d JobDraft) body() (any, error) {
	if d.Resume == nil {
		return d.fields(), nil
	}

	form := NewForm()
	for name, value := range d.fields() {
		var text string
		switch v := value.(type) {
		case string:
			text = v
		case float64:
			text = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			text = fmt.Sprintf("%v", v)
		}
		if err := form.AddField(name, text); err != nil {
			return nil, err
		}
	}
	filename := d.Resume.Filename
	if filename == "" {
		filename = "resume"
	}
	if err := form.AddFile("resume", filename, d.Resume.Content); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}
	return form, nil
}

// fields returns the set fields in wire naming. Unset fields stay absent so
// update payloads remain partial.
func (d JobDraft) fields() map[string]any {
	out := map[string]any{}
	if d.JobID != "" {
		out["jobId"] = d.JobID
	}
	if d.URL != "" {
		out["url"] = d.URL
	}
	if d.JobTitle != "" {
		out["jobTitle"] = d.JobTitle
	}
	if d.Company != "" {
		out["company"] = d.Company
	}
	if d.SalaryTarget != 0 {
		out["salaryTarget"] = d.SalaryTarget
	}
	if d.SalaryRange != "" {
		out["salaryRange"] = d.SalaryRange
	}
	if d.Status != "" {
		out["status"] = d.Status
	}
	if d.Location != "" {
		out["location"] = d.Location
	}
	if d.EmploymentType != "" {
		out["employmentType"] = d.EmploymentType
	}
	return out
}
